package cmd

import (
	"github.com/archivedesk/minutes/internal/config"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "archive database maintenance",
}

func init() {
	dbCmd.AddCommand(migrateCmd())
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the archive schema",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			if err := model.Migrate(db); err != nil {
				color.Red("migration failed: %v", err)
				return
			}
			color.Green("archive schema is up to date")
		},
	}
}
