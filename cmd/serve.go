package cmd

import (
	"os"

	"github.com/archivedesk/minutes/internal/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd())
}

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the minutes server",
		Run: func(cmd *cobra.Command, args []string) {
			if port == "" {
				port = os.Getenv("HTTP_PORT")
			}
			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port")

	return command
}
