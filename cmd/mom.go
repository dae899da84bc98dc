package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	minutes "github.com/archivedesk/minutes"
	"github.com/archivedesk/minutes/internal/service"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createMomCmd())
	rootCmd.AddCommand(getMomCmd())
	rootCmd.AddCommand(listMomsCmd())
	rootCmd.AddCommand(closeMomCmd())
	rootCmd.AddCommand(reopenMomCmd())
	rootCmd.AddCommand(statsCmd())
}

func apiClient() *minutes.Client {
	cfg := readContext()
	return minutes.NewClient(cfg.Server, cfg.UserID)
}

func createMomCmd() *cobra.Command {
	var title string
	var number string
	var subject string
	var meetingDate string
	var locationID string
	var topicIDs []string

	command := &cobra.Command{
		Use:   "create",
		Short: "create a mom record",
		Run: func(cmd *cobra.Command, args []string) {
			if title == "" {
				color.Red("missing: --title")
				return
			}

			in := service.CreateMomInput{
				Title:      title,
				MomNumber:  number,
				Subject:    subject,
				LocationID: locationID,
				TopicIDs:   topicIDs,
			}
			if meetingDate != "" {
				t, err := time.Parse("2006-01-02", meetingDate)
				if err != nil {
					color.Red("invalid --date, want YYYY-MM-DD")
					return
				}
				in.MeetingDate = t
			}

			mom, err := apiClient().CreateMom(in)
			if err != nil {
				color.Red("%v", err)
				return
			}

			color.Green("created mom %s", mom.ID)
			fmt.Printf("storage path: %s\n", mom.StoragePath)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "title")
	command.Flags().StringVarP(&number, "number", "n", "", "human-assigned mom number")
	command.Flags().StringVarP(&subject, "subject", "s", "", "subject")
	command.Flags().StringVarP(&meetingDate, "date", "d", "", "meeting date (YYYY-MM-DD)")
	command.Flags().StringVarP(&locationID, "location", "l", "", "location id")
	command.Flags().StringSliceVar(&topicIDs, "topic", nil, "topic id (repeatable)")

	return command
}

func getMomCmd() *cobra.Command {
	var momID string

	command := &cobra.Command{
		Use:   "get",
		Short: "get a mom record with counters",
		Run: func(cmd *cobra.Command, args []string) {
			if momID == "" {
				color.Red("missing: --mom-id")
				return
			}

			mom, err := apiClient().GetMom(momID)
			if err != nil {
				color.Red("%v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"ID", mom.ID})
			if mom.MomNumber != nil {
				table.Append([]string{"Number", *mom.MomNumber})
			}
			table.Append([]string{"Title", mom.Title})
			table.Append([]string{"Status", mom.Status})
			table.Append([]string{"Meeting Date", mom.MeetingDate.Format("2006-01-02")})
			table.Append([]string{"Storage Path", mom.StoragePath})
			table.Append([]string{"Topics", strconv.FormatInt(mom.Counters.TopicCount, 10)})
			table.Append([]string{"Actions", fmt.Sprintf("%d (%d resolved, %d overdue)",
				mom.Counters.TotalActions, mom.Counters.ResolvedActions, mom.Counters.OverdueActions)})
			table.Render()
		},
	}

	command.Flags().StringVarP(&momID, "mom-id", "m", "", "mom id")

	return command
}

func listMomsCmd() *cobra.Command {
	var status string
	var search string
	var limit int
	var offset int

	command := &cobra.Command{
		Use:   "list",
		Short: "list mom records",
		Run: func(cmd *cobra.Command, args []string) {
			page, err := apiClient().ListMoms(status, search, limit, offset)
			if err != nil {
				color.Red("%v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Number", "Title", "Date", "Status"})
			for _, mom := range page.Data {
				number := ""
				if mom.MomNumber != nil {
					number = *mom.MomNumber
				}
				table.Append([]string{mom.ID, number, mom.Title, mom.MeetingDate.Format("2006-01-02"), mom.Status})
			}
			table.Render()
			fmt.Printf("total: %d, has more: %v\n", page.Total, page.HasMore)
		},
	}

	command.Flags().StringVar(&status, "status", "", "filter by status (open|closed)")
	command.Flags().StringVarP(&search, "search", "q", "", "free-text search")
	command.Flags().IntVar(&limit, "limit", 20, "page size")
	command.Flags().IntVar(&offset, "offset", 0, "page offset")

	return command
}

func closeMomCmd() *cobra.Command {
	var momID string

	command := &cobra.Command{
		Use:   "close",
		Short: "close a mom record",
		Run: func(cmd *cobra.Command, args []string) {
			if momID == "" {
				color.Red("missing: --mom-id")
				return
			}
			if err := apiClient().CloseMom(momID); err != nil {
				color.Red("%v", err)
				return
			}
			color.Green("mom closed")
		},
	}

	command.Flags().StringVarP(&momID, "mom-id", "m", "", "mom id")

	return command
}

func reopenMomCmd() *cobra.Command {
	var momID string

	command := &cobra.Command{
		Use:   "reopen",
		Short: "reopen a closed mom record",
		Run: func(cmd *cobra.Command, args []string) {
			if momID == "" {
				color.Red("missing: --mom-id")
				return
			}
			if err := apiClient().ReopenMom(momID); err != nil {
				color.Red("%v", err)
				return
			}
			color.Green("mom reopened")
		},
	}

	command.Flags().StringVarP(&momID, "mom-id", "m", "", "mom id")

	return command
}

func statsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "stats",
		Short: "show global counters",
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient().GetStats()
			if err != nil {
				color.Red("%v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Total", "Open", "Closed", "Overdue Actions"})
			table.Append([]string{
				strconv.FormatInt(stats.TotalMoms, 10),
				strconv.FormatInt(stats.OpenMoms, 10),
				strconv.FormatInt(stats.ClosedMoms, 10),
				strconv.FormatInt(stats.OverdueActions, 10),
			})
			table.Render()
		},
	}

	return command
}
