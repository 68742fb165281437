package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	jobsRunID string
	jobsLimit int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List recorded extraction jobs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.jobs.List(ctx, jobsRunID, jobsLimit)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Started", "Run", "File", "Status", "PO Number", "Error"})
		for _, j := range list {
			po, msg := "", ""
			if j.Record != nil {
				po = j.Record.PONumber
			}
			if j.ErrorMessage != nil {
				msg = *j.ErrorMessage
			}
			table.Append([]string{
				j.StartedAt.Local().Format("2006-01-02 15:04:05"),
				j.RunID,
				j.SourcePath,
				j.Status,
				po,
				msg,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsRunID, "run", "", "only jobs of this run id")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 50, "maximum jobs to list (0 for all)")
	rootCmd.AddCommand(jobsCmd)
}
