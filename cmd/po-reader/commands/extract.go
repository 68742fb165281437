package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/po-reader/internal/batch"
	"github.com/joseph-ayodele/po-reader/internal/entity"
	"github.com/joseph-ayodele/po-reader/internal/ingest"
)

var (
	extractCompact    bool
	extractSummary    bool
	extractSkipHidden bool
)

var extractCmd = &cobra.Command{
	Use:   "extract PATH...",
	Short: "Extract purchase orders from snapshot files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractCompact, "compact", false, "print one JSON record per line instead of an indented array")
	extractCmd.Flags().BoolVar(&extractSummary, "summary", false, "print a table instead of JSON")
	extractCmd.Flags().BoolVar(&extractSkipHidden, "skip-hidden", true, "skip hidden files and directories")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	paths, err := ingest.ExpandPaths(ctx, args, extractSkipHidden)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no snapshot files found under %v", args)
	}

	jobs, stats, err := a.runner.Run(ctx, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case extractSummary:
		writeSummary(out, jobs)
	case extractCompact:
		if err := writeJSONLines(out, batch.Records(jobs)); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch.Records(jobs)); err != nil {
			return err
		}
	}

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", stats.Failed, stats.Total)
	}
	return nil
}

func writeJSONLines(w io.Writer, records []entity.ExtractedRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, jobs []entity.ExtractJob) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Status", "Customer", "PO Number", "Order Date", "Items", "Amount"})
	for _, j := range jobs {
		if j.Record == nil {
			msg := ""
			if j.ErrorMessage != nil {
				msg = *j.ErrorMessage
			}
			table.Append([]string{j.SourcePath, j.Status, msg, "", "", "", ""})
			continue
		}
		r := j.Record
		table.Append([]string{
			j.SourcePath,
			j.Status,
			r.Customer,
			r.PONumber,
			r.OrderDate,
			strconv.Itoa(len(r.Items)),
			strconv.FormatFloat(r.InvoiceAmount, 'f', 2, 64),
		})
	}
	table.Render()
}
