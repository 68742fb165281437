package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/po-reader/internal/batch"
	"github.com/joseph-ayodele/po-reader/internal/ingest"
)

var (
	exportDir string
	exportOut string
	exportCSV bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract every snapshot under a directory and write a spreadsheet",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "directory of snapshot files (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: purchase-orders.xlsx next to --dir)")
	exportCmd.Flags().BoolVar(&exportCSV, "csv", false, "write CSV instead of XLSX")
	_ = exportCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	paths, _, err := ingest.ScanDirectory(ctx, exportDir, nil, true)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no snapshot files found under %s", exportDir)
	}

	jobs, stats, err := a.runner.Run(ctx, paths)
	if err != nil {
		return err
	}
	records := batch.Records(jobs)

	out := exportOut
	if out == "" {
		name := "purchase-orders.xlsx"
		if exportCSV {
			name = "purchase-orders.csv"
		}
		out = filepath.Join(filepath.Dir(filepath.Clean(exportDir)), name)
	}

	if exportCSV {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		werr := a.export.WriteCSV(f, records)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return werr
		}
	} else {
		data, err := a.export.WriteXLSX(ctx, records)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	}

	a.logger.Info("export.done", "out", out, "records", len(records), "failed", stats.Failed)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d purchase orders to %s\n", len(records), out)
	if stats.Failed > 0 {
		return errors.New("some documents could not be read; see log for details")
	}
	return nil
}
