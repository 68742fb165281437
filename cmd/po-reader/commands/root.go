package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	inmem      bool
	sqlitePath string
	workers    int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "po-reader",
	Short: "Extract structured purchase orders from layout-analyzed documents",
	Long: `po-reader reads layout snapshots of purchase-order documents (text, detected
tables and cropped Ship To / ATTN regions) and extracts customer, addresses,
PO number, dates, line items and totals. Unknown customers can be named from
a customer directory kept in SQLite or Postgres.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inmem, "inmem", false, "use an in-memory SQLite customer directory")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "SQLite customer directory file (overrides SQLITE_PATH)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "concurrent documents (overrides PO_WORKERS)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
