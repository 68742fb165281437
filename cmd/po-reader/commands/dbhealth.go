package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dbhealthTimeout time.Duration

var dbhealthCmd = &cobra.Command{
	Use:   "dbhealth",
	Short: "Ping the customer directory and report its size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.db.HealthCheck(ctx, dbhealthTimeout); err != nil {
			return fmt.Errorf("DB health: FAIL (%w)", err)
		}
		n, err := a.customers.CountCustomers(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "DB health: OK (%s)\n", a.db.Dialect())
		fmt.Fprintf(out, "customers count: %d\n", n)
		return nil
	},
}

func init() {
	dbhealthCmd.Flags().DurationVar(&dbhealthTimeout, "timeout", time.Second, "ping timeout")
	rootCmd.AddCommand(dbhealthCmd)
}
