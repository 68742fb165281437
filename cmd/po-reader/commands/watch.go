package commands

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/po-reader/internal/ingest"
)

var (
	watchInitial  bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR...",
	Short: "Extract snapshots as they are written and print one JSON record per line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "also extract the files already present")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "wait this long after the last write before extracting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	paths, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       args,
		SkipHidden:  true,
		InitialScan: watchInitial,
		Debounce:    watchDebounce,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}
	a.logger.Info("watch.start", "roots", args)

	enc := json.NewEncoder(cmd.OutOrStdout())
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("watch.stop")
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			a.logger.Warn("watch.error", "error", err)
		case p, ok := <-paths:
			if !ok {
				return nil
			}
			job := a.runner.RunOne(ctx, p)
			if job.Record == nil {
				continue
			}
			if err := enc.Encode(job.Record); err != nil {
				return err
			}
		}
	}
}
