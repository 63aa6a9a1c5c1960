package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/metrics"
)

var (
	batchCharacter string
	batchOutput    string
	batchDelay     time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch <keyword> [keyword...]",
	Short: "Download a set of animations sequentially",
	Long: `Download a list of animation keywords one after another into a
per-character directory. Items are processed strictly in order with a
pacing delay between downloads; a failed item is recorded and the batch
moves on.

Examples:
  animfetch batch idle walk run jump
  animfetch batch punch kick block --character 55c5d85e-... --delay 2s`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchCharacter, "character", "c", "", "target character UUID (default: primary character)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output directory (default: auto-detected)")
	batchCmd.Flags().DurationVar(&batchDelay, "delay", 0, "pacing delay between downloads (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := fetch.BatchOptions{
		CharacterID: batchCharacter,
		OutputDir:   batchOutput,
		Delay:       batchDelay,
	}

	var (
		summary *fetch.BatchSummary
		err     error
	)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		summary, err = runBatchProgress(ctx, args, opts)
	} else {
		summary, err = runBatchPlain(ctx, args, opts)
	}

	if summary != nil {
		printBatchSummary(summary)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) && summary != nil {
			return fmt.Errorf("batch interrupted after %d of %d items", len(summary.Records), summary.Total)
		}
		return fmt.Errorf("batch: %w", err)
	}
	if summary.Successful == 0 {
		return fmt.Errorf("all %d downloads failed", summary.Total)
	}
	return nil
}

// runBatchPlain runs the batch with line-per-item output for pipes and
// non-interactive shells.
func runBatchPlain(ctx context.Context, keywords []string, opts fetch.BatchOptions) (*fetch.BatchSummary, error) {
	opts.Progress = func(ev fetch.ProgressEvent) {
		if ev.Record == nil {
			fmt.Printf("[%d/%d] %s... ", ev.Index+1, ev.Total, ev.Keyword)
			return
		}
		if ev.Record.Success {
			fmt.Printf("ok (%s)\n", ev.Record.FilePath)
		} else {
			fmt.Printf("failed: %s\n", ev.Record.Error)
		}
	}
	return service.FetchBatch(ctx, keywords, opts)
}

func printBatchSummary(summary *fetch.BatchSummary) {
	fmt.Printf("\nDownloaded %d/%d animations", summary.Successful, summary.Total)
	if summary.Failed > 0 {
		fmt.Printf(" (%d failed)", summary.Failed)
	}
	fmt.Println()

	for _, record := range summary.Records {
		if !record.Success {
			fmt.Printf("  failed %s: %s\n", record.Keyword, record.Error)
		}
	}

	if verbose {
		printMetricsFooter(collector.Snapshot())
	}
}

// printMetricsFooter shows pipeline timing stats collected during the run.
func printMetricsFooter(snap metrics.Snapshot) {
	fmt.Println("\nPipeline stats:")
	printOpStats("searches", snap.Search)
	printOpStats("exports", snap.Export)
	printOpStats("polls", snap.Poll)
	if snap.Download != nil {
		printOpStats("downloads", snap.Download)
		if snap.Download.TotalBytes != nil {
			fmt.Printf("  bytes written: %d\n", *snap.Download.TotalBytes)
		}
	}
}

func printOpStats(label string, op *metrics.OperationSnapshot) {
	if op == nil {
		return
	}
	fmt.Printf("  %-10s %d calls, avg %.0fms\n", label, op.Count, op.AvgTimeMs)
}
