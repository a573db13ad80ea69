package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mvbdecode/mvbdecode/aggregator"
	"github.com/mvbdecode/mvbdecode/pipeline"
	"github.com/mvbdecode/mvbdecode/sample"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <input> [n]",
	Short: "Decode a capture and print per-port process variable statistics",
	Long: `Runs the full pipeline and, after EndOfStream, prints every tracked
process variable's retained change log ordered by ascending number of
transitions. A log of more than 18 transitions is printed as its length only.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := openInput(args[0])
		if err != nil {
			cobra.CheckErr(err)
		}
		defer in.Close()

		n, err := maxRecords(args)
		if err != nil {
			cobra.CheckErr(err)
		}

		src := sample.NewFileSource(in, polarity())
		rr := pipeline.NewDecodeReader(src)
		agg := aggregator.New()
		p := pipeline.New(rr, os.Stderr, agg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := pipeline.Run(ctx, p, n, func(rec *pipeline.Record) error {
			return nil
		}); err != nil {
			cobra.CheckErr(fmt.Errorf("stats: %w", err))
		}

		for _, pv := range agg.Sorted() {
			fmt.Println(pv.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
