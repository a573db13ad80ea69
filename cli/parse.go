package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mvbdecode/mvbdecode/pipeline"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <input.csv> [n]",
	Short: "Parse telegrams from an intermediate CSV capture",
	Long: `Runs the telegram-parser-only path: reads the intermediate
"t,master_hex,slave_hex" CSV format (Input B) and prints one human-readable
line per record, skipping physical decode entirely. Use "-" for input to
read from stdin.`,
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

		rr := pipeline.NewCSVReader(in)
		p := pipeline.New(rr, os.Stderr, nil)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := pipeline.Run(ctx, p, n, func(rec *pipeline.Record) error {
			return renderRecord(os.Stdout, rec)
		}); err != nil {
			cobra.CheckErr(fmt.Errorf("parse: %w", err))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
