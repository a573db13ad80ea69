package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mvbdecode/mvbdecode/pipeline"
	"github.com/mvbdecode/mvbdecode/sample"
	"github.com/spf13/cobra"
)

var decodeCSV bool

var decodeCmd = &cobra.Command{
	Use:   "decode <input> [n]",
	Short: "Decode a raw MVB sample capture into telegrams",
	Long: `Runs the full pipeline: SampleSource -> PhysicalDecoder -> Pairing ->
TelegramParser, printing one human-readable line per paired record. Use "-"
for input to read from stdin. The optional n limits output to the first n
pairing records.`,
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
		p := pipeline.New(rr, os.Stderr, nil)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		render := renderRecord
		if decodeCSV {
			render = renderCSV
		}

		if err := pipeline.Run(ctx, p, n, func(rec *pipeline.Record) error {
			return render(os.Stdout, rec)
		}); err != nil {
			cobra.CheckErr(fmt.Errorf("decode: %w", err))
		}
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeCSV, "csv", false, "emit the intermediate bit-exact t,master_hex,slave_hex format instead of the human-readable log")
	rootCmd.AddCommand(decodeCmd)
}
