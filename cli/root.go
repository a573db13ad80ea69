// Package cli implements the mvbdecode command-line surface: decode, parse,
// stats, and devices. Each subcommand is a cobra.Command registered with
// the root via its own init(), and fatal errors are reported through
// cobra.CheckErr.
package cli

import (
	"fmt"

	"github.com/mvbdecode/mvbdecode/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mvbdecode",
	Short: "Decode MVB (IEC 61375-3-1) physical-layer captures into telegrams",
	Long: `mvbdecode recovers Manchester-coded bits from a captured MVB physical
layer, frames them into master/slave telegrams, and pairs each master
request with its slave reply.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Initialize(); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to initialize config: %w", err))
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
