package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/glyph-lang/glyph/syntax/render"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glyph",
		Short: "Lossless parser for Glyph source",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			render.NoColor = noColor
		},
	}

	// rootCmd.PersistentFlags() is a *pflag.FlagSet directly; bound here
	// (rather than through cobra's own Bool* wrapper) so every subcommand
	// shares one --no-color switch without repeating the flag on each.
	var flags *pflag.FlagSet = rootCmd.PersistentFlags()
	flags.BoolVar(&noColor, "no-color", false, "disable ANSI colors in diagnostic output")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newReplCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var noColor bool
