package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyph-lang/glyph/internal/lexer"
	"github.com/glyph-lang/glyph/syntax"
	"github.com/glyph-lang/glyph/syntax/render"
)

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// newParseCmd parses a file (or stdin) and prints every diagnostic; exits
// non-zero if any were raised.
func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse Glyph source and report diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}

			result, err := syntax.Parse(lexer.New(string(src)))
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			for _, d := range result.Diagnostics {
				fmt.Fprint(os.Stdout, render.Diagnostic(d, src))
			}
			if len(result.Diagnostics) > 0 {
				return fmt.Errorf("%d diagnostic(s)", len(result.Diagnostics))
			}
			fmt.Println("ok")
			return nil
		},
	}
	return cmd
}
