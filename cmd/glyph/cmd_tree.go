package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyph-lang/glyph/internal/lexer"
	"github.com/glyph-lang/glyph/syntax"
)

// newTreeCmd parses a file (or stdin) and dumps the resulting GreenNode
// tree as an indented, Lisp-ish s-expression, one node per line.
func newTreeCmd() *cobra.Command {
	var showBytes bool

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Parse Glyph source and print its concrete syntax tree",
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
			printNode(cmd.OutOrStdout(), result.Tree, 0, showBytes)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBytes, "bytes", false, "annotate each node with its byte range")
	return cmd
}

func printNode(w interface{ Write([]byte) (int, error) }, n *syntax.GreenNode, depth int, showBytes bool) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if showBytes {
		fmt.Fprintf(w, "%s(%s %d-%d)\n", indent, n.Kind(), n.FirstByte, n.LastByte)
	} else {
		fmt.Fprintf(w, "%s(%s)\n", indent, n.Kind())
	}
	for _, c := range n.Children {
		printNode(w, c, depth+1, showBytes)
	}
}
