package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/rdf/turtle"
)

// newConvertCmd re-serializes an ontology between Turtle and N-Triples.
// Converting a Turtle file to Turtle normalizes it to the deterministic
// form the writer produces.
func newConvertCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert an ontology between serializations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			g, err := turtle.ParseFile(in)
			if err != nil {
				return fmt.Errorf("load %s: %w", in, err)
			}

			if format == "" && len(args) == 2 {
				format = formatFromExt(args[1])
			}

			var out string
			switch format {
			case "", "turtle", "ttl":
				out = turtle.Encode(g)
			case "ntriples", "nt":
				out = turtle.EncodeNTriples(g)
			default:
				return fmt.Errorf("unknown format %q (turtle, ntriples)", format)
			}

			if len(args) == 1 {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(args[1], []byte(out), 0644); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			a.logger.Info("converted", "input", in, "output", args[1], "triples", g.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: turtle or ntriples (default: from output extension)")
	return cmd
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return "ntriples"
	default:
		return "turtle"
	}
}
