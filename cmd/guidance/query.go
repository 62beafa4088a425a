package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/ontoforge/guidance/sparql"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		queryFile string
		dataPath  string
	)

	cmd := &cobra.Command{
		Use:   "query [sparql]",
		Short: "Run a SPARQL query against an ontology file",
		Long: `Query evaluates a SELECT or ASK query against the ontology and
prints SPARQL 1.1 JSON results. The query comes from the argument,
--file, or stdin when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args, queryFile)
			if err != nil {
				return err
			}

			path := dataPath
			if path == "" {
				path = a.cfg.Ontology.Path
			}
			g, err := turtle.ParseFile(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			res, err := sparql.QueryGraph(g, query)
			if err != nil {
				return err
			}
			body, err := res.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}

	cmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the query from a file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Ontology file to query (default: configured path)")
	return cmd
}

func readQuery(args []string, queryFile string) (string, error) {
	switch {
	case len(args) == 1 && queryFile != "":
		return "", fmt.Errorf("provide the query as an argument or via --file, not both")
	case len(args) == 1:
		return args[0], nil
	case queryFile != "":
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return "", fmt.Errorf("read query file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return "", fmt.Errorf("empty query")
		}
		return string(data), nil
	}
}
