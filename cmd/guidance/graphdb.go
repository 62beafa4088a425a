package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/graphdb"
	"github.com/ontoforge/guidance/rdf/turtle"
)

// newGraphDBCmd groups the triplestore synchronization verbs. Connection
// settings come from the config layers and the GRAPHDB_* environment
// variables.
func newGraphDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphdb",
		Short: "Manage a GraphDB repository",
	}
	cmd.AddCommand(
		newGraphDBListCmd(a),
		newGraphDBSizeCmd(a),
		newGraphDBLoadCmd(a),
		newGraphDBClearCmd(a),
		newGraphDBQueryCmd(a),
	)
	return cmd
}

func (a *app) graphdbClient() (*graphdb.Client, error) {
	return graphdb.New(graphdb.Config{
		BaseURL:  a.cfg.GraphDB.URL,
		Username: a.cfg.GraphDB.Username,
		Password: a.cfg.GraphDB.Password,
		Timeout:  a.cfg.GraphDB.Timeout,
	})
}

// repository resolves the target repository: the flag wins, then config.
func (a *app) repository(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.GraphDB.Repository != "" {
		return a.cfg.GraphDB.Repository, nil
	}
	return "", fmt.Errorf("no repository configured (set --repository or graphdb.repository)")
}

func newGraphDBListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List repositories on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.graphdbClient()
			if err != nil {
				return err
			}
			repos, err := client.ListRepositories(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range repos {
				fmt.Printf("%s\t%s\n", r.ID, r.Title)
			}
			return nil
		},
	}
}

func newGraphDBSizeCmd(a *app) *cobra.Command {
	var repository string
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the statement count of a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.graphdbClient()
			if err != nil {
				return err
			}
			repo, err := a.repository(repository)
			if err != nil {
				return err
			}
			n, err := client.Size(cmd.Context(), repo)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository id")
	return cmd
}

func newGraphDBLoadCmd(a *app) *cobra.Command {
	var (
		repository string
		replace    bool
	)
	cmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Upload an ontology file to a repository",
		Long: `Load parses the ontology locally first, so a file that does not
parse is never sent. With --replace the repository statements are
replaced instead of appended.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.ontologyPath(args)

			// Parse before upload so GraphDB never sees a broken file.
			g, err := turtle.ParseFile(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			client, err := a.graphdbClient()
			if err != nil {
				return err
			}
			repo, err := a.repository(repository)
			if err != nil {
				return err
			}

			if err := client.UploadTurtle(cmd.Context(), repo, turtle.Encode(g), replace); err != nil {
				return err
			}
			a.logger.Info("uploaded", "file", path, "repository", repo, "triples", g.Len(), "replace", replace)
			return nil
		},
	}
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository id")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace repository contents instead of appending")
	return cmd
}

func newGraphDBClearCmd(a *app) *cobra.Command {
	var (
		repository string
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all statements in a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(repository)
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to clear %s without --force", repo)
			}
			client, err := a.graphdbClient()
			if err != nil {
				return err
			}
			if err := client.Clear(cmd.Context(), repo); err != nil {
				return err
			}
			a.logger.Info("repository cleared", "repository", repo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository id")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm the destructive clear")
	return cmd
}

func newGraphDBQueryCmd(a *app) *cobra.Command {
	var (
		repository string
		queryFile  string
	)
	cmd := &cobra.Command{
		Use:   "query [sparql]",
		Short: "Run a SPARQL query against a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args, queryFile)
			if err != nil {
				return err
			}
			client, err := a.graphdbClient()
			if err != nil {
				return err
			}
			repo, err := a.repository(repository)
			if err != nil {
				return err
			}
			body, err := client.Query(cmd.Context(), repo, query)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(body)
			return err
		},
	}
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository id")
	cmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the query from a file")
	return cmd
}
