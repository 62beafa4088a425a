package main

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/patch"
	"github.com/ontoforge/guidance/rdf/turtle"
)

// newFixCmd rewrites ontology files to the canonical validation rules and
// targets: exactly one label, comment, and priority per rule, with string
// priorities.
func newFixCmd(a *app) *cobra.Command {
	var (
		dryRun   bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "fix [glob...]",
		Short: "Apply canonical fixes to ontology files",
		Long: `Fix rewrites ontology files so every validation rule and target
carries exactly one label, comment, and priority. Priorities are
normalized to the string enum (HIGH, MEDIUM, LOW).

Files are matched by doublestar globs (e.g. 'models/**/*.ttl'); with no
arguments the configured ontology file is fixed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolveFixTargets(a, args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files matched")
			}
			if len(paths) > 1 {
				if err := preflightParse(paths); err != nil {
					return err
				}
			}

			p := patch.CanonicalValidationPatch()
			opts := patch.Options{
				Backup: a.cfg.Ontology.Backup && !noBackup,
				DryRun: dryRun,
				Logger: a.logger,
			}

			for _, path := range paths {
				res, err := patch.ApplyToFile(path, p, opts)
				if err != nil {
					return fmt.Errorf("fix %s: %w", path, err)
				}
				status := "unchanged"
				if res.Changed() {
					status = fmt.Sprintf("-%d +%d", res.Removed, res.Added)
				}
				if dryRun {
					status += " (dry run)"
				}
				fmt.Printf("%s: %s\n", path, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing files")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the .bak copy before rewriting")
	return cmd
}

func resolveFixTargets(a *app, globs []string) ([]string, error) {
	if len(globs) == 0 {
		return []string{a.cfg.Ontology.Path}, nil
	}

	seen := map[string]bool{}
	var paths []string
	for _, g := range globs {
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", g, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ensure files parse before the fix touches anything; keeps a typo'd glob
// from half-rewriting a model directory.
func preflightParse(paths []string) error {
	for _, p := range paths {
		if _, err := turtle.ParseFile(p); err != nil {
			return fmt.Errorf("preflight %s: %w", p, err)
		}
	}
	return nil
}
