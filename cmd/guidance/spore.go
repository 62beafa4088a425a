package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/patch"
)

// newSporeCmd manages distributable patch units. A spore is a YAML
// manifest of triple operations that can be shipped and applied to any
// copy of the ontology.
func newSporeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spore",
		Short: "Work with distributable ontology patches",
	}
	cmd.AddCommand(newSporeApplyCmd(a), newSporeShowCmd(a))
	return cmd
}

func newSporeApplyCmd(a *app) *cobra.Command {
	var (
		dryRun   bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "apply <manifest> [file]",
		Short: "Apply a spore manifest to an ontology file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spore, err := patch.LoadSpore(args[0])
			if err != nil {
				return err
			}
			p, err := spore.Compile()
			if err != nil {
				return fmt.Errorf("compile spore %s: %w", spore.ID, err)
			}

			path := a.ontologyPath(args[1:])
			res, err := patch.ApplyToFile(path, p, patch.Options{
				Backup: a.cfg.Ontology.Backup && !noBackup,
				DryRun: dryRun,
				Logger: a.logger,
			})
			if err != nil {
				return err
			}

			status := "unchanged"
			if res.Changed() {
				status = fmt.Sprintf("-%d +%d", res.Removed, res.Added)
			}
			if dryRun {
				status += " (dry run)"
			}
			fmt.Printf("%s -> %s: %s\n", spore.ID, path, status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing the file")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the .bak copy before rewriting")
	return cmd
}

func newSporeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <manifest>",
		Short: "Print the operations a spore manifest would perform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spore, err := patch.LoadSpore(args[0])
			if err != nil {
				return err
			}
			p, err := spore.Compile()
			if err != nil {
				return fmt.Errorf("compile spore %s: %w", spore.ID, err)
			}

			fmt.Printf("%s: %s\n", spore.ID, spore.Description)
			for _, op := range p.Operations {
				fmt.Printf("  %-8s %s %s", op.Action, op.Subject, op.Predicate)
				for _, o := range op.Objects {
					fmt.Printf(" %s", o)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
