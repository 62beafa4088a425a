package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/ontoforge/guidance/shacl"
)

// errValidationFailed marks a clean non-conforming exit, as opposed to an
// operational failure.
var errValidationFailed = fmt.Errorf("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var (
		shapesPath string
		inference  bool
		strict     bool
		watch      bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate an ontology against its SHACL shapes",
		Long: `Validate parses the ontology and checks it against SHACL node
shapes. By default shapes are read from the ontology file itself;
--shapes points at a separate shapes file.

The exit status is non-zero when any sh:Violation result is produced.
With --strict, warnings fail the run too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{a.cfg.Ontology.Path}
			}
			if shapesPath == "" {
				shapesPath = a.cfg.Ontology.ShapesPath
			}
			opts := shacl.Options{InferRDFS: inference || a.cfg.Ontology.Inference}

			if reportPath != "" && len(paths) > 1 {
				return fmt.Errorf("--report takes a single input file")
			}
			if watch {
				if len(paths) > 1 {
					return fmt.Errorf("--watch takes a single file")
				}
				return watchValidate(cmd.Context(), a, paths[0], shapesPath, opts, strict)
			}

			anyFailed := false
			for _, path := range paths {
				report, err := validateFile(path, shapesPath, opts)
				if err != nil {
					return err
				}
				if len(paths) > 1 {
					fmt.Printf("== %s\n", path)
				}
				fmt.Print(report.Text())
				if reportPath != "" {
					if err := turtle.WriteFile(reportPath, report.Graph(), false); err != nil {
						return fmt.Errorf("write report: %w", err)
					}
				}
				if failed(report, strict) {
					anyFailed = true
				}
			}
			if anyFailed {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shapesPath, "shapes", "", "Separate shapes file (default: shapes from the data file)")
	cmd.Flags().BoolVar(&inference, "inference", false, "Materialize RDFS entailments before validating")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().BoolVar(&watch, "watch", false, "Revalidate whenever the file changes")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the validation report graph to this Turtle file")
	return cmd
}

func validateFile(path, shapesPath string, opts shacl.Options) (*shacl.Report, error) {
	data, err := turtle.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var shapes *rdf.Graph
	if shapesPath != "" {
		shapes, err = turtle.ParseFile(shapesPath)
		if err != nil {
			return nil, fmt.Errorf("load shapes %s: %w", shapesPath, err)
		}
	}

	return shacl.Validate(data, shapes, opts)
}

func failed(report *shacl.Report, strict bool) bool {
	if report.Conforms {
		return false
	}
	if strict {
		return true
	}
	for _, res := range report.Results {
		if res.Severity == shacl.SeverityViolation {
			return true
		}
	}
	return false
}

// watchValidate revalidates on every change until interrupted. Results go
// to stdout; the process only exits on signal or watcher failure.
func watchValidate(ctx context.Context, a *app, path, shapesPath string, opts shacl.Options, strict bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	run := func() {
		report, err := validateFile(path, shapesPath, opts)
		if err != nil {
			a.logger.Error("validation run failed", "error", err)
			return
		}
		fmt.Printf("--- %s\n%s", time.Now().Format(time.TimeOnly), report.Text())
		if failed(report, strict) {
			a.logger.Warn("ontology does not conform", "file", path)
		}
	}
	run()

	debounce := a.cfg.Server.DebounceDelay
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evPath, err := filepath.Abs(event.Name)
			if err != nil || evPath != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			run()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "error", werr)
		}
	}
}
