// Package main provides the guidance binary entry point.
// Guidance maintains RDF ontology files: it applies canonical fixes,
// validates against SHACL shapes, runs structural checks, and serves
// or syncs the graph to a triplestore.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "guidance"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries settings shared by every subcommand. It is populated by the
// root command's PersistentPreRunE before any RunE executes.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology maintenance toolkit",
		Long: `Guidance maintains RDF ontology files in Turtle format.

It provides:
- Canonical fixes for validation rules and targets
- SHACL validation with optional RDFS inference
- Round-trip integrity and structural SPARQL checks
- A SPARQL query endpoint and GraphDB synchronization`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = setupLogging(logLevel)

			if configPath != "" {
				cfg, err := config.LoadFromFile(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
				a.cfg = cfg
				return nil
			}

			cfg, err := config.NewLoader(a.logger).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newFixCmd(a),
		newValidateCmd(a),
		newCheckCmd(a),
		newQueryCmd(a),
		newConvertCmd(a),
		newSporeCmd(a),
		newGraphDBCmd(a),
		newServeCmd(a),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func setupLogging(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// ontologyPath resolves the file a command operates on: the positional
// argument when given, the configured default otherwise.
func (a *app) ontologyPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Ontology.Path
}
