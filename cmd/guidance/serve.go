package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ontoforge/guidance/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the ontology over HTTP",
		Long: `Serve loads the ontology into memory and exposes it on:

  GET/POST /sparql    SPARQL query endpoint (JSON results)
  GET      /info      graph statistics
  GET      /healthz   liveness probe
  GET      /metrics   Prometheus metrics

With --watch the graph reloads automatically when the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv, err := server.New(server.Config{
				Addr:          addr,
				SourcePath:    a.ontologyPath(args),
				Watch:         watch || a.cfg.Server.Watch,
				DebounceDelay: a.cfg.Server.DebounceDelay,
				Logger:        a.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: configured server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the graph when the file changes")
	return cmd
}
