// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/vidvaan/internal/aggregate"
	"github.com/pdiddy/vidvaan/internal/httputil"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/internal/provider"
	"github.com/pdiddy/vidvaan/internal/server"
	"github.com/pdiddy/vidvaan/internal/summary"
	"github.com/pdiddy/vidvaan/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search session over HTTP",
	Long: `Serve starts the HTTP API. POST /api/search streams results as
Server-Sent Events; the current view, filters, summary, and exports are
served under /api. Prometheus metrics are exposed on /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	serverCfg := cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		serverCfg.Address = addr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	providers, err := provider.FromConfig(cfg.Search, httputil.NewClient(cfg.Search.HTTPConfig), logger)
	if err != nil {
		return err
	}

	srv := server.New(serverCfg, server.Options{
		Searcher:   aggregate.New(providers, cfg.Search.ProviderTimeout, metrics, observability.WithComponent(logger, "aggregate")),
		Summarizer: summary.NewClient(cfg.Summary, metrics, observability.WithComponent(logger, "summary")),
		Store:      view.NewStore(cfg.View.PageSize),
		Metrics:    metrics,
		Gatherer:   reg,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
