package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/asteroid-impact-etl/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-etl/internal/config"
	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
	"github.com/spf13/cobra"
)

// app carries the dependencies shared by every subcommand.
type app struct {
	out     io.Writer
	errOut  io.Writer
	metrics *observability.Metrics
	logger  *slog.Logger

	verbose bool
	offline bool

	// newCatalog returns nil when the catalog is disabled.
	newCatalog func(a *app) (domain.Catalog, error)
}

func newApp(out, errOut io.Writer, metrics *observability.Metrics) *app {
	return &app{
		out:        out,
		errOut:     errOut,
		metrics:    metrics,
		logger:     slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn})),
		newCatalog: neowsCatalog,
	}
}

// neowsCatalog builds the cached NeoWs catalog from the NEOWS_* environment.
func neowsCatalog(a *app) (domain.Catalog, error) {
	if a.offline {
		return nil, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.NeoWsEnabled {
		return nil, nil
	}
	client := neows.NewClient(cfg, a.metrics, a.logger)
	return neows.NewCachedCatalog(client, cfg.NeoWsCacheSize, a.metrics), nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "impact",
		Short:        "Estimate the effects of an asteroid impact",
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		a.out = cmd.OutOrStdout()
		a.errOut = cmd.ErrOrStderr()
		level := slog.LevelWarn
		if a.verbose {
			level = slog.LevelDebug
		}
		a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log catalog requests and fallbacks")
	root.PersistentFlags().BoolVar(&a.offline, "offline", false, "never contact the NeoWs catalog")

	root.AddCommand(newEstimateCmd(a), newNEOCmd(a))
	return root
}
