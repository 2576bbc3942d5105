package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/station-saarthi/saarthi-cli/internal/api"
	"github.com/station-saarthi/saarthi-cli/internal/cache"
	"github.com/station-saarthi/saarthi-cli/internal/config"
	"github.com/station-saarthi/saarthi-cli/internal/logging"
	"github.com/station-saarthi/saarthi-cli/internal/metrics"
)

// app holds everything a command needs, built from config and flags
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *api.Client
	store   cache.Store
	metrics *metrics.Collector

	metricsServer *http.Server
	closers       []func() error
}

func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigPath: flagConfig})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	logOpts := logging.Options{
		Format: cfg.LogFormat,
		Debug:  cfg.Debug,
		File:   cfg.LogFile,
		Out:    cmd.ErrOrStderr(),
	}
	var (
		log      zerolog.Logger
		closeLog func() error
	)
	if interactive {
		log, closeLog, err = logging.ForTUI(logOpts)
	} else {
		log, closeLog, err = logging.New(logOpts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(),
		closers: []func() error{closeLog},
	}

	opts := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithRecorder(a.metrics),
		api.WithLogger(log),
	}

	store, err := cache.Open(cfg.CacheOptions())
	if err != nil {
		// A broken cache never blocks a lookup
		log.Warn().Err(err).Str("backend", cfg.Cache).Msg("Cache unavailable, continuing without it")
	} else if store != nil {
		a.store = store
		opts = append(opts, api.WithCache(store))
		if c, ok := store.(io.Closer); ok {
			a.closers = append(a.closers, c.Close)
		}
	}

	client, err := api.NewClient(opts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	a.client = client

	if cfg.MetricsAddr != "" {
		a.metricsServer = a.metrics.Serve(cfg.MetricsAddr, log)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("cache", cfg.Cache).
		Dur("timeout", cfg.Timeout).
		Msg("Client ready")

	return a, nil
}

// applyFlags overrides cfg with the flags set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flagNoCache {
		cfg.Cache = cache.BackendNone
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Close stops the metrics server and releases the cache and log file
func (a *app) Close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = a.metricsServer.Shutdown(ctx)
		cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
