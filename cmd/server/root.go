package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"cardioserve/internal/artifact"
	"cardioserve/internal/config"
	"cardioserve/internal/inference"
	"cardioserve/internal/jobs"
	"cardioserve/internal/logging"
	"cardioserve/internal/metrics"
	"cardioserve/internal/models"
	"cardioserve/internal/server"
)

var rootCmd = &cobra.Command{
	Use:           "cardioserve",
	Short:         "Serve the heart disease classifier over HTTP",
	Long:          "cardioserve loads the deployment artifacts once and serves predictions over a JSON API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(smokeCmd)
}

// app is everything built from configuration at startup.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	bundle *artifact.Bundle
	svc    *inference.Service
}

// bootstrap reads configuration and loads the deployment directory.
func bootstrap() (*app, error) {
	cfg := config.Load()
	logger := logging.InitLogger(logging.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	bundle := artifact.Load(artifact.Options{
		ModelPath:       cfg.ModelPath(),
		FeaturesPath:    cfg.FeaturesPath(),
		ClassesPath:     cfg.ClassesPath(),
		DefaultFeatures: yamlCfg.DefaultFeatures(),
		DefaultClasses:  yamlCfg.DefaultClasses(),
	}, logger)

	colors, fallback := yamlCfg.ColorOverrides()
	svc, err := inference.New(bundle, inference.Options{
		CacheSize: cfg.CacheSize,
		Palette:   models.NewPalette(colors, fallback),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, bundle: bundle, svc: svc}, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	metrics.Init(prometheus.DefaultRegisterer, a.bundle)

	srv := server.New(a.cfg, a.logger)
	srv.RegisterRoutes(a.svc, prometheus.DefaultGatherer)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if a.cfg.CanaryInterval > 0 && a.bundle.ModelLoaded() {
		canary := jobs.NewCanary(a.svc, a.cfg.CanaryInterval, nil, a.logger)
		go canary.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			a.logger.Error("server error", "error", err)
		}
	}()

	a.logger.Info("server started", "addr", a.cfg.ServerAddr, "model_loaded", a.bundle.ModelLoaded())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.logger.Info("server exited")
	return nil
}
