package jobs

import (
	"context"
	"log/slog"
	"time"

	"cardioserve/internal/inference"
	"cardioserve/internal/metrics"
	"cardioserve/internal/validation"
)

// Canary periodically runs a reference record through the model, bypassing
// the prediction cache, so a model that starts failing shows up in metrics
// before users notice.
type Canary struct {
	svc      *inference.Service
	interval time.Duration
	record   map[string]any
	logger   *slog.Logger
}

// NewCanary creates a canary job. A nil record uses zero for every feature.
func NewCanary(svc *inference.Service, interval time.Duration, record map[string]any, logger *slog.Logger) *Canary {
	if record == nil {
		record = make(map[string]any, len(svc.Features()))
		for _, f := range svc.Features() {
			record[f] = 0
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Canary{svc: svc, interval: interval, record: record, logger: logger}
}

// Start begins the background canary loop and blocks until ctx is done.
func (c *Canary) Start(ctx context.Context) {
	c.logger.Info("canary started", "interval", c.interval)

	// Run immediately on start
	c.RunOnce(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("canary stopped")
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single canary prediction and reports whether it
// succeeded. Degraded mode is not a canary failure.
func (c *Canary) RunOnce(ctx context.Context) bool {
	if !c.svc.Ready() {
		return false
	}

	fields, err := validation.ValidateFields(c.record, c.svc.Features())
	if err != nil {
		c.logger.Error("canary record is invalid", "error", err)
		metrics.RecordCanary(false)
		return false
	}

	out, err := c.svc.Probe(ctx, fields)
	if err != nil {
		c.logger.Error("canary prediction failed", "error", err)
		metrics.RecordCanary(false)
		return false
	}

	c.logger.Debug("canary prediction", "class_label", out.Label)
	metrics.RecordCanary(true)
	return true
}
