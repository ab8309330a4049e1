// Package inference runs validated requests through the loaded classifier
// and resolves the raw output against the class list.
package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"cardioserve/internal/artifact"
	"cardioserve/internal/metrics"
	"cardioserve/internal/model"
	"cardioserve/internal/models"
	"cardioserve/internal/validation"
)

var (
	// ErrModelUnavailable is returned when the service runs in degraded mode.
	ErrModelUnavailable = errors.New("model not loaded")

	// ErrInference is matched by every InferenceError.
	ErrInference = errors.New("inference failed")
)

// InferenceError wraps any failure raised while assembling the row or
// running the model. Its message is the underlying error's message.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() []error {
	return []error{ErrInference, e.Err}
}

// Outcome is a resolved prediction.
type Outcome struct {
	Index         int
	Label         string
	Probabilities []float64
	Cached        bool
}

// Options configure a Service.
type Options struct {
	// CacheSize bounds the number of memoized outcomes. Zero disables caching.
	CacheSize int
	Palette   models.Palette
	Logger    *slog.Logger
	// Now overrides the clock used to stamp results.
	Now func() time.Time
}

// Service is the inference adapter. It is safe for concurrent use.
type Service struct {
	bundle  *artifact.Bundle
	palette models.Palette
	cache   *lru.Cache[string, Outcome]
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Service over the loaded bundle.
func New(bundle *artifact.Bundle, opts Options) (*Service, error) {
	s := &Service{
		bundle:  bundle,
		palette: opts.Palette,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, Outcome](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating prediction cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Features returns the ordered feature list requests are validated against.
func (s *Service) Features() []string {
	return s.bundle.Features
}

// Classes returns the ordered class labels.
func (s *Service) Classes() []string {
	return s.bundle.Classes
}

// Bundle returns the underlying load result.
func (s *Service) Bundle() *artifact.Bundle {
	return s.bundle
}

// Ready reports whether predictions can be served.
func (s *Service) Ready() bool {
	return s.bundle.ModelLoaded()
}

// Predict runs fields through the model. The model is invoked for exactly
// one row; identical rows return identical outcomes.
func (s *Service) Predict(ctx context.Context, fields validation.Fields) (*Outcome, error) {
	if !s.Ready() {
		metrics.RecordPrediction(metrics.OutcomeUnavailable, "")
		return nil, ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := fields.Row(s.bundle.Features)
	key, keyErr := cacheKey(row)
	if s.cache != nil && keyErr == nil {
		if out, ok := s.cache.Get(key); ok {
			metrics.RecordCacheHit()
			metrics.RecordPrediction(metrics.OutcomeSuccess, out.Label)
			out.Probabilities = append([]float64(nil), out.Probabilities...)
			out.Cached = true
			return &out, nil
		}
	}

	start := time.Now()
	out, err := s.run(row)
	metrics.ObserveInference(time.Since(start))
	if err != nil {
		metrics.RecordPrediction(metrics.OutcomeError, "")
		s.logger.Error("prediction failed", "error", err)
		return nil, &InferenceError{Err: err}
	}
	metrics.RecordPrediction(metrics.OutcomeSuccess, out.Label)

	if s.cache != nil && keyErr == nil {
		stored := *out
		stored.Probabilities = append([]float64(nil), out.Probabilities...)
		s.cache.Add(key, stored)
	}
	return out, nil
}

// Probe runs fields through the model without consulting the cache or
// recording request metrics.
func (s *Service) Probe(ctx context.Context, fields validation.Fields) (*Outcome, error) {
	if !s.Ready() {
		return nil, ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := s.run(fields.Row(s.bundle.Features))
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	return out, nil
}

// Shape builds the response body for out, stamped with the current time.
func (s *Service) Shape(out *Outcome) models.PredictionResult {
	return models.ShapePrediction(out.Index, out.Label, out.Probabilities, s.bundle.Classes, s.palette, s.now())
}

func (s *Service) run(row model.Row) (out *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	pred, err := s.bundle.Model.Predict(row)
	if err != nil {
		return nil, err
	}
	proba, err := s.bundle.Model.PredictProba(row)
	if err != nil {
		return nil, err
	}

	classes := s.bundle.Classes
	if len(proba) != len(classes) {
		return nil, fmt.Errorf("model returned %d probabilities for %d classes", len(proba), len(classes))
	}
	index, label, err := pred.Resolve(classes)
	if err != nil {
		return nil, err
	}
	return &Outcome{Index: index, Label: label, Probabilities: proba}, nil
}

// cacheKey encodes the row values in feature order.
func cacheKey(row model.Row) (string, error) {
	b, err := json.Marshal(row)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
