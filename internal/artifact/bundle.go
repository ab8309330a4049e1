package artifact

import (
	"log/slog"

	"cardioserve/internal/model"
)

// Options locate the deployment files.
type Options struct {
	ModelPath       string
	FeaturesPath    string
	ClassesPath     string
	DefaultFeatures []string
	DefaultClasses  []string
}

// Bundle is everything loaded from the deployment directory at startup.
// It is never mutated after Load returns.
type Bundle struct {
	Model    model.Classifier
	Strategy string
	ModelErr error

	Features         []string
	Classes          []string
	FeaturesFromFile bool
	ClassesFromFile  bool
}

// ModelLoaded reports whether a real classifier is held.
func (b *Bundle) ModelLoaded() bool {
	return model.Available(b.Model)
}

// Load reads the model and both side-car files once. It never fails: a model
// that cannot be loaded leaves the bundle in degraded mode.
func Load(opts Options, logger *slog.Logger) *Bundle {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultFeatures == nil {
		opts.DefaultFeatures = DefaultFeatures
	}
	if opts.DefaultClasses == nil {
		opts.DefaultClasses = DefaultClasses
	}

	b := &Bundle{}
	b.Model, b.Strategy, b.ModelErr = LoadModel(opts.ModelPath, Strategies(), logger)
	b.Features, b.FeaturesFromFile = LoadFeatures(opts.FeaturesPath, opts.DefaultFeatures, logger)
	b.Classes, b.ClassesFromFile = LoadClasses(opts.ClassesPath, opts.DefaultClasses, logger)

	if !b.ModelLoaded() {
		logger.Error("CRITICAL: model failed to load, serving in degraded mode", "path", opts.ModelPath)
	} else {
		logger.Info("model ready", "features", b.Features, "classes", b.Classes)
	}
	return b
}
