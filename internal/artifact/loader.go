// Package artifact loads the classifier artifact and its side-car files from
// the deployment directory.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"

	"cardioserve/internal/model"
)

// Load strategy names, in the order they are attempted.
const (
	StrategyNative = "native"
	StrategyLegacy = "legacy"
	StrategyPlain  = "plain"
)

var (
	// ErrAllStrategiesFailed is returned when no strategy could load the artifact.
	ErrAllStrategiesFailed = errors.New("all model loading attempts failed")

	errNotCompressed = errors.New("artifact is not zstd-compressed")
	errNotLegacy     = errors.New("artifact is valid UTF-8, not legacy-encoded")

	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	utf8BOM   = []byte{0xef, 0xbb, 0xbf}
)

// Strategy is one way of turning the artifact file into a classifier.
type Strategy struct {
	Name string
	Load func(path string) (model.Classifier, error)
}

// Strategies returns the fallback chain in the order it is attempted.
func Strategies() []Strategy {
	return []Strategy{
		{Name: StrategyNative, Load: loadNative},
		{Name: StrategyLegacy, Load: loadLegacy},
		{Name: StrategyPlain, Load: loadPlain},
	}
}

// LoadModel tries each strategy in turn and returns the first classifier
// that loads, with the name of the strategy that produced it. When every
// strategy fails it returns model.Unavailable and ErrAllStrategiesFailed.
func LoadModel(path string, strategies []Strategy, logger *slog.Logger) (model.Classifier, string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var errs []error
	for _, s := range strategies {
		clf, err := s.Load(path)
		if err != nil {
			logger.Warn("model loading attempt failed", "strategy", s.Name, "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		logger.Info("model loaded successfully", "strategy", s.Name, "path", path)
		return clf, s.Name, nil
	}
	logger.Error("all model loading attempts failed", "path", path)
	return model.Unavailable, "", fmt.Errorf("%w: %w", ErrAllStrategiesFailed, errors.Join(errs...))
}

func loadNative(path string) (model.Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return nil, errNotCompressed
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	return model.Decode(raw)
}

func loadLegacy(path string) (model.Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(data) {
		return nil, errNotLegacy
	}
	raw, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("transcode artifact: %w", err)
	}
	return model.Decode(raw)
}

func loadPlain(path string) (model.Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.Decode(bytes.TrimPrefix(data, utf8BOM))
}
