// Package model defines the classifier contract served by cardioserve and
// the artifact kinds that implement it.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned by the Unavailable classifier.
	ErrUnavailable = errors.New("model not loaded")

	// ErrUnknownKind is returned when an artifact names a kind with no decoder.
	ErrUnknownKind = errors.New("unknown model kind")
)

// Row is a single ordered set of feature values. Values are kept as received
// (float64, json.Number, string, bool or nil) and converted by the classifier.
type Row []any

// Classifier is an opaque trained model.
type Classifier interface {
	// Predict returns the raw class the model emits for row.
	Predict(row Row) (Prediction, error)
	// PredictProba returns one probability per class, in the model's class order.
	PredictProba(row Row) ([]float64, error)
}

type unavailable struct{}

func (unavailable) Predict(Row) (Prediction, error)      { return Prediction{}, ErrUnavailable }
func (unavailable) PredictProba(Row) ([]float64, error) { return nil, ErrUnavailable }

// Unavailable stands in for a model that failed to load.
var Unavailable Classifier = unavailable{}

// Available reports whether c is a real, loaded classifier.
func Available(c Classifier) bool {
	if c == nil {
		return false
	}
	_, missing := c.(unavailable)
	return !missing
}

// rowVector converts row to a float vector of the expected width.
func rowVector(row Row, width int) ([]float64, error) {
	if width > 0 && len(row) != width {
		return nil, fmt.Errorf("row has %d features, but model is expecting %d features as input", len(row), width)
	}
	out := make([]float64, len(row))
	for i, v := range row {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// argmax returns the index of the largest entry; ties resolve to the first.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
