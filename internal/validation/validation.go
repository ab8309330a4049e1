// Package validation checks prediction requests against the feature list.
package validation

import (
	"errors"
	"strings"

	"cardioserve/internal/model"
)

var (
	// ErrNoData is returned when the request body is absent or empty.
	ErrNoData = errors.New("no data provided")

	// ErrMissingFeatures is wrapped by MissingFeaturesError.
	ErrMissingFeatures = errors.New("missing features")
)

// MissingFeaturesError lists every required feature absent from a request,
// in feature-list order.
type MissingFeaturesError struct {
	Missing []string
}

func (e *MissingFeaturesError) Error() string {
	return ErrMissingFeatures.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *MissingFeaturesError) Unwrap() error {
	return ErrMissingFeatures
}

// Fields maps each recognized feature name to the value received for it.
type Fields map[string]any

// Row assembles the values in the given feature order.
func (f Fields) Row(features []string) model.Row {
	row := make(model.Row, len(features))
	for i, name := range features {
		row[i] = f[name]
	}
	return row
}

// ValidateFields confirms every feature is present in body. Extra keys are
// ignored; values are not coerced.
func ValidateFields(body map[string]any, features []string) (Fields, error) {
	if len(body) == 0 {
		return nil, ErrNoData
	}

	fields := make(Fields, len(features))
	var missing []string
	for _, name := range features {
		v, ok := body[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		fields[name] = v
	}
	if len(missing) > 0 {
		return nil, &MissingFeaturesError{Missing: missing}
	}
	return fields, nil
}
