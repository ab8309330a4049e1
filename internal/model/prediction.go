package model

import (
	"fmt"
	"strconv"
)

type predictionKind int

const (
	kindIndex predictionKind = iota
	kindLabel
)

// Prediction is the raw class a model emits: either a class label or a
// numeric class index, depending on how the artifact was exported.
type Prediction struct {
	kind  predictionKind
	label string
	index int
}

// LabelPrediction builds a prediction carrying a class label.
func LabelPrediction(label string) Prediction {
	return Prediction{kind: kindLabel, label: label}
}

// IndexPrediction builds a prediction carrying a class index.
func IndexPrediction(index int) Prediction {
	return Prediction{kind: kindIndex, index: index}
}

// IsLabel reports whether the prediction carries a label.
func (p Prediction) IsLabel() bool {
	return p.kind == kindLabel
}

// Resolve maps the prediction onto the class list, returning the canonical
// class index and label.
func (p Prediction) Resolve(classes []string) (int, string, error) {
	if p.kind == kindLabel {
		for i, c := range classes {
			if c == p.label {
				return i, c, nil
			}
		}
		return 0, "", fmt.Errorf("%q is not in list", p.label)
	}
	if p.index < 0 || p.index >= len(classes) {
		return 0, "", fmt.Errorf("class index %d out of range for %d classes", p.index, len(classes))
	}
	return p.index, classes[p.index], nil
}

func (p Prediction) String() string {
	if p.kind == kindLabel {
		return p.label
	}
	return strconv.Itoa(p.index)
}
