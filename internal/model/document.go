package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Artifact kinds.
const (
	KindLogisticRegression = "logistic_regression"
	KindDecisionTree       = "decision_tree"
	KindRandomForest       = "random_forest"
)

// Document is the serialized form of a classifier artifact.
type Document struct {
	Kind      string       `json:"kind"`
	Classes   []ClassValue `json:"classes"`
	NFeatures int          `json:"n_features"`

	// logistic_regression
	Scaler    *Scaler     `json:"scaler,omitempty"`
	Coef      [][]float64 `json:"coef,omitempty"`
	Intercept []float64   `json:"intercept,omitempty"`

	// decision_tree
	Nodes []TreeNode `json:"nodes,omitempty"`

	// random_forest
	Trees [][]TreeNode `json:"trees,omitempty"`
}

// Scaler standardizes inputs as (x - mean) / scale before the linear step.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ClassValue is one raw class as the model emits it: a label or an index.
type ClassValue struct {
	Label   string
	Index   int
	IsLabel bool
}

// LabelClass returns a string-valued class.
func LabelClass(label string) ClassValue { return ClassValue{Label: label, IsLabel: true} }

// IndexClass returns an integer-valued class.
func IndexClass(index int) ClassValue { return ClassValue{Index: index} }

// Prediction converts the class value into a Prediction.
func (v ClassValue) Prediction() Prediction {
	if v.IsLabel {
		return LabelPrediction(v.Label)
	}
	return IndexPrediction(v.Index)
}

func (v ClassValue) MarshalJSON() ([]byte, error) {
	if v.IsLabel {
		return json.Marshal(v.Label)
	}
	return json.Marshal(v.Index)
}

func (v *ClassValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LabelClass(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("class value must be a string or an integer: %w", err)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("class value %v is not an integer", f)
	}
	*v = IndexClass(int(f))
	return nil
}

// Decode parses an artifact document and builds its classifier.
func Decode(data []byte) (Classifier, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return Build(&doc)
}

// Build constructs the classifier described by doc.
func Build(doc *Document) (Classifier, error) {
	if len(doc.Classes) == 0 {
		return nil, errors.New("artifact declares no classes")
	}
	switch doc.Kind {
	case KindLogisticRegression:
		return newLogistic(doc)
	case KindDecisionTree:
		return newTree(doc.Nodes, doc.Classes, doc.NFeatures)
	case KindRandomForest:
		return newForest(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, doc.Kind)
	}
}
