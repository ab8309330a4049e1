package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PredictionResult is the body of a successful POST /predict.
type PredictionResult struct {
	PredictedClassIndex int           `json:"predicted_class_index"`
	PredictedClassLabel string        `json:"predicted_class_label"`
	Color               string        `json:"color"`
	Confidence          float64       `json:"confidence"`
	Probabilities       Probabilities `json:"probabilities"`
	Timestamp           time.Time     `json:"timestamp"`
}

// ClassProbability is one class label with its percentage.
type ClassProbability struct {
	Label   string
	Percent float64
}

// Probabilities is an ordered label -> percentage mapping. It serializes as a
// JSON object whose keys keep class-list order.
type Probabilities []ClassProbability

// Get returns the percentage recorded for label.
func (p Probabilities) Get(label string) (float64, bool) {
	for _, cp := range p {
		if cp.Label == label {
			return cp.Percent, true
		}
	}
	return 0, false
}

func (p Probabilities) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cp := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cp.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cp.Percent)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Percent converts a probability to a percentage rounded to two decimals.
// The float product is rounded on its exact binary value with ties to even,
// so 0.00125 gives 0.12.
func Percent(p float64) float64 {
	v := p * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// 30 places reach past the distance from v to any rounding tie
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 30, 64))
	if err != nil {
		return v
	}
	return d.RoundBank(2).InexactFloat64()
}

// ShapePrediction assembles the response for a resolved prediction. proba
// must hold one entry per class, in class-list order.
func ShapePrediction(index int, label string, proba []float64, classes []string, palette Palette, now time.Time) PredictionResult {
	probs := make(Probabilities, len(classes))
	top := 0.0
	for i, class := range classes {
		probs[i] = ClassProbability{Label: class, Percent: Percent(proba[i])}
		if proba[i] > top {
			top = proba[i]
		}
	}

	return PredictionResult{
		PredictedClassIndex: index,
		PredictedClassLabel: label,
		Color:               palette.Color(index),
		Confidence:          Percent(top),
		Probabilities:       probs,
		Timestamp:           now,
	}
}
