package model

import (
	"errors"
	"fmt"
	"math"
)

// Logistic is a (multinomial) logistic regression with optional scaling.
type Logistic struct {
	classes   []ClassValue
	width     int
	mean      []float64
	scale     []float64
	coef      [][]float64
	intercept []float64
}

func newLogistic(doc *Document) (*Logistic, error) {
	if len(doc.Coef) == 0 {
		return nil, errors.New("logistic_regression: missing coef")
	}
	binary := len(doc.Coef) == 1 && len(doc.Classes) == 2
	if !binary && len(doc.Coef) != len(doc.Classes) {
		return nil, fmt.Errorf("logistic_regression: %d coef rows for %d classes", len(doc.Coef), len(doc.Classes))
	}
	if len(doc.Intercept) != len(doc.Coef) {
		return nil, fmt.Errorf("logistic_regression: %d intercepts for %d coef rows", len(doc.Intercept), len(doc.Coef))
	}
	width := doc.NFeatures
	if width == 0 {
		width = len(doc.Coef[0])
	}
	for i, row := range doc.Coef {
		if len(row) != width {
			return nil, fmt.Errorf("logistic_regression: coef row %d has %d weights, want %d", i, len(row), width)
		}
	}
	m := &Logistic{
		classes:   doc.Classes,
		width:     width,
		coef:      doc.Coef,
		intercept: doc.Intercept,
	}
	if s := doc.Scaler; s != nil {
		if len(s.Mean) != width || len(s.Scale) != width {
			return nil, errors.New("logistic_regression: scaler does not match feature count")
		}
		m.mean, m.scale = s.Mean, s.Scale
	}
	return m, nil
}

func (m *Logistic) PredictProba(row Row) ([]float64, error) {
	x, err := rowVector(row, m.width)
	if err != nil {
		return nil, err
	}
	if m.mean != nil {
		for i := range x {
			s := m.scale[i]
			if s == 0 {
				s = 1
			}
			x[i] = (x[i] - m.mean[i]) / s
		}
	}

	scores := make([]float64, len(m.coef))
	for k, w := range m.coef {
		z := m.intercept[k]
		for i, xi := range x {
			z += w[i] * xi
		}
		scores[k] = z
	}

	if len(scores) == 1 {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}, nil
	}
	return softmax(scores), nil
}

func (m *Logistic) Predict(row Row) (Prediction, error) {
	proba, err := m.PredictProba(row)
	if err != nil {
		return Prediction{}, err
	}
	return m.classes[argmax(proba)].Prediction(), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(scores []float64) []float64 {
	top := scores[argmax(scores)]
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - top)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
