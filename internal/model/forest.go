package model

import (
	"errors"
	"fmt"
)

// Forest averages the class probabilities of its trees.
type Forest struct {
	trees   []*Tree
	classes []ClassValue
	width   int
}

func newForest(doc *Document) (*Forest, error) {
	if len(doc.Trees) == 0 {
		return nil, errors.New("random_forest: no trees")
	}
	f := &Forest{classes: doc.Classes, width: doc.NFeatures}
	for i, nodes := range doc.Trees {
		t, err := newTree(nodes, doc.Classes, doc.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("random_forest: tree %d: %w", i, err)
		}
		f.trees = append(f.trees, t)
	}
	return f, nil
}

func (f *Forest) PredictProba(row Row) ([]float64, error) {
	x, err := rowVector(row, f.width)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(f.classes))
	for _, t := range f.trees {
		p, err := t.proba(x)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] += p[i]
		}
	}
	n := float64(len(f.trees))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}

func (f *Forest) Predict(row Row) (Prediction, error) {
	proba, err := f.PredictProba(row)
	if err != nil {
		return Prediction{}, err
	}
	return f.classes[argmax(proba)].Prediction(), nil
}
