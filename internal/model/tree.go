package model

import (
	"errors"
	"fmt"
	"math"
)

// TreeNode is one node of a flattened decision tree. Internal nodes send
// rows with x[FeatureIdx] <= Threshold to LeftChild; leaves carry the class
// distribution in Value.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	Value      []float64 `json:"value,omitempty"`
	IsLeaf     bool      `json:"is_leaf"`
}

// Tree is a single decision tree classifier.
type Tree struct {
	nodes   []TreeNode
	classes []ClassValue
	width   int
}

func newTree(nodes []TreeNode, classes []ClassValue, width int) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("decision_tree: no nodes")
	}
	for i, n := range nodes {
		if n.IsLeaf {
			if len(n.Value) != len(classes) {
				return nil, fmt.Errorf("decision_tree: leaf %d has %d class weights, want %d", i, len(n.Value), len(classes))
			}
			// weights must be finite and non-negative
			for _, w := range n.Value {
				if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
					return nil, fmt.Errorf("decision_tree: leaf %d has invalid class weight %v", i, w)
				}
			}
			continue
		}
		if n.LeftChild <= i || n.LeftChild >= len(nodes) || n.RightChild <= i || n.RightChild >= len(nodes) {
			return nil, fmt.Errorf("decision_tree: node %d has invalid children", i)
		}
		if n.FeatureIdx < 0 || (width > 0 && n.FeatureIdx >= width) {
			return nil, fmt.Errorf("decision_tree: node %d splits on feature %d", i, n.FeatureIdx)
		}
	}
	return &Tree{nodes: nodes, classes: classes, width: width}, nil
}

func (t *Tree) PredictProba(row Row) ([]float64, error) {
	x, err := rowVector(row, t.width)
	if err != nil {
		return nil, err
	}
	return t.proba(x)
}

func (t *Tree) Predict(row Row) (Prediction, error) {
	proba, err := t.PredictProba(row)
	if err != nil {
		return Prediction{}, err
	}
	return t.classes[argmax(proba)].Prediction(), nil
}

func (t *Tree) proba(x []float64) ([]float64, error) {
	idx := 0
	for {
		node := t.nodes[idx]
		if node.IsLeaf {
			return normalize(node.Value)
		}
		if node.FeatureIdx >= len(x) {
			return nil, errors.New("feature index out of range")
		}
		// children always follow their parent, so this terminates
		if x[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func normalize(weights []float64) ([]float64, error) {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return nil, errors.New("leaf has an empty class distribution")
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}
