package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardioserve/internal/model"
)

func TestLogistic_Binary(t *testing.T) {
	clf, err := model.Build(&model.Document{
		Kind:      model.KindLogisticRegression,
		Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
		NFeatures: 2,
		Coef:      [][]float64{{1, 0}},
		Intercept: []float64{0},
	})
	require.NoError(t, err)

	proba, err := clf.PredictProba(model.Row{2.0, 5.0})
	require.NoError(t, err)
	require.Len(t, proba, 2)
	want := 1 / (1 + math.Exp(-2))
	assert.InDelta(t, 1-want, proba[0], 1e-9)
	assert.InDelta(t, want, proba[1], 1e-9)

	pred, err := clf.Predict(model.Row{2.0, 5.0})
	require.NoError(t, err)
	assert.False(t, pred.IsLabel())
	idx, label, err := pred.Resolve([]string{"healthy", "sick"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "sick", label)
}

func TestLogistic_MultinomialWithScaler(t *testing.T) {
	clf, err := model.Build(&model.Document{
		Kind:      model.KindLogisticRegression,
		Classes:   []model.ClassValue{model.LabelClass("a"), model.LabelClass("b"), model.LabelClass("c")},
		Coef:      [][]float64{{1, 0}, {0, 1}, {0, 0}},
		Intercept: []float64{0, 0, 0},
		Scaler:    &model.Scaler{Mean: []float64{1, 1}, Scale: []float64{2, 0}},
	})
	require.NoError(t, err)

	proba, err := clf.PredictProba(model.Row{7.0, 2.0})
	require.NoError(t, err)
	require.Len(t, proba, 3)
	var sum float64
	for _, p := range proba {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, proba[0], proba[1])

	pred, err := clf.Predict(model.Row{7.0, 2.0})
	require.NoError(t, err)
	assert.True(t, pred.IsLabel())
	assert.Equal(t, "a", pred.String())
}

func TestLogistic_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  model.Document
	}{
		{"no coef", model.Document{Kind: model.KindLogisticRegression, Classes: []model.ClassValue{model.IndexClass(0)}}},
		{"intercept mismatch", model.Document{
			Kind:      model.KindLogisticRegression,
			Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
			Coef:      [][]float64{{1}},
			Intercept: []float64{0, 1},
		}},
		{"rows for classes", model.Document{
			Kind:      model.KindLogisticRegression,
			Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1), model.IndexClass(2)},
			Coef:      [][]float64{{1}, {2}},
			Intercept: []float64{0, 0},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Build(&tt.doc)
			assert.Error(t, err)
		})
	}
}

func testTree() []model.TreeNode {
	return []model.TreeNode{
		{FeatureIdx: 0, Threshold: 50, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, Value: []float64{8, 2}},
		{IsLeaf: true, Value: []float64{1, 3}},
	}
}

func TestTree_Predict(t *testing.T) {
	clf, err := model.Build(&model.Document{
		Kind:      model.KindDecisionTree,
		Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
		NFeatures: 1,
		Nodes:     testTree(),
	})
	require.NoError(t, err)

	proba, err := clf.PredictProba(model.Row{40.0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 0.2}, proba, 1e-9)

	proba, err = clf.PredictProba(model.Row{"60"})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, proba, 1e-9)

	pred, err := clf.Predict(model.Row{50.0})
	require.NoError(t, err)
	assert.Equal(t, "0", pred.String())
}

func TestTree_InvalidChildren(t *testing.T) {
	nodes := testTree()
	nodes[0].LeftChild = 0
	_, err := model.Build(&model.Document{
		Kind:    model.KindDecisionTree,
		Classes: []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
		Nodes:   nodes,
	})
	assert.Error(t, err)
}

func TestTree_InvalidLeafWeights(t *testing.T) {
	tests := []struct {
		name  string
		value []float64
	}{
		{"negative", []float64{-1, 3}},
		{"nan", []float64{math.NaN(), 1}},
		{"infinite", []float64{1, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := testTree()
			nodes[1].Value = tt.value
			_, err := model.Build(&model.Document{
				Kind:    model.KindDecisionTree,
				Classes: []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
				Nodes:   nodes,
			})
			assert.ErrorContains(t, err, "invalid class weight")
		})
	}
}

func TestForest_AveragesTrees(t *testing.T) {
	second := []model.TreeNode{{IsLeaf: true, Value: []float64{0, 1}}}
	clf, err := model.Build(&model.Document{
		Kind:      model.KindRandomForest,
		Classes:   []model.ClassValue{model.LabelClass("No"), model.LabelClass("Yes")},
		NFeatures: 1,
		Trees:     [][]model.TreeNode{testTree(), second},
	})
	require.NoError(t, err)

	proba, err := clf.PredictProba(model.Row{40.0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.4, 0.6}, proba, 1e-9)

	pred, err := clf.Predict(model.Row{40.0})
	require.NoError(t, err)
	assert.Equal(t, "Yes", pred.String())
}

func TestRowConversion(t *testing.T) {
	clf, err := model.Build(&model.Document{
		Kind:      model.KindDecisionTree,
		Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
		NFeatures: 1,
		Nodes:     testTree(),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		row     model.Row
		wantErr string
	}{
		{"float", model.Row{1.5}, ""},
		{"json number", model.Row{json.Number("52")}, ""},
		{"numeric string", model.Row{" 52 "}, ""},
		{"bool", model.Row{true}, ""},
		{"text", model.Row{"abc"}, `could not convert string to float: "abc"`},
		{"null", model.Row{nil}, "input contains NaN"},
		{"wrong width", model.Row{1.0, 2.0}, "row has 2 features, but model is expecting 1 features as input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clf.PredictProba(tt.row)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPrediction_Resolve(t *testing.T) {
	classes := []string{"No Heart Disease", "Heart Disease Present"}
	tests := []struct {
		name      string
		pred      model.Prediction
		wantIndex int
		wantLabel string
		wantErr   bool
	}{
		{"index 0", model.IndexPrediction(0), 0, "No Heart Disease", false},
		{"index 1", model.IndexPrediction(1), 1, "Heart Disease Present", false},
		{"label", model.LabelPrediction("Heart Disease Present"), 1, "Heart Disease Present", false},
		{"unknown label", model.LabelPrediction("Maybe"), 0, "", true},
		{"index out of range", model.IndexPrediction(2), 0, "", true},
		{"negative index", model.IndexPrediction(-1), 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, label, err := tt.pred.Resolve(classes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestClassValue_JSON(t *testing.T) {
	var values []model.ClassValue
	require.NoError(t, json.Unmarshal([]byte(`[0, "Present", 2.0]`), &values))
	assert.Equal(t, []model.ClassValue{model.IndexClass(0), model.LabelClass("Present"), model.IndexClass(2)}, values)

	out, err := json.Marshal(values)
	require.NoError(t, err)
	assert.JSONEq(t, `[0, "Present", 2]`, string(out))

	var bad []model.ClassValue
	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`[true]`), &bad))
}

func TestDecode(t *testing.T) {
	clf, err := model.Decode([]byte(`{
		"kind": "decision_tree",
		"classes": [0, 1],
		"n_features": 1,
		"nodes": [{"is_leaf": true, "value": [1, 1]}]
	}`))
	require.NoError(t, err)
	assert.True(t, model.Available(clf))

	_, err = model.Decode([]byte(`{"kind": "svm", "classes": [0]}`))
	assert.ErrorIs(t, err, model.ErrUnknownKind)

	_, err = model.Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = model.Decode([]byte(`{"kind": "decision_tree"}`))
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	assert.False(t, model.Available(model.Unavailable))
	assert.False(t, model.Available(nil))

	_, err := model.Unavailable.Predict(model.Row{1.0})
	assert.ErrorIs(t, err, model.ErrUnavailable)
	_, err = model.Unavailable.PredictProba(model.Row{1.0})
	assert.ErrorIs(t, err, model.ErrUnavailable)
}
