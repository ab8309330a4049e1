// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"

	"cardioserve/internal/artifact"
	"cardioserve/internal/model"
)

// Artifact encodings understood by the loader.
const (
	EncodingNative = "native"
	EncodingLegacy = "legacy"
	EncodingPlain  = "plain"
)

// Deployment file names written by WriteDeployment.
const (
	ModelFile    = "heart_disease_best_model.bin"
	FeaturesFile = "feature_columns.txt"
	ClassesFile  = "class_names.txt"
)

// SampleDocument returns a binary logistic regression over the default
// clinical features, emitting integer classes.
func SampleDocument() *model.Document {
	return &model.Document{
		Kind:      model.KindLogisticRegression,
		Classes:   []model.ClassValue{model.IndexClass(0), model.IndexClass(1)},
		NFeatures: len(artifact.DefaultFeatures),
		Coef: [][]float64{{
			0.02, 0.8, -0.7, 0.01, 0.003, 0.1, 0.2,
			-0.03, 0.9, 0.6, 0.4, 0.7, 0.5,
		}},
		Intercept: []float64{1.0},
	}
}

// LabelDocument returns a decision tree emitting string labels.
func LabelDocument(labels ...string) *model.Document {
	classes := make([]model.ClassValue, len(labels))
	low := make([]float64, len(labels))
	high := make([]float64, len(labels))
	for i, l := range labels {
		classes[i] = model.LabelClass(l)
		low[i], high[i] = 1, 1
	}
	low[0], high[len(high)-1] = 8, 8
	return &model.Document{
		Kind:      model.KindDecisionTree,
		Classes:   classes,
		NFeatures: len(artifact.DefaultFeatures),
		Nodes: []model.TreeNode{
			{FeatureIdx: 0, Threshold: 55, LeftChild: 1, RightChild: 2},
			{IsLeaf: true, Value: low},
			{IsLeaf: true, Value: high},
		},
	}
}

// EncodeArtifact serializes doc in the given encoding.
func EncodeArtifact(t *testing.T, doc *model.Document, encoding string) []byte {
	t.Helper()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal artifact: %v", err)
	}

	switch encoding {
	case EncodingNative:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("failed to create zstd encoder: %v", err)
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil)
	case EncodingLegacy:
		out, err := charmap.ISO8859_1.NewEncoder().Bytes(raw)
		if err != nil {
			t.Fatalf("failed to latin-1 encode artifact: %v", err)
		}
		return out
	default:
		return raw
	}
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteDeployment creates a deployment directory holding the model artifact
// and both side-car files. A nil doc leaves the model file absent.
func WriteDeployment(t *testing.T, doc *model.Document, encoding string, features, classes []string) artifact.Options {
	t.Helper()
	dir := t.TempDir()

	opts := artifact.Options{
		ModelPath:    filepath.Join(dir, ModelFile),
		FeaturesPath: filepath.Join(dir, FeaturesFile),
		ClassesPath:  filepath.Join(dir, ClassesFile),
	}
	if doc != nil {
		WriteFile(t, dir, ModelFile, EncodeArtifact(t, doc, encoding))
	}
	if features != nil {
		WriteFile(t, dir, FeaturesFile, []byte(strings.Join(features, "\n")+"\n"))
	}
	if classes != nil {
		WriteFile(t, dir, ClassesFile, []byte(strings.Join(classes, "\n")+"\n"))
	}
	return opts
}

// SamplePatient returns a complete, valid patient record.
func SamplePatient() map[string]any {
	return map[string]any{
		"age": 52, "sex": 1, "cp": 0,
		"trestbps": 140, "chol": 230, "fbs": 0,
		"restecg": 0, "thalach": 160, "exang": 0,
		"oldpeak": 1.0, "slope": 0, "ca": 0, "thal": 0,
	}
}
