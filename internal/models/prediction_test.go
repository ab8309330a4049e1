package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPalette_Color(t *testing.T) {
	tests := []struct {
		name     string
		palette  Palette
		index    int
		expected string
	}{
		{"index 0", DefaultPalette(), 0, "green"},
		{"index 1", DefaultPalette(), 1, "lightgreen"},
		{"index 2", DefaultPalette(), 2, "orange"},
		{"index 3", DefaultPalette(), 3, "red"},
		{"index 4", DefaultPalette(), 4, "darkred"},
		{"index beyond table", DefaultPalette(), 5, "gray"},
		{"negative index", DefaultPalette(), -1, "gray"},
		{"override entry", NewPalette(map[int]string{1: "yellow"}, ""), 1, "yellow"},
		{"override keeps others", NewPalette(map[int]string{1: "yellow"}, ""), 0, "green"},
		{"custom fallback", NewPalette(nil, "black"), 9, "black"},
		{"zero value palette", Palette{}, 0, "gray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.palette.Color(tt.index); got != tt.expected {
				t.Errorf("Color(%d) = %q, want %q", tt.index, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 100},
		{0.5, 50},
		{0.123456, 12.35},
		{0.876544, 87.65},
		{0.00005, 0.01},
		{0.99999, 100},
		{0.33333333, 33.33},
		{0.00125, 0.12},
	}

	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShapePrediction(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	classes := []string{"No Heart Disease", "Heart Disease Present"}

	res := ShapePrediction(1, "Heart Disease Present", []float64{0.324567, 0.675433}, classes, DefaultPalette(), now)

	if res.PredictedClassIndex != 1 || res.PredictedClassLabel != "Heart Disease Present" {
		t.Errorf("prediction = (%d, %q)", res.PredictedClassIndex, res.PredictedClassLabel)
	}
	if res.Color != "lightgreen" {
		t.Errorf("Color = %q, want lightgreen", res.Color)
	}
	if res.Confidence != 67.54 {
		t.Errorf("Confidence = %v, want 67.54", res.Confidence)
	}
	if len(res.Probabilities) != len(classes) {
		t.Fatalf("Probabilities has %d entries, want %d", len(res.Probabilities), len(classes))
	}
	if p, _ := res.Probabilities.Get("No Heart Disease"); p != 32.46 {
		t.Errorf("No Heart Disease = %v, want 32.46", p)
	}
	if !res.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", res.Timestamp, now)
	}
}

func TestProbabilities_MarshalJSONKeepsOrder(t *testing.T) {
	probs := Probabilities{
		{Label: "zeta", Percent: 10},
		{Label: "alpha", Percent: 62.5},
		{Label: "mid \"quoted\"", Percent: 27.5},
	}

	out, err := json.Marshal(probs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"zeta":10,"alpha":62.5,"mid \"quoted\"":27.5}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}

	empty, err := json.Marshal(Probabilities{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(empty) != "{}" {
		t.Errorf("Marshal(empty) = %s, want {}", empty)
	}
}

func TestPredictionResult_JSONKeys(t *testing.T) {
	res := ShapePrediction(0, "No Heart Disease", []float64{0.9, 0.1}, []string{"No Heart Disease", "Heart Disease Present"}, DefaultPalette(), time.Now())
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(out, &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"predicted_class_index", "predicted_class_label", "color", "confidence", "probabilities", "timestamp"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing key %q", key)
		}
	}
	if _, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string)); err != nil {
		t.Errorf("timestamp %v is not ISO 8601: %v", body["timestamp"], err)
	}
}
