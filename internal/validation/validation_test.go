package validation

import (
	"errors"
	"testing"
)

var clinical = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs",
	"restecg", "thalach", "exang", "oldpeak",
	"slope", "ca", "thal",
}

func patient() map[string]any {
	return map[string]any{
		"age": 52.0, "sex": 1.0, "cp": 0.0,
		"trestbps": 140.0, "chol": 230.0, "fbs": 0.0,
		"restecg": 0.0, "thalach": 160.0, "exang": 0.0,
		"oldpeak": 1.0, "slope": 0.0, "ca": 0.0, "thal": 0.0,
	}
}

func TestValidateFields_NoData(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"nil body", nil},
		{"empty object", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFields(tt.body, clinical)
			if !errors.Is(err, ErrNoData) {
				t.Errorf("ValidateFields() error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestValidateFields_Missing(t *testing.T) {
	tests := []struct {
		name    string
		drop    []string
		missing []string
	}{
		{"age omitted", []string{"age"}, []string{"age"}},
		{"several omitted", []string{"thal", "age", "chol"}, []string{"age", "chol", "thal"}},
		{"last omitted", []string{"thal"}, []string{"thal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := patient()
			for _, k := range tt.drop {
				delete(body, k)
			}

			_, err := ValidateFields(body, clinical)
			if !errors.Is(err, ErrMissingFeatures) {
				t.Fatalf("ValidateFields() error = %v, want ErrMissingFeatures", err)
			}
			var mfe *MissingFeaturesError
			if !errors.As(err, &mfe) {
				t.Fatalf("ValidateFields() error %T is not *MissingFeaturesError", err)
			}
			if len(mfe.Missing) != len(tt.missing) {
				t.Fatalf("Missing = %v, want %v", mfe.Missing, tt.missing)
			}
			for i := range tt.missing {
				if mfe.Missing[i] != tt.missing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, mfe.Missing[i], tt.missing[i])
				}
			}
		})
	}
}

func TestValidateFields_OnlyExtraKeys(t *testing.T) {
	_, err := ValidateFields(map[string]any{"name": "John"}, clinical)
	var mfe *MissingFeaturesError
	if !errors.As(err, &mfe) {
		t.Fatalf("ValidateFields() error = %v, want *MissingFeaturesError", err)
	}
	if len(mfe.Missing) != len(clinical) {
		t.Errorf("Missing has %d names, want all %d", len(mfe.Missing), len(clinical))
	}
}

func TestValidateFields_IgnoresExtraKeys(t *testing.T) {
	body := patient()
	body["name"] = "52-year-old Male"
	body["notes"] = nil

	fields, err := ValidateFields(body, clinical)
	if err != nil {
		t.Fatalf("ValidateFields() error = %v", err)
	}
	if len(fields) != len(clinical) {
		t.Errorf("fields has %d entries, want %d", len(fields), len(clinical))
	}
	if _, ok := fields["name"]; ok {
		t.Error("extra key leaked into fields")
	}
}

func TestValidateFields_KeepsValuesUncoerced(t *testing.T) {
	body := patient()
	body["sex"] = "1"
	body["ca"] = nil

	fields, err := ValidateFields(body, clinical)
	if err != nil {
		t.Fatalf("ValidateFields() error = %v", err)
	}
	if fields["sex"] != "1" {
		t.Errorf("sex = %#v, want string \"1\"", fields["sex"])
	}
	if v, ok := fields["ca"]; !ok || v != nil {
		t.Errorf("ca = %#v (present %v), want explicit nil", v, ok)
	}
}

func TestFields_Row(t *testing.T) {
	fields := Fields{"b": 2.0, "a": 1.0, "c": "x"}
	row := fields.Row([]string{"c", "a", "b"})

	want := []any{"x", 1.0, 2.0}
	if len(row) != len(want) {
		t.Fatalf("Row() = %v, want %v", row, want)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Row()[%d] = %#v, want %#v", i, row[i], want[i])
		}
	}
}

func TestMissingFeaturesError_Message(t *testing.T) {
	err := &MissingFeaturesError{Missing: []string{"age", "sex"}}
	if got, want := err.Error(), "missing features: age, sex"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
