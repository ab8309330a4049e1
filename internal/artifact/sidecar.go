package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DefaultFeatures is the clinical feature order used when the feature file
// cannot be read.
var DefaultFeatures = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs",
	"restecg", "thalach", "exang", "oldpeak",
	"slope", "ca", "thal",
}

// DefaultClasses is the class list used when the class file cannot be read.
var DefaultClasses = []string{"No Heart Disease", "Heart Disease Present"}

var errEmptyFile = errors.New("file has no entries")

// ReadLines reads one trimmed token per line, skipping blank lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errEmptyFile
	}
	return lines, nil
}

// LoadFeatures reads the ordered feature names, falling back to defaults.
// The boolean reports whether the list came from the file.
func LoadFeatures(path string, defaults []string, logger *slog.Logger) ([]string, bool) {
	return loadList("features", path, defaults, logger, nil)
}

// LoadClasses reads the ordered class labels, falling back to defaults.
// Labels key the probability map, so a file repeating one is rejected.
func LoadClasses(path string, defaults []string, logger *slog.Logger) ([]string, bool) {
	return loadList("classes", path, defaults, logger, distinct)
}

func distinct(lines []string) error {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l] {
			return fmt.Errorf("duplicate entry %q", l)
		}
		seen[l] = true
	}
	return nil
}

func loadList(kind, path string, defaults []string, logger *slog.Logger, check func([]string) error) ([]string, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	lines, err := ReadLines(path)
	if err == nil && check != nil {
		err = check(lines)
	}
	if err != nil {
		logger.Error("error loading "+kind+", using defaults", "path", path, "error", err)
		return append([]string(nil), defaults...), false
	}
	logger.Info("loaded "+kind, "count", len(lines), kind, lines)
	return lines, true
}
