// Package smoke posts sample patients to a running server and prints a
// readable report of each prediction.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultTimeout bounds each prediction request.
const DefaultTimeout = 5 * time.Second

const (
	boxWidth = 78
	barWidth = 20
)

// Patient is a named sample record.
type Patient struct {
	Name   string
	Fields map[string]any
}

// SamplePatients returns the two reference patients.
func SamplePatients() []Patient {
	return []Patient{
		{
			Name: "52-year-old Male with Typical Angina",
			Fields: map[string]any{
				"age": 52, "sex": 1, "cp": 0,
				"trestbps": 140, "chol": 230, "fbs": 0,
				"restecg": 0, "thalach": 160, "exang": 0,
				"oldpeak": 1.0, "slope": 0, "ca": 0, "thal": 0,
			},
		},
		{
			Name: "61-year-old Female with Atypical Angina",
			Fields: map[string]any{
				"age": 61, "sex": 0, "cp": 1,
				"trestbps": 150, "chol": 260, "fbs": 1,
				"restecg": 1, "thalach": 140, "exang": 1,
				"oldpeak": 2.3, "slope": 1, "ca": 1, "thal": 1,
			},
		},
	}
}

// Report counts the outcome of a run.
type Report struct {
	Total  int
	Passed int
	Failed int
}

// Client runs smoke tests against BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Out     io.Writer
	Now     func() time.Time
}

// NewClient creates a client with the default request timeout.
func NewClient(baseURL string, out io.Writer) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		Out:     out,
		Now:     time.Now,
	}
}

type predictResponse struct {
	Label         string             `json:"predicted_class_label"`
	Color         string             `json:"color"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	Error         string             `json:"error"`
}

// Run posts every patient and prints the results. It never stops early.
func (c *Client) Run(ctx context.Context, patients []Patient) Report {
	report := Report{Total: len(patients)}

	fmt.Fprintln(c.Out, "HEART DISEASE PREDICTION - RESULTS")
	fmt.Fprintf(c.Out, "Analysis Date: %s\n\n", c.Now().Format("02/01/2006, 15:04:05"))

	for i, p := range patients {
		fmt.Fprintf(c.Out, "TEST %d: %s\n", i+1, p.Name)
		c.printVitals(p.Fields)

		if err := c.check(ctx, p.Fields); err != nil {
			fmt.Fprintf(c.Out, "%s\n\n", describe(err, c.BaseURL))
			report.Failed++
			continue
		}
		report.Passed++
	}

	fmt.Fprintln(c.Out, "TEST SUMMARY")
	fmt.Fprintf(c.Out, "Total Tests: %d | Passed: %d | Failed: %d\n", report.Total, report.Passed, report.Failed)
	fmt.Fprintf(c.Out, "Analysis completed: %s\n", c.Now().Format("02/01/2006, 15:04:05"))
	return report
}

func (c *Client) printVitals(f map[string]any) {
	sex := "Female"
	if fmt.Sprint(f["sex"]) == "1" {
		sex = "Male"
	}
	fmt.Fprintf(c.Out, "Age: %v | Sex: %s\n", f["age"], sex)
	fmt.Fprintf(c.Out, "BP: %v mmHg | Chol: %v mg/dl | HR: %v bpm\n", f["trestbps"], f["chol"], f["thalach"])
}

var errServer = errors.New("server error")

func (c *Client) check(ctx context.Context, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "CardioServe-Smoke/1.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding response (HTTP %d): %w", resp.StatusCode, err)
	}
	if result.Error != "" {
		return fmt.Errorf("%w: %s", errServer, result.Error)
	}

	c.printResult(result)
	return nil
}

func (c *Client) printResult(r predictResponse) {
	fmt.Fprintf(c.Out, "\n PREDICTION RESULTS\n")
	fmt.Fprintf(c.Out, "┌%s┐\n", strings.Repeat("─", boxWidth))
	fmt.Fprintf(c.Out, "│ Diagnosis: %-30s Risk Level: %-20s Confidence: %5.1f%% │\n",
		strings.ToUpper(r.Label), strings.ToUpper(r.Color), r.Confidence)
	fmt.Fprintf(c.Out, "├%s┤\n", strings.Repeat("─", boxWidth))

	for _, cls := range sortedClasses(r.Probabilities) {
		pct := r.Probabilities[cls]
		fmt.Fprintf(c.Out, "│ %-20s %s %6.2f%% │\n", cls, Bar(pct), pct)
	}
	fmt.Fprintf(c.Out, "└%s┘\n\n", strings.Repeat("─", boxWidth))
}

// Bar renders a percentage as a 20 cell bar, one cell per 5%.
func Bar(pct float64) string {
	n := int(pct / 5)
	n = max(0, min(n, barWidth))
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// sortedClasses orders classes by descending probability, then by name.
func sortedClasses(probs map[string]float64) []string {
	classes := make([]string, 0, len(probs))
	for cls := range probs {
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool {
		if probs[classes[i]] != probs[classes[j]] {
			return probs[classes[i]] > probs[classes[j]]
		}
		return classes[i] < classes[j]
	})
	return classes
}

func describe(err error, baseURL string) string {
	var netErr net.Error
	switch {
	case errors.Is(err, errServer):
		return "ERROR: " + strings.TrimPrefix(err.Error(), errServer.Error()+": ")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "TIMEOUT ERROR: Server took too long to respond"
	case isConnectionError(err):
		return fmt.Sprintf("CONNECTION ERROR: Could not reach %s\nMake sure the server is running: cardioserve", baseURL)
	default:
		return "ERROR: " + err.Error()
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
