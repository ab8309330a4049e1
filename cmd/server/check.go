package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cardioserve/internal/validation"
)

var errModelNotLoaded = errors.New("model not loaded")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the deployment directory and report what was found",
	Long: "check loads the model and side-car files exactly as the server would, prints a summary " +
		"and optionally runs one prediction from a JSON patient record.",
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("predict", "", "path to a JSON patient record to run through the model")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	b := a.bundle

	fmt.Fprintf(out, "model:    %s\n", a.cfg.ModelPath())
	if b.ModelLoaded() {
		fmt.Fprintf(out, "          loaded (%s)\n", b.Strategy)
	} else {
		fmt.Fprintf(out, "          NOT LOADED: %v\n", b.ModelErr)
	}
	fmt.Fprintf(out, "features: %d %s %s\n", len(b.Features), source(b.FeaturesFromFile), strings.Join(b.Features, ", "))
	fmt.Fprintf(out, "classes:  %d %s %s\n", len(b.Classes), source(b.ClassesFromFile), strings.Join(b.Classes, ", "))

	if !b.ModelLoaded() {
		return errModelNotLoaded
	}

	path, _ := cmd.Flags().GetString("predict")
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	fields, err := validation.ValidateFields(body, a.svc.Features())
	if err != nil {
		return err
	}
	outcome, err := a.svc.Predict(cmd.Context(), fields)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(a.svc.Shape(outcome))
}

func source(fromFile bool) string {
	if fromFile {
		return "(file)"
	}
	return "(defaults)"
}
