package api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"cardioserve/internal/inference"
	"cardioserve/internal/metrics"
	"cardioserve/internal/models"
	"cardioserve/internal/validation"
)

// PredictHandler serves POST /predict.
type PredictHandler struct {
	svc    *inference.Service
	logger *slog.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(svc *inference.Service, logger *slog.Logger) *PredictHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictHandler{svc: svc, logger: logger}
}

// Predict validates the patient record, runs the model and returns the
// shaped result.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	log := h.logger.With("request_id", requestid.FromContext(c))

	body, err := decodeBody(c.Body())
	if err != nil {
		metrics.RecordPrediction(metrics.OutcomeRejected, "")
		if errors.Is(err, validation.ErrNoData) {
			return jsonError(c, fiber.StatusBadRequest, "No data provided")
		}
		return jsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	log.Info("received prediction request", "fields", len(body))

	fields, err := validation.ValidateFields(body, h.svc.Features())
	if err != nil {
		metrics.RecordPrediction(metrics.OutcomeRejected, "")
		var missing *validation.MissingFeaturesError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusBadRequest).JSON(models.MissingFeaturesResponse{
				Status:          "error",
				Error:           "Missing features",
				MissingFeatures: missing.Missing,
			})
		}
		return jsonError(c, fiber.StatusBadRequest, "No data provided")
	}

	out, err := h.svc.Predict(c.Context(), fields)
	if err != nil {
		if errors.Is(err, inference.ErrModelUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "Model not loaded")
		}
		log.Error("prediction error", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	result := h.svc.Shape(out)
	log.Info("prediction result",
		"class_index", result.PredictedClassIndex,
		"class_label", result.PredictedClassLabel,
		"confidence", result.Confidence,
		"cached", out.Cached,
	)
	return c.JSON(result)
}

// decodeBody parses a JSON object body. Absent, null or otherwise empty
// payloads report validation.ErrNoData.
func decodeBody(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, validation.ErrNoData
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	switch v := payload.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil, validation.ErrNoData
		}
		return v, nil
	case nil:
		return nil, validation.ErrNoData
	case []any:
		if len(v) == 0 {
			return nil, validation.ErrNoData
		}
	case bool:
		if !v {
			return nil, validation.ErrNoData
		}
	case float64:
		if v == 0 {
			return nil, validation.ErrNoData
		}
	case string:
		if v == "" {
			return nil, validation.ErrNoData
		}
	}
	return nil, errors.New("request body is not a JSON object")
}
