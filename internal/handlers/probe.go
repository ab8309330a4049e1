package handlers

import (
	"github.com/gofiber/fiber/v3"

	"cardioserve/internal/artifact"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	bundle *artifact.Bundle
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(bundle *artifact.Bundle) *ProbeHandler {
	return &ProbeHandler{bundle: bundle}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running, degraded or not.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK only when a model is loaded and predictions can be served.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if !h.bundle.ModelLoaded() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "model not loaded",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
