package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"cardioserve/internal/artifact"
	"cardioserve/internal/models"
)

// CatalogHandler serves the health report and the feature and class lists.
type CatalogHandler struct {
	bundle *artifact.Bundle
	now    func() time.Time
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(bundle *artifact.Bundle) *CatalogHandler {
	return &CatalogHandler{bundle: bundle, now: time.Now}
}

// Health reports whether the model and side-car lists are loaded. It always
// answers 200; degraded mode is reported in the body.
func (h *CatalogHandler) Health(c fiber.Ctx) error {
	status := models.StatusHealthy
	if !h.bundle.ModelLoaded() {
		status = models.StatusUnhealthy
	}

	return c.JSON(models.HealthResponse{
		Status:         status,
		ModelLoaded:    h.bundle.ModelLoaded(),
		FeaturesLoaded: len(h.bundle.Features) > 0,
		ClassesLoaded:  len(h.bundle.Classes) > 0,
		ModelStrategy:  h.bundle.Strategy,
		Timestamp:      h.now(),
	})
}

// Features lists the required input features in model order.
func (h *CatalogHandler) Features(c fiber.Ctx) error {
	return c.JSON(models.FeaturesResponse{
		Features: h.bundle.Features,
		Count:    len(h.bundle.Features),
	})
}

// Classes lists the class labels in index order.
func (h *CatalogHandler) Classes(c fiber.Ctx) error {
	return c.JSON(models.ClassesResponse{
		Classes: h.bundle.Classes,
		Count:   len(h.bundle.Classes),
	})
}
