package handlers

import (
	"github.com/gofiber/fiber/v3"

	"cardioserve/internal/artifact"
	"cardioserve/internal/config"
)

// FaviconPath is where /favicon.ico redirects to.
const FaviconPath = "/static/favicon.svg"

// PageData returns the values every template expects: the page title and
// the site title and tagline from cfg. Keys in extra are copied over them.
func PageData(cfg *config.Config, title string, extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":       title,
		"SiteTitle":   cfg.SiteTitle,
		"SiteTagline": cfg.SiteTagline,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// PageHandler renders the landing page.
type PageHandler struct {
	bundle *artifact.Bundle
	cfg    *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(bundle *artifact.Bundle, cfg *config.Config) *PageHandler {
	return &PageHandler{bundle: bundle, cfg: cfg}
}

// Index renders the prediction form. In degraded mode the form is shown
// disabled under a notice.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("index", PageData(h.cfg, "Predict", fiber.Map{
		"Features":    h.bundle.Features,
		"Classes":     h.bundle.Classes,
		"ModelLoaded": h.bundle.ModelLoaded(),
	}))
}

// Favicon redirects browsers to the bundled icon.
func (h *PageHandler) Favicon(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusTemporaryRedirect).To(FaviconPath)
}
