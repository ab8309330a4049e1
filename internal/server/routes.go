package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardioserve/internal/handlers"
	"cardioserve/internal/handlers/api"
	"cardioserve/internal/inference"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(svc *inference.Service, gatherer prometheus.Gatherer) {
	bundle := svc.Bundle()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(bundle, s.Cfg)
	probeHandler := handlers.NewProbeHandler(bundle)
	catalogHandler := api.NewCatalogHandler(bundle)
	predictHandler := api.NewPredictHandler(svc, s.Logger)

	// Frontend
	s.App.Get("/", pageHandler.Index)
	s.App.Get("/favicon.ico", pageHandler.Favicon)

	// JSON API
	s.App.Get("/health", catalogHandler.Health)
	s.App.Get("/features", catalogHandler.Features)
	s.App.Get("/classes", catalogHandler.Classes)
	s.App.Post("/predict", predictHandler.Predict)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
