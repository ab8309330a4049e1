package models

import "time"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string    `json:"status"`
	ModelLoaded    bool      `json:"model_loaded"`
	FeaturesLoaded bool      `json:"features_loaded"`
	ClassesLoaded  bool      `json:"classes_loaded"`
	ModelStrategy  string    `json:"model_strategy,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// FeaturesResponse is the body of GET /features.
type FeaturesResponse struct {
	Features []string `json:"features"`
	Count    int      `json:"count"`
}

// ClassesResponse is the body of GET /classes.
type ClassesResponse struct {
	Classes []string `json:"classes"`
	Count   int      `json:"count"`
}

// MissingFeaturesResponse is the 400 body returned when required features are absent.
type MissingFeaturesResponse struct {
	Status          string   `json:"status"`
	Error           string   `json:"error"`
	MissingFeatures []string `json:"missing_features"`
}

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)
