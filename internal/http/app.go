// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"agency_backend/platform/config"
	"agency_backend/platform/httpkit"
	"agency_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.AdminConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and admin settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// SubmitLimiter is the per-IP limiter for the submission endpoint.
	SubmitLimiter *httpkit.SubmitLimiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
