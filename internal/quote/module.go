// Package quote provides the quote intake domain module: pricing, submission,
// and the follow-up update pathway.
package quote

import (
	"agency_backend/internal/events"
	apphttp "agency_backend/internal/http"
	"agency_backend/internal/quote/handler"
	"agency_backend/internal/quote/repository"
	"agency_backend/internal/quote/service"
	"agency_backend/internal/quote/transport"
	"agency_backend/platform/logger"
	"agency_backend/platform/validator"
)

// Module represents the quote domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new quote module with all dependencies wired.
func NewModule(client repository.RangeClient, inquiryRange string, settingsSrc service.SettingsSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	transport.RegisterValidations(val)

	repo := repository.New(client, inquiryRange)
	svc := service.New(repo, settingsSrc, bus, val, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quote"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/quote")
	m.handler.RegisterRoutes(group, ctx.SubmitLimiter.Middleware())
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
