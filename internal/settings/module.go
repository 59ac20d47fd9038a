package settings

import (
	apphttp "agency_backend/internal/http"
	"agency_backend/platform/config"
	"agency_backend/platform/logger"
)

// Module is the settings domain module.
type Module struct {
	resolver *Resolver
	handler  *Handler
}

// ModuleConfig combines the config interfaces the module needs.
type ModuleConfig interface {
	config.SettingsConfig
	config.SheetsConfig
}

// NewModule creates the settings module with all dependencies wired.
func NewModule(store Store, cfg ModuleConfig, log *logger.Logger) *Module {
	resolver := NewResolver(store, cfg.GetSheetsConfigRange(), cfg.GetSettingsTTL(), log)
	return &Module{
		resolver: resolver,
		handler:  NewHandler(resolver),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "settings"
}

// Resolver returns the resolver for other modules (the pricing pipeline).
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	cfg := ctx.V1.Group("/config")
	cfg.GET("/quote-settings", m.handler.GetQuoteSettings)

	// Seeding is operator-only.
	ctx.Admin.POST("/config/init", m.handler.InitConfig)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
