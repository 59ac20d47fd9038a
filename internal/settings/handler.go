package settings

import (
	"net/http"
	"time"

	"agency_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the quote-settings config endpoints.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a settings handler.
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

type settingsResponse struct {
	Success   bool           `json:"success"`
	Data      *QuoteSettings `json:"data"`
	CachedAt  time.Time      `json:"cachedAt"`
	FromCache bool           `json:"fromCache"`
	Fallback  bool           `json:"fallback,omitempty"`
}

// GetQuoteSettings handles GET /api/v1/config/quote-settings.
// Always 200: a degraded read serves the compiled-in defaults with
// fallback=true rather than failing.
func (h *Handler) GetQuoteSettings(c *gin.Context) {
	snap := h.resolver.Get(c.Request.Context())

	httpkit.OK(c, settingsResponse{
		Success:   true,
		Data:      snap.Settings,
		CachedAt:  snap.CachedAt,
		FromCache: snap.FromCache,
		Fallback:  snap.Fallback,
	})
}

// InitConfig handles POST /api/v1/config/init. Seeding is idempotent: values
// are overwritten in place, rows are never duplicated.
func (h *Handler) InitConfig(c *gin.Context) {
	if err := h.resolver.Init(c.Request.Context()); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to seed configuration", nil)
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}
