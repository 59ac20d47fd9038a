// Package handler exposes the public quote endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"agency_backend/internal/quote/service"
	"agency_backend/internal/quote/transport"
	"agency_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request body"
const msgValidationFailed = "validation failed"

// Handler handles the public quote intake routes.
type Handler struct {
	svc *service.Service
}

// New creates a quote handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the quote routes. Only the submit route is gated by
// the rate limiter; update passes unconditionally.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, submitLimiter gin.HandlerFunc) {
	rg.POST("/submit", submitLimiter, h.Submit)
	rg.PUT("/update", h.Update)
}

// Submit handles POST /api/v1/quote/submit.
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := bindDetails(err); details != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, details)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Update handles PUT /api/v1/quote/update.
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := bindDetails(err); details != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, details)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Update(c.Request.Context(), req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}

// bindDetails maps a JSON type mismatch onto the same per-field message the
// validator would produce, so a string where a number belongs reads no
// differently to the caller than any other invalid field. Malformed JSON and
// unknown fields fall through to the generic body error.
func bindDetails(err error) []string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil
	}

	field := typeErr.Field
	switch {
	case field == "screenBlocks" || strings.HasPrefix(field, "screenBlocks."):
		return []string{"screenBlocks must be an object with numeric min and max"}
	case field == "uiuxStyle":
		return []string{"uiuxStyle must be one of normal, fancy"}
	case field == "contactMethod":
		return []string{"contactMethod must be one of email, sms, phone"}
	case field != "":
		return []string{field + " is invalid"}
	}
	return nil
}
