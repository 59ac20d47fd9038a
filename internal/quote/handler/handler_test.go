package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agency_backend/internal/quote/repository"
	"agency_backend/internal/quote/service"
	"agency_backend/internal/quote/transport"
	"agency_backend/internal/settings"
	platformvalidator "agency_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubStore struct{}

func (stubStore) AppendInquiry(context.Context, repository.Inquiry) error { return nil }
func (stubStore) FindRowByQuoteNumber(context.Context, string) (int, error) {
	return 1, nil
}
func (stubStore) UpdateAdditional(context.Context, int, string, string) error { return nil }

type stubSettings struct{}

func (stubSettings) Get(context.Context) settings.Snapshot {
	return settings.Snapshot{Settings: settings.Defaults()}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	val := platformvalidator.New()
	transport.RegisterValidations(val)
	svc := service.New(stubStore{}, stubSettings{}, nil, val, nil)

	engine := gin.New()
	h := New(svc)
	h.RegisterRoutes(engine.Group("/quote"), func(c *gin.Context) { c.Next() })
	return engine
}

func postSubmit(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/quote/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitTypeMismatchGetsFieldMessage(t *testing.T) {
	engine := newTestEngine(t)

	body := `{"clientName":"Kim Jiwoo","contactMethod":"email","clientEmail":"jiwoo@example.com",` +
		`"screenBlocks":{"min":"five","max":10},"uiuxStyle":"normal"}`
	w := postSubmit(engine, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "screenBlocks must be an object with numeric min and max") {
		t.Fatalf("expected the field's validation message, got %s", w.Body.String())
	}
}

func TestSubmitMalformedJSONGetsGenericMessage(t *testing.T) {
	engine := newTestEngine(t)

	w := postSubmit(engine, `{"clientName":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid request body") {
		t.Fatalf("expected generic body error, got %s", w.Body.String())
	}
}

func TestSubmitValidBodySucceeds(t *testing.T) {
	engine := newTestEngine(t)

	body := `{"clientName":"Kim Jiwoo","contactMethod":"email","clientEmail":"jiwoo@example.com",` +
		`"screenBlocks":{"min":5,"max":10},"uiuxStyle":"normal"}`
	w := postSubmit(engine, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"quoteNumber":"WD-`) {
		t.Fatalf("expected a quote number in the response, got %s", w.Body.String())
	}
}
