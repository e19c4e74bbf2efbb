package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/James1Law/vibe-test-carpenter-site/config"
	v1 "github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/v1"
	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactSubmission) (*domain.ContactResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactResult), args.Error(1)
}

type MockHealthUsecase struct {
	mock.Mock
}

func (m *MockHealthUsecase) Check(ctx context.Context) domain.HealthReport {
	return m.Called(ctx).Get(0).(domain.HealthReport)
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:                   gin.TestMode,
		AllowedOrigins:            []string{"https://wrightanglecarpentry.co.uk"},
		ContactFromEmail:          config.DefaultFromEmail,
		ContactEmailTo:            config.DefaultToEmail,
		ContactSubject:            config.DefaultSubject,
		RateLimitWindowSeconds:    600,
		RateLimitContactThreshold: 100,
		RateLimitGlobalThreshold:  1000,
	}
}

func newTestRouter(uc domain.ContactUsecase, cfg *config.Config, logs *bytes.Buffer) *gin.Engine {
	if logs == nil {
		logs = &bytes.Buffer{}
	}
	health := new(MockHealthUsecase)
	health.On("Check", mock.Anything).Return(domain.HealthReport{Status: "ok", Email: "configured", RateLimitStore: "memory"})

	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		HealthUC:  health,
		Config:    cfg,
		Logger:    slog.New(slog.NewJSONHandler(logs, nil)),
	})
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const validBody = `{"name":"John Smith","email":"john@example.com","phone":"07700 900000","message":"I would like a quote for kitchen cabinets."}`

func TestSendEmail_Success(t *testing.T) {
	uc := new(MockContactUsecase)
	uc.On("SendContactMessage", mock.Anything, &domain.ContactSubmission{
		Name:    "John Smith",
		Email:   "john@example.com",
		Phone:   "07700 900000",
		Message: "I would like a quote for kitchen cabinets.",
	}).Return(&domain.ContactResult{MessageID: "msg_123"}, nil).Once()

	w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"messageId":"msg_123"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	uc.AssertExpectations(t)
}

func TestSendEmail_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			uc := new(MockContactUsecase)

			w := doRequest(newTestRouter(uc, testConfig(), nil), method, "/api/sendEmail", `not json at all`)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
			assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
			uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestSendEmail_InvalidInput(t *testing.T) {
	t.Run("Should return every field error", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(nil, &domain.ValidationError{
			Fields: domain.ContactSubmission{Name: "J", Email: "invalid-email", Message: "short"}.Validate(),
		}).Once()

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail",
			`{"name":"J","email":"invalid-email","message":"short"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error": "Invalid input",
			"details": [
				{"field": "name", "message": "Name must be at least 2 characters"},
				{"field": "email", "message": "Please enter a valid email address"},
				{"field": "message", "message": "Message must be at least 10 characters"}
			]
		}`, w.Body.String())
	})

	t.Run("Should reject malformed JSON without calling the usecase", func(t *testing.T) {
		uc := new(MockContactUsecase)

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid input", decodeBody(t, w)["error"])
		uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
	})

	t.Run("Should reject wrong field types", func(t *testing.T) {
		uc := new(MockContactUsecase)

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail",
			`{"name":42,"email":"john@example.com","message":"I would like a quote."}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name must be text")
	})

	t.Run("Should reject empty body", func(t *testing.T) {
		uc := new(MockContactUsecase)

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid input", decodeBody(t, w)["error"])
	})

	t.Run("Should reject oversized bodies", func(t *testing.T) {
		uc := new(MockContactUsecase)
		body := fmt.Sprintf(`{"name":"John","email":"john@example.com","message":%q}`, strings.Repeat("a", 20<<10))

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Request body is too large")
	})
}

func TestSendEmail_ProviderFailure(t *testing.T) {
	uc := new(MockContactUsecase)
	logs := &bytes.Buffer{}
	providerErr := &email.ProviderError{Provider: "resend", Code: "validation_error", Message: "domain wrightangle.test is not verified"}
	uc.On("SendContactMessage", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", domain.ErrEmailSendFailed, providerErr)).Once()

	w := doRequest(newTestRouter(uc, testConfig(), logs), http.MethodPost, "/api/sendEmail", validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "not verified")
	assert.Contains(t, logs.String(), "not verified")
}

func TestSendEmail_UnexpectedError(t *testing.T) {
	t.Run("Should hide unknown errors", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(nil, errors.New("nil map write in composer")).Once()

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("Should recover from panics", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("boom")
		}).Return(nil, nil)

		w := doRequest(newTestRouter(uc, testConfig(), nil), http.MethodPost, "/api/sendEmail", validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestSendEmail_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitContactThreshold = 2
	uc := new(MockContactUsecase)
	uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(&domain.ContactResult{MessageID: "m"}, nil)
	r := newTestRouter(uc, cfg, nil)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/sendEmail", validBody).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/sendEmail", validBody).Code)

	w := doRequest(r, http.MethodPost, "/api/sendEmail", validBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests. Please try again later.", decodeBody(t, w)["error"])
	uc.AssertNumberOfCalls(t, "SendContactMessage", 2)

	// Wrong verbs are rejected before they count against the limit.
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(r, http.MethodGet, "/api/sendEmail", "").Code)
}

func TestPreflight(t *testing.T) {
	r := newTestRouter(new(MockContactUsecase), testConfig(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/sendEmail", nil)
	req.Header.Set("Origin", "https://wrightanglecarpentry.co.uk")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://wrightanglecarpentry.co.uk", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndNotFound(t *testing.T) {
	r := newTestRouter(new(MockContactUsecase), testConfig(), nil)

	w := doRequest(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","email":"configured","rate_limit_store":"memory"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}
