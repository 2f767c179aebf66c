package health_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/payment-orchestrator/internal/http/handlers/health"
)

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		configured   bool
		expectedBody string
	}{
		{
			name:         "провайдер настроен",
			configured:   true,
			expectedBody: `{"status":"OK","data":{"processor_configured":true}}`,
		},
		{
			name:         "провайдер не настроен",
			configured:   false,
			expectedBody: `{"status":"OK","data":{"processor_configured":false}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.New(logger, tt.configured)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			// сам ключ в ответ не попадает
			assert.NotContains(t, w.Body.String(), "sk_")
		})
	}
}
