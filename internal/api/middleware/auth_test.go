package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAPIKeyAuthWithKey(t *testing.T) {
	tests := []struct {
		name           string
		configuredKey  string
		headerKey      string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid API key",
			configuredKey:  "test-api-key",
			headerKey:      "test-api-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing API key header",
			configuredKey:  "test-api-key",
			headerKey:      "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or missing API key",
		},
		{
			name:           "invalid API key",
			configuredKey:  "test-api-key",
			headerKey:      "wrong-key",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or missing API key",
		},
		{
			name:           "no key configured",
			configuredKey:  "",
			headerKey:      "any-key",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "API key not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a test handler that returns 200 OK
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("OK"))
			})

			// Create middleware
			handler := APIKeyAuthWithKey(tt.configuredKey)(nextHandler)

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/api/v1/pressure/cpu", nil)
			if tt.headerKey != "" {
				req.Header.Set("X-API-Key", tt.headerKey)
			}

			// Create response recorder
			w := httptest.NewRecorder()

			// Execute middleware
			handler.ServeHTTP(w, req)

			// Check status code
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			// Check response body if expected
			if tt.expectedBody != "" {
				body := w.Body.String()
				if !strings.Contains(body, tt.expectedBody) {
					t.Errorf("expected body to contain %q, got %q", tt.expectedBody, body)
				}
			}

			// If status is OK, verify the next handler was called
			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "OK" {
					t.Errorf("expected next handler to be called, got body: %q", w.Body.String())
				}
			}
		})
	}
}
