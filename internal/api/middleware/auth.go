package middleware

import (
	"encoding/json"
	"net/http"

	api "psiprobe-v0/internal/api/application"
)

// APIKeyAuthWithKey validates the X-API-Key header against the
// configured key. An empty expected key rejects everything; the server
// only installs this middleware outside dev mode.
func APIKeyAuthWithKey(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expectedKey == "" {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respondJSONError(w, http.StatusInternalServerError, "API key not configured")
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" || apiKey != expectedKey {
				respondJSONError(w, http.StatusUnauthorized, "Invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// respondJSONError sends a JSON error response
func respondJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	response := api.ErrorResponse{Error: message}
	json.NewEncoder(w).Encode(response)
}
