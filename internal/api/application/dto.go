package application

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the liveness endpoint payload
type HealthResponse struct {
	Status string `json:"status"`
}
