package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"psiprobe-v0/internal/infrastructure/logger"
	pressureapp "psiprobe-v0/internal/pressure/application"
	"psiprobe-v0/internal/pressure/domain"
	"psiprobe-v0/internal/shared/validation"
)

// PressureHandler serves on-demand pressure checks
type PressureHandler struct {
	logger  *logger.Logger
	service *pressureapp.Service
}

// NewPressureHandler creates a new pressure handler
func NewPressureHandler(logger *logger.Logger, service *pressureapp.Service) *PressureHandler {
	return &PressureHandler{
		logger:  logger,
		service: service,
	}
}

// Check handles GET /api/v1/pressure/{class}. Each request takes a fresh
// snapshot; nothing is cached or stored. Threshold overrides come in as
// optional WARN:CRIT query parameters named like the CLI flags
// (some_avg10 .. full_avg300).
func (h *PressureHandler) Check(w http.ResponseWriter, r *http.Request) {
	class, err := domain.ParseResourceClass(chi.URLParam(r, "class"))
	if err != nil {
		respondJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	overrides, err := overridesFromQuery(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Check(r.Context(), class, overrides)
	if err != nil {
		var valErr *validation.ValidationError
		if errors.As(err, &valErr) {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		// unreadable or malformed source: the probe itself is fine but
		// cannot answer, which maps to service-unavailable
		h.logger.Warn("Pressure check failed", "class", class, "err", err)
		respondJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	h.logger.Debug("Pressure check served", "class", class, "overall", result.Overall.String())
	respondJSON(w, http.StatusOK, pressureapp.NewCheckResponse(result))
}

// overridesFromQuery parses the optional per-metric threshold parameters
func overridesFromQuery(r *http.Request) (domain.Overrides, error) {
	var overrides domain.Overrides

	fields := []struct {
		name   string
		target **domain.Threshold
	}{
		{"some_avg10", &overrides.SomeAvg10},
		{"some_avg60", &overrides.SomeAvg60},
		{"some_avg300", &overrides.SomeAvg300},
		{"full_avg10", &overrides.FullAvg10},
		{"full_avg60", &overrides.FullAvg60},
		{"full_avg300", &overrides.FullAvg300},
	}

	for _, field := range fields {
		raw := r.URL.Query().Get(field.name)
		if raw == "" {
			continue
		}

		threshold, err := domain.ParseThreshold(raw)
		if err != nil {
			var valErr *validation.ValidationError
			if errors.As(err, &valErr) {
				valErr.PrependPath(field.name)
			}
			return domain.Overrides{}, err
		}
		*field.target = &threshold
	}

	return overrides, nil
}
