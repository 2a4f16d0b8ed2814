package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"psiprobe-v0/internal/infrastructure/logger"
	pressureapp "psiprobe-v0/internal/pressure/application"
	"psiprobe-v0/internal/pressure/domain"
)

// stubReader serves a fixed snapshot
type stubReader struct {
	readings []domain.Reading
	err      error
}

func (r *stubReader) Read(ctx context.Context, class domain.ResourceClass) ([]domain.Reading, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.readings, nil
}

func newTestRouter(reader domain.SourceReader) http.Handler {
	appLogger := logger.DefaultLogger()
	service := pressureapp.NewService(appLogger, reader)
	handler := NewPressureHandler(appLogger, service)

	r := chi.NewRouter()
	r.Get("/api/v1/pressure/{class}", handler.Check)
	return r
}

func quietSnapshot() []domain.Reading {
	return []domain.Reading{
		domain.NewReading(domain.KindSome, domain.Avg10, 1.50),
		domain.NewReading(domain.KindSome, domain.Avg60, 1.00),
		domain.NewReading(domain.KindSome, domain.Avg300, 0.50),
		domain.NewReading(domain.KindFull, domain.Avg10, 0.10),
		domain.NewReading(domain.KindFull, domain.Avg60, 0.10),
		domain.NewReading(domain.KindFull, domain.Avg300, 0.10),
	}
}

func TestPressureHandlerCheck(t *testing.T) {
	router := newTestRouter(&stubReader{readings: quietSnapshot()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pressure/memory", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pressureapp.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Overall != "OK" {
		t.Errorf("overall = %q, want OK", resp.Overall)
	}
	if len(resp.Verdicts) != 6 {
		t.Errorf("expected 6 verdicts, got %d", len(resp.Verdicts))
	}
}

func TestPressureHandlerQueryOverride(t *testing.T) {
	router := newTestRouter(&stubReader{readings: quietSnapshot()})

	// default memory some/avg10 is 5:10; the override drops warn below
	// the measured 1.50
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pressure/memory?some_avg10=1:2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pressureapp.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Overall != "WARNING" {
		t.Errorf("overall = %q, want WARNING", resp.Overall)
	}
}

func TestPressureHandlerBadOverride(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "inverted bounds", query: "some_avg10=10:5"},
		{name: "not numbers", query: "full_avg60=a:b"},
		{name: "missing separator", query: "full_avg300=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubReader{readings: quietSnapshot()})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/pressure/cpu?"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPressureHandlerMalformedSource(t *testing.T) {
	router := newTestRouter(&stubReader{
		err: &domain.MalformedSourceError{Path: "/proc/pressure/io", Line: "garbage"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pressure/io", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message in response")
	}
}
