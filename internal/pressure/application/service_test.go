package application

import (
	"context"
	"errors"
	"testing"

	"psiprobe-v0/internal/infrastructure/logger"
	"psiprobe-v0/internal/pressure/domain"
	"psiprobe-v0/internal/shared/validation"
)

// fakeReader returns canned readings or a canned error
type fakeReader struct {
	readings []domain.Reading
	err      error
}

func (r *fakeReader) Read(ctx context.Context, class domain.ResourceClass) ([]domain.Reading, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.readings, nil
}

func TestServiceCheck(t *testing.T) {
	reader := &fakeReader{
		readings: []domain.Reading{
			domain.NewReading(domain.KindSome, domain.Avg10, 6.00),
			domain.NewReading(domain.KindSome, domain.Avg60, 2.00),
			domain.NewReading(domain.KindSome, domain.Avg300, 1.00),
			domain.NewReading(domain.KindFull, domain.Avg10, 0.10),
			domain.NewReading(domain.KindFull, domain.Avg60, 0.10),
			domain.NewReading(domain.KindFull, domain.Avg300, 0.10),
		},
	}

	service := NewService(logger.DefaultLogger(), reader)
	result, err := service.Check(context.Background(), domain.ClassCPU, domain.Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Overall != domain.SeverityWarning {
		t.Errorf("overall = %v, want %v", result.Overall, domain.SeverityWarning)
	}
	if len(result.Verdicts) != 6 {
		t.Errorf("expected 6 verdicts, got %d", len(result.Verdicts))
	}
}

func TestServiceCheckInvalidOverrideBeforeRead(t *testing.T) {
	readErr := &domain.SourceUnavailableError{Path: "/proc/pressure/cpu", Err: errors.New("should not be reached")}
	reader := &fakeReader{err: readErr}

	bad := domain.Threshold{Warn: 9, Crit: 1}
	service := NewService(logger.DefaultLogger(), reader)

	_, err := service.Check(context.Background(), domain.ClassCPU, domain.Overrides{SomeAvg10: &bad})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// the threshold error must win: the reader is never consulted
	var valErr *validation.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected validation error, got %T: %v", err, err)
	}
}

func TestServiceCheckSourceUnavailable(t *testing.T) {
	reader := &fakeReader{
		err: &domain.SourceUnavailableError{Path: "/proc/pressure/io", Err: errors.New("no such file")},
	}

	service := NewService(logger.DefaultLogger(), reader)
	_, err := service.Check(context.Background(), domain.ClassIO, domain.Overrides{})

	var unavailable *domain.SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
}

func TestNewCheckResponse(t *testing.T) {
	readings := []domain.Reading{
		domain.NewReading(domain.KindSome, domain.Avg10, 12.00),
	}
	result := domain.EvaluateAll(domain.ClassCPU, readings, domain.DefaultThresholds(domain.ClassCPU))

	resp := NewCheckResponse(result)

	if resp.Class != "cpu" {
		t.Errorf("class = %q, want %q", resp.Class, "cpu")
	}
	if resp.Overall != "CRITICAL" {
		t.Errorf("overall = %q, want %q", resp.Overall, "CRITICAL")
	}
	if resp.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", resp.ExitCode)
	}
	if len(resp.Verdicts) != 6 {
		t.Fatalf("expected 6 verdicts, got %d", len(resp.Verdicts))
	}

	first := resp.Verdicts[0]
	if first.Kind != "some" || first.Window != "avg10" {
		t.Errorf("first verdict = %s/%s, want some/avg10", first.Kind, first.Window)
	}
	if first.Value == nil || *first.Value != 12.00 {
		t.Errorf("first verdict value = %v, want 12.00", first.Value)
	}

	// unmeasured metrics carry no value
	for _, v := range resp.Verdicts[1:] {
		if v.Value != nil {
			t.Errorf("%s/%s: expected nil value, got %g", v.Kind, v.Window, *v.Value)
		}
		if v.Severity != "UNKNOWN" {
			t.Errorf("%s/%s: severity = %q, want UNKNOWN", v.Kind, v.Window, v.Severity)
		}
	}
}
