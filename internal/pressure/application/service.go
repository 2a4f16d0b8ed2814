package application

import (
	"context"
	"errors"

	"psiprobe-v0/internal/infrastructure/logger"
	"psiprobe-v0/internal/pressure/domain"
)

// Service runs point-in-time pressure checks. It is stateless; every
// Check call reads the source and evaluates it fresh.
type Service struct {
	logger *logger.Logger
	reader domain.SourceReader
}

// NewService creates a new pressure check service
func NewService(logger *logger.Logger, reader domain.SourceReader) *Service {
	return &Service{
		logger: logger,
		reader: reader,
	}
}

// Check takes one snapshot of the pressure metrics for a resource class
// and scores it against the resolved thresholds. Threshold resolution
// errors are returned before the source is touched.
func (s *Service) Check(ctx context.Context, class domain.ResourceClass, overrides domain.Overrides) (domain.CheckResult, error) {
	thresholds, err := domain.ResolveThresholds(class, overrides)
	if err != nil {
		s.logger.Error("Invalid threshold configuration", "class", class, "err", err)
		return domain.CheckResult{}, err
	}

	readings, err := s.reader.Read(ctx, class)
	if err != nil {
		var unavailable *domain.SourceUnavailableError
		if errors.As(err, &unavailable) {
			s.logger.Warn("Pressure source unavailable", "class", class, "path", unavailable.Path, "err", unavailable.Err)
		} else {
			s.logger.Error("Pressure source read failed", "class", class, "err", err)
		}
		return domain.CheckResult{}, err
	}

	result := domain.EvaluateAll(class, readings, thresholds)
	s.logger.Debug("Pressure check evaluated",
		"class", class,
		"readings", len(readings),
		"overall", result.Overall.String(),
	)

	return result, nil
}
