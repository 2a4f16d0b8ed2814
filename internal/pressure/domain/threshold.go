package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"psiprobe-v0/internal/shared/validation"
)

// Severity is the outcome of evaluating one metric. The numeric values
// match the monitoring-plugin exit code convention.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Threshold is a warning/critical bound pair for one metric, both
// expressed as stall percentages.
type Threshold struct {
	Warn float64
	Crit float64
}

// NewThreshold creates a threshold, enforcing 0 <= warn <= crit <= 100
func NewThreshold(warn, crit float64) (Threshold, error) {
	t := Threshold{Warn: warn, Crit: crit}

	problems := t.Valid()
	if len(problems) > 0 {
		return Threshold{}, validation.NewValidationError(problems, "threshold")
	}

	return t, nil
}

// Valid returns a map of field problems, empty when the pair is usable
func (t Threshold) Valid() map[string]string {
	problems := make(map[string]string, 2)

	if math.IsNaN(t.Warn) || t.Warn < 0 || t.Warn > 100 {
		problems["warn"] = "must be a percentage between 0 and 100"
	}
	if math.IsNaN(t.Crit) || t.Crit < 0 || t.Crit > 100 {
		problems["crit"] = "must be a percentage between 0 and 100"
	}
	if len(problems) == 0 && t.Warn > t.Crit {
		problems["warn"] = "must not exceed crit"
	}

	return problems
}

// Evaluate scores a measured stall percentage against the threshold.
// Values outside [0,100], NaN included, cannot have come from a sane
// pressure line and evaluate to unknown rather than a false negative.
func (t Threshold) Evaluate(value float64) Severity {
	switch {
	case math.IsNaN(value) || value < 0 || value > 100:
		return SeverityUnknown
	case value >= t.Crit:
		return SeverityCritical
	case value >= t.Warn:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

func (t Threshold) String() string {
	return fmt.Sprintf("%g:%g", t.Warn, t.Crit)
}

// ParseThreshold parses the CLI "WARN:CRIT" form, e.g. "5:10" or
// "2.5:7.5", applying the same validation as NewThreshold
func ParseThreshold(s string) (Threshold, error) {
	warnStr, critStr, found := strings.Cut(s, ":")
	if !found {
		return Threshold{}, validation.NewValidationError(map[string]string{
			"format": fmt.Sprintf("expected WARN:CRIT, got %q", s),
		}, "threshold")
	}

	warn, err := strconv.ParseFloat(warnStr, 64)
	if err != nil {
		return Threshold{}, validation.NewValidationError(map[string]string{
			"warn": fmt.Sprintf("not a number: %q", warnStr),
		}, "threshold")
	}

	crit, err := strconv.ParseFloat(critStr, 64)
	if err != nil {
		return Threshold{}, validation.NewValidationError(map[string]string{
			"crit": fmt.Sprintf("not a number: %q", critStr),
		}, "threshold")
	}

	return NewThreshold(warn, crit)
}

// Overrides carries the optional per-metric threshold replacements
// resolved from CLI flags. A nil field keeps the default for that metric.
type Overrides struct {
	SomeAvg10  *Threshold
	SomeAvg60  *Threshold
	SomeAvg300 *Threshold
	FullAvg10  *Threshold
	FullAvg60  *Threshold
	FullAvg300 *Threshold
}

func (o Overrides) forKey(key MetricKey) *Threshold {
	switch key {
	case MetricKey{KindSome, Avg10}:
		return o.SomeAvg10
	case MetricKey{KindSome, Avg60}:
		return o.SomeAvg60
	case MetricKey{KindSome, Avg300}:
		return o.SomeAvg300
	case MetricKey{KindFull, Avg10}:
		return o.FullAvg10
	case MetricKey{KindFull, Avg60}:
		return o.FullAvg60
	case MetricKey{KindFull, Avg300}:
		return o.FullAvg300
	default:
		return nil
	}
}

// ResolveThresholds overlays the defaults for a resource class with any
// set overrides. Every override is re-validated so a bad pair is caught
// before evaluation begins.
func ResolveThresholds(class ResourceClass, overrides Overrides) (map[MetricKey]Threshold, error) {
	resolved := DefaultThresholds(class)

	for _, key := range MetricKeys {
		override := overrides.forKey(key)
		if override == nil {
			continue
		}

		problems := override.Valid()
		if len(problems) > 0 {
			return nil, validation.NewValidationError(problems, key.String())
		}

		resolved[key] = *override
	}

	return resolved, nil
}
