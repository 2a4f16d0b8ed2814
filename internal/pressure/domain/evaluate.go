package domain

// MetricVerdict is the scored outcome for one (kind, window) metric.
// Measured is false when the source held no reading for the key; the
// verdict is still emitted so a short or truncated pressure file is
// visible in the report instead of silently shrinking it.
type MetricVerdict struct {
	Key       MetricKey
	Value     float64
	Measured  bool
	Threshold Threshold
	Severity  Severity
}

// CheckResult aggregates the verdicts of one snapshot evaluation
type CheckResult struct {
	Class    ResourceClass
	Verdicts []MetricVerdict
	Overall  Severity
}

// EvaluateAll scores every resolved threshold key against the readings
// taken from the pressure source. Ordering of the verdicts follows
// MetricKeys regardless of the order lines appeared in the file.
//
// Unknown verdicts (missing or out-of-range readings) are surfaced but
// do not escalate the overall severity past the maximum of the concrete
// verdicts. Only when no metric produced a concrete verdict at all does
// the overall severity become unknown.
func EvaluateAll(class ResourceClass, readings []Reading, thresholds map[MetricKey]Threshold) CheckResult {
	byKey := make(map[MetricKey]Reading, len(readings))
	for _, r := range readings {
		byKey[r.Key] = r
	}

	result := CheckResult{
		Class:    class,
		Verdicts: make([]MetricVerdict, 0, len(MetricKeys)),
		Overall:  SeverityUnknown,
	}

	anyConcrete := false
	overall := SeverityOK

	for _, key := range MetricKeys {
		threshold, ok := thresholds[key]
		if !ok {
			continue
		}

		verdict := MetricVerdict{
			Key:       key,
			Threshold: threshold,
			Severity:  SeverityUnknown,
		}

		if reading, ok := byKey[key]; ok {
			verdict.Value = reading.Value
			verdict.Measured = true
			verdict.Severity = threshold.Evaluate(reading.Value)
		}

		if verdict.Severity != SeverityUnknown {
			anyConcrete = true
			if verdict.Severity > overall {
				overall = verdict.Severity
			}
		}

		result.Verdicts = append(result.Verdicts, verdict)
	}

	if anyConcrete {
		result.Overall = overall
	}

	return result
}
