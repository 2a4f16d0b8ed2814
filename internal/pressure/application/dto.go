package application

import "psiprobe-v0/internal/pressure/domain"

// VerdictResponse represents one scored metric in API responses
type VerdictResponse struct {
	Kind     string   `json:"kind"`
	Window   string   `json:"window"`
	Value    *float64 `json:"value,omitempty"`
	Warn     float64  `json:"warn"`
	Crit     float64  `json:"crit"`
	Severity string   `json:"severity"`
}

// CheckResponse represents a full check outcome in API responses
type CheckResponse struct {
	Class    string            `json:"class"`
	Overall  string            `json:"overall"`
	ExitCode int               `json:"exit_code"`
	Verdicts []VerdictResponse `json:"verdicts"`
}

// NewCheckResponse converts a domain check result to its API shape
func NewCheckResponse(result domain.CheckResult) CheckResponse {
	verdicts := make([]VerdictResponse, 0, len(result.Verdicts))
	for _, v := range result.Verdicts {
		resp := VerdictResponse{
			Kind:     string(v.Key.Kind),
			Window:   string(v.Key.Window),
			Warn:     v.Threshold.Warn,
			Crit:     v.Threshold.Crit,
			Severity: v.Severity.String(),
		}
		if v.Measured {
			value := v.Value
			resp.Value = &value
		}
		verdicts = append(verdicts, resp)
	}

	return CheckResponse{
		Class:    string(result.Class),
		Overall:  result.Overall.String(),
		ExitCode: int(result.Overall),
		Verdicts: verdicts,
	}
}
