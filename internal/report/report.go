// Package report renders check results in the monitoring-plugin text and
// exit-code convention: one summary line on stdout, detail lines for
// anything non-OK, exit 0/1/2/3 for OK/WARNING/CRITICAL/UNKNOWN.
package report

import (
	"fmt"
	"strings"

	"psiprobe-v0/internal/pressure/domain"
)

// Render formats a check result. The first line carries the overall
// status and every metric value; one indented line per non-OK verdict
// follows with the bounds that produced it.
func Render(result domain.CheckResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s PRESSURE %s |", className(result.Class), result.Overall)
	for _, v := range result.Verdicts {
		if v.Measured {
			fmt.Fprintf(&b, " %s=%.2f%%", v.Key, v.Value)
		} else {
			fmt.Fprintf(&b, " %s=U", v.Key)
		}
	}

	for _, v := range result.Verdicts {
		switch v.Severity {
		case domain.SeverityOK:
			continue
		case domain.SeverityUnknown:
			if v.Measured {
				fmt.Fprintf(&b, "\n  UNKNOWN: %s reading %.2f is outside 0-100", v.Key, v.Value)
			} else {
				fmt.Fprintf(&b, "\n  UNKNOWN: %s has no reading", v.Key)
			}
		default:
			fmt.Fprintf(&b, "\n  %s: %s is %.2f%% (warn %.2f, crit %.2f)",
				v.Severity, v.Key, v.Value, v.Threshold.Warn, v.Threshold.Crit)
		}
	}

	return b.String()
}

// RenderError formats a failed check (unreadable source, malformed
// content, bad configuration) as an UNKNOWN summary line
func RenderError(class domain.ResourceClass, err error) string {
	msg := strings.TrimSpace(err.Error())
	return fmt.Sprintf("%s PRESSURE UNKNOWN: %s", className(class), msg)
}

// ExitCode maps a severity onto the plugin exit-code contract
func ExitCode(s domain.Severity) int {
	switch s {
	case domain.SeverityOK, domain.SeverityWarning, domain.SeverityCritical:
		return int(s)
	default:
		return int(domain.SeverityUnknown)
	}
}

func className(class domain.ResourceClass) string {
	return strings.ToUpper(string(class))
}
