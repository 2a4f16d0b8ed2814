package domain

import "fmt"

// PressureKind represents the stall granularity reported by the kernel.
// Some means at least one task was stalled; Full means all tasks were
// stalled simultaneously.
type PressureKind string

const (
	KindSome PressureKind = "some"
	KindFull PressureKind = "full"
)

// ParsePressureKind maps a kernel line token to a PressureKind
func ParsePressureKind(s string) (PressureKind, error) {
	switch s {
	case "some":
		return KindSome, nil
	case "full":
		return KindFull, nil
	default:
		return "", fmt.Errorf("unknown pressure kind: %q", s)
	}
}

// ResourceClass selects which pressure pseudo-file is read and which
// default thresholds apply.
type ResourceClass string

const (
	ClassCPU    ResourceClass = "cpu"
	ClassIO     ResourceClass = "io"
	ClassMemory ResourceClass = "memory"
)

// Classes lists all resource classes in display order
var Classes = []ResourceClass{ClassCPU, ClassIO, ClassMemory}

// ParseResourceClass maps a CLI or URL token to a ResourceClass
func ParseResourceClass(s string) (ResourceClass, error) {
	switch s {
	case "cpu":
		return ClassCPU, nil
	case "io":
		return ClassIO, nil
	case "memory":
		return ClassMemory, nil
	default:
		return "", fmt.Errorf("unknown resource class: %q (expected cpu, io or memory)", s)
	}
}

// TimeWindow represents one of the trailing average windows the kernel
// exposes per pressure line.
type TimeWindow string

const (
	Avg10  TimeWindow = "avg10"
	Avg60  TimeWindow = "avg60"
	Avg300 TimeWindow = "avg300"
)

// Windows lists all time windows in the order the kernel prints them
var Windows = []TimeWindow{Avg10, Avg60, Avg300}

// MetricKey identifies one measured percentage within a resource class
type MetricKey struct {
	Kind   PressureKind
	Window TimeWindow
}

func (k MetricKey) String() string {
	return string(k.Kind) + "_" + string(k.Window)
}

// MetricKeys lists all (kind, window) combinations in reporting order:
// "some" before "full", shortest window first.
var MetricKeys = []MetricKey{
	{KindSome, Avg10},
	{KindSome, Avg60},
	{KindSome, Avg300},
	{KindFull, Avg10},
	{KindFull, Avg60},
	{KindFull, Avg300},
}

// Reading is a single stall percentage extracted from a pressure line.
// Value is the raw float from the kernel, not clamped; evaluation treats
// out-of-range values as unknown.
type Reading struct {
	Key   MetricKey
	Value float64
}

// NewReading creates a reading for the given kind and window
func NewReading(kind PressureKind, window TimeWindow, value float64) Reading {
	return Reading{
		Key:   MetricKey{Kind: kind, Window: window},
		Value: value,
	}
}
