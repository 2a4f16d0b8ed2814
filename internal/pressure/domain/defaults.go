package domain

import "fmt"

// defaultTable holds the baseline thresholds per resource class. CPU and
// memory share a table; IO stalls are routine at higher percentages and
// get looser bounds.
var defaultTable = map[ResourceClass]map[MetricKey]Threshold{
	ClassCPU: {
		{KindFull, Avg10}:  {Warn: 3, Crit: 5},
		{KindFull, Avg60}:  {Warn: 2, Crit: 3},
		{KindFull, Avg300}: {Warn: 1, Crit: 2},
		{KindSome, Avg10}:  {Warn: 5, Crit: 10},
		{KindSome, Avg60}:  {Warn: 3, Crit: 7},
		{KindSome, Avg300}: {Warn: 2, Crit: 5},
	},
	ClassIO: {
		{KindFull, Avg10}:  {Warn: 5, Crit: 10},
		{KindFull, Avg60}:  {Warn: 3, Crit: 7},
		{KindFull, Avg300}: {Warn: 1, Crit: 3},
		{KindSome, Avg10}:  {Warn: 10, Crit: 20},
		{KindSome, Avg60}:  {Warn: 7, Crit: 15},
		{KindSome, Avg300}: {Warn: 5, Crit: 10},
	},
	ClassMemory: {
		{KindFull, Avg10}:  {Warn: 3, Crit: 5},
		{KindFull, Avg60}:  {Warn: 2, Crit: 3},
		{KindFull, Avg300}: {Warn: 1, Crit: 2},
		{KindSome, Avg10}:  {Warn: 5, Crit: 10},
		{KindSome, Avg60}:  {Warn: 3, Crit: 7},
		{KindSome, Avg300}: {Warn: 2, Crit: 5},
	},
}

// init asserts the table covers every (class, kind, window) combination
// with a valid pair, so DefaultThresholds is a total function.
func init() {
	for _, class := range Classes {
		entries, ok := defaultTable[class]
		if !ok {
			panic(fmt.Sprintf("default threshold table: missing class %q", class))
		}
		for _, key := range MetricKeys {
			t, ok := entries[key]
			if !ok {
				panic(fmt.Sprintf("default threshold table: missing %s/%s", class, key))
			}
			if problems := t.Valid(); len(problems) > 0 {
				panic(fmt.Sprintf("default threshold table: invalid %s/%s: %v", class, key, problems))
			}
		}
	}
}

// DefaultThresholds returns a mutable copy of the baseline thresholds
// for a resource class
func DefaultThresholds(class ResourceClass) map[MetricKey]Threshold {
	entries := defaultTable[class]

	out := make(map[MetricKey]Threshold, len(entries))
	for key, t := range entries {
		out[key] = t
	}

	return out
}
