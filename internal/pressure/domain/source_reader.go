package domain

import "context"

// SourceReader defines the interface for reading raw pressure metrics
// This interface abstracts file I/O and system-level operations from the domain layer
type SourceReader interface {
	// Read takes a point-in-time snapshot of the pressure metrics for a
	// resource class. It returns one Reading per (kind, window) pair the
	// source exposed.
	Read(ctx context.Context, class ResourceClass) ([]Reading, error)
}
