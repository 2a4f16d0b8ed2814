package domain

import "fmt"

// SourceUnavailableError indicates the pressure pseudo-file could not be
// opened or read at all. On kernels or containers without the PSI
// interface this is the expected outcome, so it stays distinguishable
// from broken file contents.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("pressure source %s unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedSourceError indicates a pressure line did not match the
// expected kernel grammar. The whole read is discarded; no partial
// readings are returned alongside this error.
type MalformedSourceError struct {
	Path string
	Line string
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("pressure source %s contains unexpected line: %q", e.Path, e.Line)
}
