package infrastructure

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"psiprobe-v0/internal/pressure/domain"
)

// DefaultPressureRoot is where the kernel exposes the PSI interface
const DefaultPressureRoot = "/proc/pressure"

// ProcReader implements the domain SourceReader interface against the
// /proc/pressure pseudo-files. Expected file format, one line per kind:
//
//	some avg10=0.00 avg60=0.00 avg300=0.00 total=0
//	full avg10=0.00 avg60=0.00 avg300=0.00 total=0
type ProcReader struct {
	root string
}

// NewProcReader creates a reader rooted at the given directory; an empty
// root means /proc/pressure. A non-default root is used in tests and in
// containers that mount the host procfs elsewhere.
func NewProcReader(root string) domain.SourceReader {
	if root == "" {
		root = DefaultPressureRoot
	}
	return &ProcReader{root: root}
}

// Read parses the pseudo-file for the given resource class. A file that
// cannot be opened yields *domain.SourceUnavailableError; any line that
// does not match the kernel grammar aborts the read with
// *domain.MalformedSourceError and no partial readings.
func (r *ProcReader) Read(ctx context.Context, class domain.ResourceClass) ([]domain.Reading, error) {
	path := filepath.Join(r.root, string(class))

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	var readings []domain.Reading

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lineReadings, err := parseLine(line)
		if err != nil {
			return nil, &domain.MalformedSourceError{Path: path, Line: line}
		}
		readings = append(readings, lineReadings...)
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.SourceUnavailableError{Path: path, Err: err}
	}

	return readings, nil
}

// parseLine extracts the three window readings from one pressure line:
//
//	<kind> avg10=<float> avg60=<float> avg300=<float> total=<int>
func parseLine(line string) ([]domain.Reading, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return nil, strconv.ErrSyntax
	}

	kind, err := domain.ParsePressureKind(fields[0])
	if err != nil {
		return nil, err
	}

	readings := make([]domain.Reading, 0, len(domain.Windows))
	for i, window := range domain.Windows {
		value, err := parseField(fields[i+1], string(window))
		if err != nil {
			return nil, err
		}
		readings = append(readings, domain.NewReading(kind, window, value))
	}

	// total= is a stall-microseconds counter; not reported as a metric
	// but the line is invalid without it
	totalStr, ok := strings.CutPrefix(fields[4], "total=")
	if !ok {
		return nil, strconv.ErrSyntax
	}
	if _, err := strconv.ParseUint(totalStr, 10, 64); err != nil {
		return nil, err
	}

	return readings, nil
}

// parseField parses a non-negative "<name>=<float>" field. The kernel
// prints plain decimals only, so anything ParseFloat would additionally
// accept (NaN, Inf, exponents, signs) is rejected up front.
func parseField(field, name string) (float64, error) {
	valueStr, ok := strings.CutPrefix(field, name+"=")
	if !ok {
		return 0, strconv.ErrSyntax
	}

	for _, c := range valueStr {
		if (c < '0' || c > '9') && c != '.' {
			return 0, strconv.ErrSyntax
		}
	}

	return strconv.ParseFloat(valueStr, 64)
}
