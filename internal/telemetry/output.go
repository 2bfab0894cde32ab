package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"reiter-ca/internal/sims/reiter"
)

// Writer appends StepStats rows to a CSV stream and keeps them in memory
// for the growth chart. A nil *Writer is a valid no-op.
type Writer struct {
	out           io.Writer
	file          *os.File
	every         int
	headerWritten bool
	records       []StepStats
}

// NewWriter records every `every` steps to out. every <= 0 records each step.
func NewWriter(out io.Writer, every int) *Writer {
	if every <= 0 {
		every = 1
	}
	return &Writer{out: out, every: every}
}

// Create opens path (creating parent directories) and returns a Writer owning
// the file. Close releases it.
func Create(path string, every int) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	w := NewWriter(f, every)
	w.file = f
	return w, nil
}

// Write appends one record.
func (w *Writer) Write(stats StepStats) error {
	if w == nil {
		return nil
	}

	records := []StepStats{stats}

	if !w.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	w.records = append(w.records, stats)
	return nil
}

// Observe samples the flake on the writer's interval. The final step of a
// converged flake is always recorded.
func (w *Writer) Observe(f *reiter.Flake) error {
	if w == nil {
		return nil
	}
	if f.Steps()%w.every != 0 && !f.Converged() {
		return nil
	}
	return w.Write(Compute(f.Steps(), f.Lattice()))
}

// Records returns the rows written so far.
func (w *Writer) Records() []StepStats {
	if w == nil {
		return nil
	}
	return w.records
}

// Close closes the underlying file when the writer owns one.
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
