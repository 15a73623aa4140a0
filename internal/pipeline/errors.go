// Package pipeline orchestrates the external image transformation stages:
// background extraction, scan binarization, and multi-image PDF assembly.
// Each stage is a file-to-file subprocess; the orchestrator owns staging,
// validation, time bounds, and temporary file cleanup on every exit path.
package pipeline

import (
	"errors"
	"fmt"
)

// Pipeline errors.
var (
	// ErrStageTimeout indicates a stage exceeded its wall-clock bound and
	// was forcibly terminated.
	ErrStageTimeout = errors.New("pipeline: stage timed out")

	// ErrEmptyOutput indicates a stage reported success but produced a
	// missing or zero-byte output file.
	ErrEmptyOutput = errors.New("pipeline: stage produced no output")
)

// StageError identifies the failing stage and carries a bounded excerpt of
// its diagnostic output.
type StageError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *StageError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("stage %s: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
