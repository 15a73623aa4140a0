package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Runner executes a single stage. Implementations must enforce the stage
// timeout and terminate the underlying process when it is exceeded.
type Runner interface {
	Run(ctx context.Context, stage Stage) error
}

// execRunner runs stage scripts as subprocesses via the configured python
// interpreter.
type execRunner struct {
	pythonBin   string
	scriptsDir  string
	stderrLimit int
}

func newExecRunner(pythonBin, scriptsDir string, stderrLimit int) Runner {
	return &execRunner{
		pythonBin:   pythonBin,
		scriptsDir:  scriptsDir,
		stderrLimit: stderrLimit,
	}
}

func (r *execRunner) Run(ctx context.Context, stage Stage) error {
	stageCtx, cancel := context.WithTimeout(ctx, stage.Timeout)
	defer cancel()

	script := filepath.Join(r.scriptsDir, stage.Script)
	args := append([]string{script}, stage.Args...)

	cmd := exec.CommandContext(stageCtx, r.pythonBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// CommandContext sends SIGKILL on cancellation; WaitDelay bounds how
	// long Wait blocks on lingering pipe readers after the kill.
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()

	if stageCtx.Err() == context.DeadlineExceeded {
		return &StageError{
			Stage:  stage.Name,
			Stderr: truncate(stderr.String(), r.stderrLimit),
			Err:    ErrStageTimeout,
		}
	}

	if err != nil {
		return &StageError{
			Stage:  stage.Name,
			Stderr: truncate(stderr.String(), r.stderrLimit),
			Err:    err,
		}
	}

	// A stage that exits zero without producing output is still a failure.
	if err := validateOutput(stage.Output); err != nil {
		return &StageError{
			Stage:  stage.Name,
			Stderr: truncate(stderr.String(), r.stderrLimit),
			Err:    err,
		}
	}

	return nil
}

func validateOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrEmptyOutput
		}
		return err
	}
	if info.Size() == 0 {
		return ErrEmptyOutput
	}
	return nil
}

func truncate(s string, limit int) string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
