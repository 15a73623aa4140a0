package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvPipelinePythonBin overrides the python interpreter used for stages.
	EnvPipelinePythonBin = "PIPELINE_PYTHON_BIN"

	// EnvPipelineScriptsDir overrides the directory containing stage scripts.
	EnvPipelineScriptsDir = "PIPELINE_SCRIPTS_DIR"

	// EnvPipelineWorkDir overrides the temporary working directory.
	EnvPipelineWorkDir = "PIPELINE_WORK_DIR"

	// EnvPipelineStageTimeout overrides the per-stage wall-clock timeout.
	EnvPipelineStageTimeout = "PIPELINE_STAGE_TIMEOUT"

	// EnvPipelineMergeTimeout overrides the merge-stage timeout.
	EnvPipelineMergeTimeout = "PIPELINE_MERGE_TIMEOUT"

	// EnvPipelineStderrLimit overrides the captured stderr excerpt bound.
	EnvPipelineStderrLimit = "PIPELINE_STDERR_LIMIT"
)

// PipelineConfig contains transformation pipeline configuration.
type PipelineConfig struct {
	PythonBin    string `toml:"python_bin"`
	ScriptsDir   string `toml:"scripts_dir"`
	WorkDir      string `toml:"work_dir"`
	StageTimeout string `toml:"stage_timeout"`
	MergeTimeout string `toml:"merge_timeout"`
	StderrLimit  int    `toml:"stderr_limit"`
}

// StageTimeoutDuration parses and returns the per-stage timeout.
func (c *PipelineConfig) StageTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.StageTimeout)
	return d
}

// MergeTimeoutDuration parses and returns the merge-stage timeout.
// Multi-image merges are bounded separately because their cost grows with
// the number of inputs.
func (c *PipelineConfig) MergeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.MergeTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the pipeline configuration.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.PythonBin != "" {
		c.PythonBin = overlay.PythonBin
	}
	if overlay.ScriptsDir != "" {
		c.ScriptsDir = overlay.ScriptsDir
	}
	if overlay.WorkDir != "" {
		c.WorkDir = overlay.WorkDir
	}
	if overlay.StageTimeout != "" {
		c.StageTimeout = overlay.StageTimeout
	}
	if overlay.MergeTimeout != "" {
		c.MergeTimeout = overlay.MergeTimeout
	}
	if overlay.StderrLimit != 0 {
		c.StderrLimit = overlay.StderrLimit
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.PythonBin == "" {
		c.PythonBin = "python3"
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = "scripts"
	}
	if c.WorkDir == "" {
		c.WorkDir = os.TempDir()
	}
	if c.StageTimeout == "" {
		c.StageTimeout = "60s"
	}
	if c.MergeTimeout == "" {
		c.MergeTimeout = "120s"
	}
	if c.StderrLimit == 0 {
		c.StderrLimit = 2048
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelinePythonBin); v != "" {
		c.PythonBin = v
	}
	if v := os.Getenv(EnvPipelineScriptsDir); v != "" {
		c.ScriptsDir = v
	}
	if v := os.Getenv(EnvPipelineWorkDir); v != "" {
		c.WorkDir = v
	}
	if v := os.Getenv(EnvPipelineStageTimeout); v != "" {
		c.StageTimeout = v
	}
	if v := os.Getenv(EnvPipelineMergeTimeout); v != "" {
		c.MergeTimeout = v
	}
	if v := os.Getenv(EnvPipelineStderrLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.StderrLimit = n
		}
	}
}

func (c *PipelineConfig) validate() error {
	if c.PythonBin == "" {
		return fmt.Errorf("python_bin required")
	}
	if c.ScriptsDir == "" {
		return fmt.Errorf("scripts_dir required")
	}
	if _, err := time.ParseDuration(c.StageTimeout); err != nil {
		return fmt.Errorf("invalid stage_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.MergeTimeout); err != nil {
		return fmt.Errorf("invalid merge_timeout: %w", err)
	}
	if c.StderrLimit < 1 {
		return fmt.Errorf("stderr_limit must be positive")
	}
	return nil
}
