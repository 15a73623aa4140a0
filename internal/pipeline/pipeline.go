package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/lifecycle"
)

// System defines the transformation pipeline operations. Stages within one
// request run strictly sequentially; independent requests may run
// concurrently, each owning a disjoint set of temporary files.
type System interface {
	// DocumentScan isolates the document from its background and scans it
	// into a single-page PDF, binarized by default or color-preserving when
	// color is set. Returns the final PDF bytes; no intermediate artifact
	// survives the call.
	DocumentScan(ctx context.Context, image []byte, ext string, color bool) ([]byte, error)

	// MergePDF assembles multiple images into one A4-paged PDF, one image
	// per page, in input order.
	MergePDF(ctx context.Context, images [][]byte, exts []string) ([]byte, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type orchestrator struct {
	cfg    *config.PipelineConfig
	runner Runner
	logger *slog.Logger
}

// New creates a pipeline orchestrator with the subprocess runner.
func New(cfg *config.PipelineConfig, logger *slog.Logger) System {
	return &orchestrator{
		cfg:    cfg,
		runner: newExecRunner(cfg.PythonBin, cfg.ScriptsDir, cfg.StderrLimit),
		logger: logger.With("system", "pipeline"),
	}
}

// NewWithRunner creates a pipeline orchestrator with a custom stage runner.
// Used by tests to substitute subprocess invocation.
func NewWithRunner(cfg *config.PipelineConfig, runner Runner, logger *slog.Logger) System {
	return &orchestrator{
		cfg:    cfg,
		runner: runner,
		logger: logger.With("system", "pipeline"),
	}
}

func (o *orchestrator) Start(lc *lifecycle.Coordinator) error {
	o.logger.Info("starting pipeline system",
		"python_bin", o.cfg.PythonBin,
		"scripts_dir", o.cfg.ScriptsDir,
		"work_dir", o.cfg.WorkDir,
	)

	lc.OnStartup(func() {
		if err := os.MkdirAll(o.cfg.WorkDir, 0755); err != nil {
			o.logger.Error("pipeline work directory initialization failed", "error", err)
		}
	})

	return nil
}

func (o *orchestrator) DocumentScan(ctx context.Context, image []byte, ext string, color bool) ([]byte, error) {
	temps := newTempSet(o.cfg.WorkDir, o.logger)
	defer temps.cleanup()

	input, err := temps.write("input", ext, image)
	if err != nil {
		return nil, err
	}

	extracted := temps.file(StageExtract, ext)
	if err := o.run(ctx, Stage{
		Name:    StageExtract,
		Script:  scriptExtract,
		Args:    []string{input, extracted},
		Output:  extracted,
		Timeout: o.cfg.StageTimeoutDuration(),
	}); err != nil {
		return nil, err
	}

	scanScript := scriptScan
	if color {
		scanScript = scriptScanColor
	}

	scanned := temps.file(StageScan, ".pdf")
	if err := o.run(ctx, Stage{
		Name:    StageScan,
		Script:  scanScript,
		Args:    []string{extracted, scanned},
		Output:  scanned,
		Timeout: o.cfg.StageTimeoutDuration(),
	}); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(scanned)
	if err != nil {
		return nil, fmt.Errorf("read pipeline output: %w", err)
	}

	return data, nil
}

func (o *orchestrator) MergePDF(ctx context.Context, images [][]byte, exts []string) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("merge requires at least one image")
	}
	if len(images) != len(exts) {
		return nil, fmt.Errorf("merge inputs and extensions mismatch")
	}

	temps := newTempSet(o.cfg.WorkDir, o.logger)
	defer temps.cleanup()

	args := make([]string, 0, len(images)+1)
	for i, image := range images {
		input, err := temps.write("input", exts[i], image)
		if err != nil {
			return nil, err
		}
		args = append(args, input)
	}

	merged := temps.file(StageMerge, ".pdf")
	args = append(args, merged)

	if err := o.run(ctx, Stage{
		Name:    StageMerge,
		Script:  scriptMerge,
		Args:    args,
		Output:  merged,
		Timeout: o.cfg.MergeTimeoutDuration(),
	}); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(merged)
	if err != nil {
		return nil, fmt.Errorf("read pipeline output: %w", err)
	}

	return data, nil
}

func (o *orchestrator) run(ctx context.Context, stage Stage) error {
	o.logger.Debug("invoking stage", "stage", stage.Name, "script", stage.Script)

	if err := o.runner.Run(ctx, stage); err != nil {
		o.logger.Error("stage failed", "stage", stage.Name, "error", err)
		return err
	}

	o.logger.Debug("stage completed", "stage", stage.Name)
	return nil
}
