package pipeline

import "time"

// Stage script file names, resolved against the configured scripts directory.
const (
	scriptExtract   = "extract_image.py"
	scriptScan      = "scan_image.py"
	scriptScanColor = "scan_image_color.py"
	scriptMerge     = "merge_images_to_pdf.py"
)

// Stage names reported in failures.
const (
	StageExtract = "extract"
	StageScan    = "scan"
	StageMerge   = "merge"
)

// Stage describes one pipeline invocation: a script reading an input file
// (or files) and writing a single output file.
type Stage struct {
	Name    string
	Script  string
	Args    []string
	Output  string
	Timeout time.Duration
}
