package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/logging"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{
		Level:  logging.LevelInfo,
		Format: logging.FormatJSON,
	}, &buf)

	logger.Info("started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, `"msg":"started"`) {
		t.Errorf("Expected JSON output, got %q", out)
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{
		Level:  logging.LevelInfo,
		Format: logging.FormatText,
	}, &buf)

	logger.Info("started")

	out := buf.String()
	if !strings.Contains(out, "msg=started") {
		t.Errorf("Expected text output, got %q", out)
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{
		Level:  logging.LevelError,
		Format: logging.FormatText,
	}, &buf)

	logger.Info("dropped")
	logger.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("Info record should be filtered at error level, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("Error record should pass, got %q", out)
	}
}

func TestLevel_Validate(t *testing.T) {
	tests := []struct {
		level logging.Level
		valid bool
	}{
		{logging.LevelDebug, true},
		{logging.LevelInfo, true},
		{logging.LevelWarn, true},
		{logging.LevelError, true},
		{logging.Level("verbose"), false},
		{logging.Level(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			err := tt.level.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate(%q) error: %v", tt.level, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate(%q) should fail", tt.level)
			}
		})
	}
}

func TestFormat_Validate(t *testing.T) {
	if err := logging.FormatJSON.Validate(); err != nil {
		t.Errorf("Validate(json) error: %v", err)
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("Validate(xml) should fail")
	}
}
