package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempSet tracks every temporary file created for one pipeline request.
// Cleanup removes all of them and never fails: deletion errors are logged
// and swallowed so cleanup can run on every exit path.
type tempSet struct {
	dir    string
	logger *slog.Logger
	paths  []string
}

func newTempSet(dir string, logger *slog.Logger) *tempSet {
	return &tempSet{dir: dir, logger: logger}
}

// file reserves a unique path for a stage artifact and registers it for
// cleanup. The uuid suffix keeps names collision-free across concurrent
// requests.
func (t *tempSet) file(stage, ext string) string {
	path := filepath.Join(t.dir, fmt.Sprintf("%s-%s%s", stage, uuid.New().String(), ext))
	t.paths = append(t.paths, path)
	return path
}

// write creates a registered temp file with the given contents.
func (t *tempSet) write(stage, ext string, data []byte) (string, error) {
	path := t.file(stage, ext)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}

// cleanup removes every registered path. Safe to call multiple times.
func (t *tempSet) cleanup() {
	for _, path := range t.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}
	t.paths = nil
}
