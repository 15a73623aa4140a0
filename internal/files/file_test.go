package files

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/pagination"
)

func testPaginationConfig() pagination.Config {
	return pagination.Config{DefaultLimit: 20, MaxLimit: 100}
}

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusActive, true},
		{StatusDeleted, true},
		{Status("archived"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.expected {
				t.Errorf("Valid(%q) = %v, expected %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestThumbnailKey(t *testing.T) {
	withKeys := FileRecord{ArtifactKeys: []string{"files/o/first.jpg", "files/o/second.jpg"}}
	if key := withKeys.ThumbnailKey(); key != "files/o/first.jpg" {
		t.Errorf("Expected first artifact key, got %q", key)
	}

	empty := FileRecord{}
	if key := empty.ThumbnailKey(); key != "" {
		t.Errorf("Expected empty key for metadata-only record, got %q", key)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces", "my photo.jpg", "my_photo.jpg"},
		{"path stripped", "/etc/passwd", "passwd"},
		{"traversal stripped", "../../escape.png", "escape.png"},
		{"special chars", `a:b*c?d"e<f>g|h.png`, "a_b_c_d_e_f_g_h.png"},
		{"clean passthrough", "receipt-2026.pdf", "receipt-2026.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildArtifactKey(t *testing.T) {
	owner := uuid.New()

	key := buildArtifactKey(owner, "scan page 1.jpg")

	if !strings.HasPrefix(key, "files/"+owner.String()+"/") {
		t.Errorf("Key should be namespaced under the owner, got %q", key)
	}
	if !strings.HasSuffix(key, "-scan_page_1.jpg") {
		t.Errorf("Key should end with the sanitized filename, got %q", key)
	}

	if key == buildArtifactKey(owner, "scan page 1.jpg") {
		t.Error("Keys for identical filenames must be unique")
	}
}

func TestDetectContentType(t *testing.T) {
	if ct := detectContentType("files/o/doc.pdf", []byte("anything")); ct != "application/pdf" {
		t.Errorf("Expected application/pdf from key suffix, got %q", ct)
	}

	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	if ct := detectContentType("files/o/image", png); ct != "image/png" {
		t.Errorf("Expected sniffed image/png, got %q", ct)
	}
}

func TestDedupeIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name     string
		input    []uuid.UUID
		expected []uuid.UUID
	}{
		{"no duplicates", []uuid.UUID{a, b}, []uuid.UUID{a, b}},
		{"repeated id", []uuid.UUID{a, a, b, a}, []uuid.UUID{a, b}},
		{"all identical", []uuid.UUID{b, b, b}, []uuid.UUID{b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupeIDs(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d ids, got %d", len(tt.expected), len(got))
			}
			for i, id := range tt.expected {
				if got[i] != id {
					t.Errorf("Id %d: expected %s, got %s", i, id, got[i])
				}
			}
		})
	}
}

func TestMapRetrieveErr(t *testing.T) {
	wrapped := fmt.Errorf("get object: %w", storage.ErrNotFound)
	if got := mapRetrieveErr(wrapped); !errors.Is(got, ErrNotFound) {
		t.Errorf("Wrapped not-found should map to ErrNotFound, got %v", got)
	}

	if got := mapRetrieveErr(storage.ErrNotFound); !errors.Is(got, ErrNotFound) {
		t.Errorf("Bare not-found should map to ErrNotFound, got %v", got)
	}

	if got := mapRetrieveErr(errors.New("throttled")); !errors.Is(got, ErrUpstream) {
		t.Errorf("Other failures should map to ErrUpstream, got %v", got)
	}
}

func TestUUIDArray(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	got := uuidArray([]uuid.UUID{a, b})
	expected := "{" + a.String() + "," + b.String() + "}"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestArtifactKeys_ScanValue(t *testing.T) {
	keys := artifactKeys{"files/o/a.jpg", "files/o/b.jpg"}

	value, err := keys.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var decoded artifactKeys
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(decoded) != 2 || decoded[0] != keys[0] || decoded[1] != keys[1] {
		t.Errorf("Round trip changed keys: %v", decoded)
	}

	var fromNil artifactKeys
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if fromNil == nil || len(fromNil) != 0 {
		t.Errorf("Nil source should scan to empty slice, got %v", fromNil)
	}
}
