package pagination_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/pagination"
)

func TestCursor_EncodeDecode(t *testing.T) {
	original := pagination.Cursor{
		UpdatedAt: 1724900000000,
		ID:        uuid.New(),
	}

	token := original.Encode()
	if token == "" {
		t.Fatal("Encode() returned empty token")
	}

	decoded := pagination.DecodeCursor(token)
	if decoded == nil {
		t.Fatal("DecodeCursor() returned nil for valid token")
	}

	if decoded.UpdatedAt != original.UpdatedAt {
		t.Errorf("Expected UpdatedAt %d, got %d", original.UpdatedAt, decoded.UpdatedAt)
	}
	if decoded.ID != original.ID {
		t.Errorf("Expected ID %s, got %s", original.ID, decoded.ID)
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"not json", "bm90LWpzb24"},
		{"wrong shape", "eyJmb28iOiJiYXIifQ"},
		{"truncated", "eyJ1IjoxNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := pagination.DecodeCursor(tt.token); c != nil {
				t.Errorf("Expected nil cursor for %q, got %+v", tt.token, c)
			}
		})
	}
}

func TestDecodeCursor_OpaqueRoundTrip(t *testing.T) {
	first := pagination.Cursor{UpdatedAt: 100, ID: uuid.New()}
	second := pagination.Cursor{UpdatedAt: 100, ID: uuid.New()}

	if first.Encode() == second.Encode() {
		t.Error("Cursors with different ids should encode to different tokens")
	}
}
