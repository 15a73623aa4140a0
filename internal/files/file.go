// Package files provides user-owned file management: batch upload into the
// object store, cursor-paginated listing, batch deletion, and scan/merge
// transformations producing derived PDF records.
package files

import (
	"github.com/google/uuid"
)

// Status represents the logical state of a file record.
type Status string

// File record statuses. Deletion through the batch delete operation is
// physical; StatusDeleted exists for metadata updates that retire a record
// without removing it.
const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDeleted
}

// FileRecord represents a stored file with its object store artifacts.
// ArtifactKeys preserves upload order; the first key is the canonical
// thumbnail. CreatedAt and UpdatedAt are millisecond timestamps assigned by
// the database, with UpdatedAt strictly increasing on every mutating write.
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	DisplayName  string    `json:"display_name"`
	Status       Status    `json:"status"`
	ArtifactKeys []string  `json:"artifact_keys"`
	PageCount    *int      `json:"page_count,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    int64     `json:"created_at"`
	UpdatedAt    int64     `json:"updated_at"`
}

// ThumbnailKey returns the canonical thumbnail key, or empty for
// metadata-only records.
func (f *FileRecord) ThumbnailKey() string {
	if len(f.ArtifactKeys) == 0 {
		return ""
	}
	return f.ArtifactKeys[0]
}

// UploadItem is one file in a batch upload request.
type UploadItem struct {
	Data        []byte
	Filename    string
	ContentType string
}

// UploadCommand contains the data required to create a record from a batch
// of uploads.
type UploadCommand struct {
	DisplayName string
	Items       []UploadItem
}

// UpdateCommand contains the metadata fields that can be modified on an
// existing record. Nil fields are left unchanged.
type UpdateCommand struct {
	DisplayName *string `json:"display_name,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// TransformCommand contains the input for the document scan pipeline.
// Color selects the color-preserving scan stage instead of binarization.
type TransformCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	Description *string
	Color       bool
}

// TransformResult carries the two records produced by a successful
// transformation: the metadata-only original and the scanned artifact.
type TransformResult struct {
	Original    FileRecord `json:"original"`
	Transformed FileRecord `json:"transformed"`
}
