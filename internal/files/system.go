package files

import (
	"context"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/pagination"
)

// System defines the file management operations. Implementations handle
// object store persistence, database records, and pipeline orchestration.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// List returns one page of the owner's active records in descending
	// (updated_at, id) order, resuming from the request cursor.
	List(ctx context.Context, owner uuid.UUID, req pagination.CursorRequest) (*pagination.CursorPage[FileRecord], error)

	// Find retrieves a record by id, scoped to the owner.
	Find(ctx context.Context, owner, id uuid.UUID) (*FileRecord, error)

	// Data retrieves the thumbnail artifact bytes and content type.
	Data(ctx context.Context, owner, id uuid.UUID) ([]byte, string, error)

	// Upload stores a batch of files and creates one aggregate record.
	// Items that fail at the object store are dropped from the record;
	// the batch fails only when validation rejects it or every item fails.
	Upload(ctx context.Context, owner uuid.UUID, cmd UploadCommand) (*FileRecord, error)

	// Update modifies record metadata (display name, status).
	Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*FileRecord, error)

	// AppendArtifacts uploads additional files and appends their keys to an
	// existing active record.
	AppendArtifacts(ctx context.Context, owner, id uuid.UUID, items []UploadItem) (*FileRecord, error)

	// Delete removes the requested records and their backing objects.
	// The whole set is validated before anything is destroyed; any
	// unresolved id rejects the batch with a NotFoundIDsError.
	Delete(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) error

	// Transform runs the extract and scan stages over a single image and
	// persists only the final PDF, returning the metadata-only original
	// record and the transformed record. The command's Color flag selects
	// the color-preserving scan stage.
	Transform(ctx context.Context, owner uuid.UUID, cmd TransformCommand) (*TransformResult, error)

	// Merge assembles the thumbnail artifacts of the requested records into
	// one PDF and creates a new record for it.
	Merge(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) (*FileRecord, error)
}
