package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/config"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/pipeline"
	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/pagination"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/query"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/repository"
)

const fileColumns = "id, owner_id, display_name, status, artifact_keys, page_count, description, created_at, updated_at"

type repo struct {
	db         *sql.DB
	storage    storage.System
	pipeline   pipeline.System
	logger     *slog.Logger
	cfg        *config.StorageConfig
	pagination pagination.Config
}

// New creates a file system with database, object store, and pipeline
// integration.
func New(
	db *sql.DB,
	store storage.System,
	pipe pipeline.System,
	logger *slog.Logger,
	cfg *config.StorageConfig,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		pipeline:   pipe,
		logger:     logger.With("system", "files"),
		cfg:        cfg,
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(ctx context.Context, owner uuid.UUID, req pagination.CursorRequest) (*pagination.CursorPage[FileRecord], error) {
	req.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, "UpdatedAt", "Id").
		Descending().
		WhereEquals("OwnerId", owner).
		WhereEquals("Status", string(StatusActive))

	if req.Cursor != nil {
		qb.WhereKeysetBefore("UpdatedAt", "Id", req.Cursor.UpdatedAt, req.Cursor.ID)
	}

	// Fetch limit+1 so a further page is detected without a count query.
	q, args := qb.BuildSelect(req.Limit + 1)
	records, err := repository.QueryMany(ctx, r.db, q, args, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}

	page := pagination.NewCursorPage(records, req.Limit, func(f FileRecord) pagination.Cursor {
		return pagination.Cursor{UpdatedAt: f.UpdatedAt, ID: f.ID}
	})
	return &page, nil
}

func (r *repo) Find(ctx context.Context, owner, id uuid.UUID) (*FileRecord, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("OwnerId", owner).
		BuildSingle("Id", id)

	file, err := repository.QueryOne(ctx, r.db, q, args, scanFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &file, nil
}

func (r *repo) Data(ctx context.Context, owner, id uuid.UUID) ([]byte, string, error) {
	file, err := r.Find(ctx, owner, id)
	if err != nil {
		return nil, "", err
	}

	key := file.ThumbnailKey()
	if key == "" {
		return nil, "", ErrEmptyRecord
	}

	data, err := r.storage.Retrieve(ctx, key)
	if err != nil {
		return nil, "", mapRetrieveErr(err)
	}

	return data, detectContentType(key, data), nil
}

func (r *repo) Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*FileRecord, error) {
	if cmd.DisplayName == nil && cmd.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if cmd.Status != nil && !cmd.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *cmd.Status)
	}

	q := fmt.Sprintf(`UPDATE files
		SET display_name = COALESCE($1, display_name),
			status = COALESCE($2, status),
			updated_at = GREATEST(now_ms(), updated_at + 1)
		WHERE id = $3 AND owner_id = $4
		RETURNING %s`, fileColumns)

	file, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FileRecord, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.DisplayName, cmd.Status, id, owner}, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("file updated", "id", file.ID, "owner", owner)
	return &file, nil
}

// createRecord inserts one record. Timestamps are assigned by the database;
// the insert trigger keeps updated_at equal to created_at on first write.
func (r *repo) createRecord(ctx context.Context, owner uuid.UUID, displayName string, status Status, keys []string, pageCount *int, description *string) (*FileRecord, error) {
	q := fmt.Sprintf(`INSERT INTO files (id, owner_id, display_name, status, artifact_keys, page_count, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, fileColumns)

	file, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FileRecord, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), owner, displayName, string(status), artifactKeys(keys), pageCount, description,
		}, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &file, nil
}

func queryOneTx(ctx context.Context, db *sql.DB, q string, args []any) (*FileRecord, error) {
	file, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (FileRecord, error) {
		return repository.QueryOne(ctx, tx, q, args, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &file, nil
}

// findOwnedSet resolves every requested id to a record owned by the caller.
// Missing or foreign ids reject the whole set with a NotFoundIDsError.
func (r *repo) findOwnedSet(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) ([]FileRecord, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty id set", ErrInvalidInput)
	}

	// A repeated id resolves once; the row count check runs against the
	// distinct set.
	ids = dedupeIDs(ids)

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("OwnerId", owner).
		WhereIn("Id", values).
		BuildSelect(0)

	records, err := repository.QueryMany(ctx, r.db, q, args, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}

	if len(records) != len(ids) {
		found := make(map[uuid.UUID]bool, len(records))
		for _, rec := range records {
			found[rec.ID] = true
		}
		var missing []uuid.UUID
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, &NotFoundIDsError{IDs: missing}
	}

	// Preserve request order; IN queries return rows in arbitrary order.
	byID := make(map[uuid.UUID]FileRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	ordered := make([]FileRecord, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}

	return ordered, nil
}

// mapRetrieveErr translates object store retrieval failures. Backends may
// wrap the not-found sentinel, so the check unwraps.
func mapRetrieveErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// dedupeIDs removes repeated ids, preserving first-occurrence order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

func (r *repo) ownerExists(ctx context.Context, owner uuid.UUID) error {
	var exists bool
	q := `SELECT EXISTS(SELECT 1 FROM owners WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, q, owner).Scan(&exists); err != nil {
		return fmt.Errorf("query owner: %w", err)
	}
	if !exists {
		return ErrUnknownOwner
	}
	return nil
}

func buildArtifactKey(owner uuid.UUID, filename string) string {
	return fmt.Sprintf("files/%s/%s-%s", owner.String(), uuid.New().String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

func detectContentType(key string, data []byte) string {
	if strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return "application/pdf"
	}
	return http.DetectContentType(data)
}
