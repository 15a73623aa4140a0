package files

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
)

// stagedItem is one upload item with its resolved content type and reserved
// object store key.
type stagedItem struct {
	key         string
	contentType string
	data        []byte
	filename    string
}

// storeResult records the settled outcome of one object store put.
type storeResult struct {
	key string
	err error
}

func (r *repo) Upload(ctx context.Context, owner uuid.UUID, cmd UploadCommand) (*FileRecord, error) {
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	if err := r.ownerExists(ctx, owner); err != nil {
		return nil, err
	}

	staged, err := r.stageItems(owner, cmd.Items)
	if err != nil {
		return nil, err
	}

	stored, failed := r.storeBatch(ctx, staged)
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: %d items", ErrAllUploadsFailed, len(staged))
	}
	keys := stagedKeys(stored)

	if failed > 0 {
		r.logger.Warn("batch upload partially failed",
			"owner", owner, "requested", len(staged), "stored", len(keys))
	}

	displayName := cmd.DisplayName
	if displayName == "" {
		displayName = cmd.Items[0].Filename
	}

	// Page count describes the first artifact actually recorded, which may
	// not be the first requested item after a partial failure.
	pageCount := r.pageCountFor(stored[0].contentType, stored[0].data)

	file, err := r.createRecord(ctx, owner, displayName, StatusActive, keys, pageCount, nil)
	if err != nil {
		r.rollbackArtifacts(ctx, keys)
		return nil, err
	}

	r.logger.Info("batch upload complete", "id", file.ID, "owner", owner, "artifacts", len(keys))
	return file, nil
}

func (r *repo) AppendArtifacts(ctx context.Context, owner, id uuid.UUID, items []UploadItem) (*FileRecord, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	file, err := r.Find(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if file.Status != StatusActive {
		return nil, fmt.Errorf("%w: record is not active", ErrInvalidInput)
	}

	staged, err := r.stageItems(owner, items)
	if err != nil {
		return nil, err
	}

	stored, _ := r.storeBatch(ctx, staged)
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: %d items", ErrAllUploadsFailed, len(staged))
	}
	keys := stagedKeys(stored)

	file, err = r.appendKeys(ctx, owner, id, keys)
	if err != nil {
		r.rollbackArtifacts(ctx, keys)
		return nil, err
	}
	return file, nil
}

// stageItems runs the pre-flight type check and reserves object store keys.
// A single disallowed item rejects the whole batch before any network call.
func (r *repo) stageItems(owner uuid.UUID, items []UploadItem) ([]stagedItem, error) {
	staged := make([]stagedItem, len(items))
	for i, item := range items {
		contentType := item.ContentType
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = http.DetectContentType(item.Data)
		}
		if !r.cfg.TypeAllowed(contentType) {
			return nil, fmt.Errorf("%w: type %s not allowed for %q", ErrInvalidInput, contentType, item.Filename)
		}
		staged[i] = stagedItem{
			key:         buildArtifactKey(owner, item.Filename),
			contentType: contentType,
			data:        item.Data,
			filename:    item.Filename,
		}
	}
	return staged, nil
}

// storeBatch uploads every staged item with bounded parallelism and a
// settle-all join: each goroutine records its outcome and returns nil so one
// failure never aborts the others. Surviving items come back in request
// order regardless of completion order.
func (r *repo) storeBatch(ctx context.Context, staged []stagedItem) ([]stagedItem, int) {
	results := make([]storeResult, len(staged))

	g := new(errgroup.Group)
	g.SetLimit(r.cfg.UploadConcurrency)

	for i, item := range staged {
		g.Go(func() error {
			err := r.storage.Store(ctx, item.key, item.contentType, item.data)
			results[i] = storeResult{key: item.key, err: err}
			return nil
		})
	}
	g.Wait()

	stored := make([]stagedItem, 0, len(staged))
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			r.logger.Error("artifact upload failed",
				"key", res.key, "filename", staged[i].filename, "error", res.err)
			continue
		}
		stored = append(stored, staged[i])
	}

	return stored, failed
}

func stagedKeys(items []stagedItem) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.key
	}
	return keys
}

func (r *repo) appendKeys(ctx context.Context, owner, id uuid.UUID, keys []string) (*FileRecord, error) {
	q := fmt.Sprintf(`UPDATE files
		SET artifact_keys = artifact_keys || $1,
			updated_at = GREATEST(now_ms(), updated_at + 1)
		WHERE id = $2 AND owner_id = $3 AND status = 'active'
		RETURNING %s`, fileColumns)

	file, err := queryOneTx(ctx, r.db, q, []any{artifactKeys(keys), id, owner})
	if err != nil {
		return nil, err
	}

	r.logger.Info("artifacts appended", "id", id, "owner", owner, "count", len(keys))
	return file, nil
}

// rollbackArtifacts removes stored objects after a failed record write.
// Best effort: a leftover object is reconciled out of band, never surfaced.
func (r *repo) rollbackArtifacts(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Error("cleanup failed after record error", "key", key, "error", err)
		}
	}
}
