package files

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/repository"
)

func (r *repo) Delete(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) error {
	// All-or-nothing validation gate: nothing is destroyed unless every
	// requested id resolves to a record owned by the caller.
	records, err := r.findOwnedSet(ctx, owner, ids)
	if err != nil {
		return err
	}

	var keys []string
	for _, rec := range records {
		keys = append(keys, rec.ArtifactKeys...)
	}

	// Object deletions are best effort: a failed delete leaves a dangling
	// object for the reconciliation sweep, but never blocks record removal.
	r.deleteArtifacts(ctx, keys)

	q := `DELETE FROM files WHERE owner_id = $1 AND id = ANY($2::uuid[])`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, owner, uuidArray(ids))
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("batch delete complete", "owner", owner, "records", len(ids), "artifacts", len(keys))
	return nil
}

// deleteArtifacts removes object store keys with bounded parallelism and a
// settle-all join; individual failures are logged and swallowed.
func (r *repo) deleteArtifacts(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(r.cfg.UploadConcurrency)

	for _, key := range keys {
		g.Go(func() error {
			if err := r.storage.Delete(ctx, key); err != nil {
				r.logger.Error("artifact delete failed", "key", key, "error", err)
			}
			return nil
		})
	}
	g.Wait()
}

// uuidArray renders ids as a Postgres array literal for ANY() parameters.
func uuidArray(ids []uuid.UUID) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id.String()
	}
	return out + "}"
}
