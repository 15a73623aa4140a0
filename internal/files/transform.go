package files

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
)

func (r *repo) Transform(ctx context.Context, owner uuid.UUID, cmd TransformCommand) (*TransformResult, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	if err := r.ownerExists(ctx, owner); err != nil {
		return nil, err
	}

	contentType := cmd.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(cmd.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: transform requires an image, got %s", ErrInvalidInput, contentType)
	}
	if !r.cfg.TypeAllowed(contentType) {
		return nil, fmt.Errorf("%w: type %s not allowed", ErrInvalidInput, contentType)
	}

	// Extract and scan run sequentially; intermediate artifacts only ever
	// touch local temporary storage and are gone when this returns.
	scanned, err := r.pipeline.DocumentScan(ctx, cmd.Data, extensionFor(contentType, cmd.Filename), cmd.Color)
	if err != nil {
		return nil, err
	}

	key := buildArtifactKey(owner, scannedName(cmd.Filename))
	if err := r.storage.Store(ctx, key, "application/pdf", scanned); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	pageCount := r.pageCountFor("application/pdf", scanned)

	transformed, err := r.createRecord(ctx, owner, scannedName(cmd.Filename), StatusActive, []string{key}, pageCount, cmd.Description)
	if err != nil {
		r.rollbackArtifacts(ctx, []string{key})
		return nil, err
	}

	// The original input is intentionally not retained in the object
	// store; its record carries metadata only.
	original, err := r.createRecord(ctx, owner, cmd.Filename, StatusActive, nil, nil, cmd.Description)
	if err != nil {
		return nil, err
	}

	r.logger.Info("transform complete",
		"owner", owner, "original", original.ID, "transformed", transformed.ID)

	return &TransformResult{Original: *original, Transformed: *transformed}, nil
}

func (r *repo) Merge(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) (*FileRecord, error) {
	records, err := r.findOwnedSet(ctx, owner, ids)
	if err != nil {
		return nil, err
	}

	images := make([][]byte, 0, len(records))
	exts := make([]string, 0, len(records))
	for _, rec := range records {
		key := rec.ThumbnailKey()
		if key == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRecord, rec.ID)
		}

		data, err := r.storage.Retrieve(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, &NotFoundIDsError{IDs: []uuid.UUID{rec.ID}}
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		images = append(images, data)
		exts = append(exts, keyExtension(key))
	}

	merged, err := r.pipeline.MergePDF(ctx, images, exts)
	if err != nil {
		return nil, err
	}

	key := buildArtifactKey(owner, "merged.pdf")
	if err := r.storage.Store(ctx, key, "application/pdf", merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	pageCount := r.pageCountFor("application/pdf", merged)

	displayName := fmt.Sprintf("%s (merged)", records[0].DisplayName)
	file, err := r.createRecord(ctx, owner, displayName, StatusActive, []string{key}, pageCount, nil)
	if err != nil {
		r.rollbackArtifacts(ctx, []string{key})
		return nil, err
	}

	r.logger.Info("merge complete", "owner", owner, "id", file.ID, "sources", len(ids))
	return file, nil
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if ext := keyExtension(filename); ext != "" {
		return ext
	}
	return ".img"
}

func keyExtension(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 && idx < len(key)-1 {
		return key[idx:]
	}
	return ""
}

func scannedName(filename string) string {
	base := filename
	if ext := keyExtension(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "scan"
	}
	return base + ".pdf"
}
