package files

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/pipeline"
)

// Domain errors for file operations.
var (
	ErrNotFound         = errors.New("file not found")
	ErrDuplicate        = errors.New("file already exists")
	ErrUnknownOwner     = errors.New("owner not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUpstream         = errors.New("object store operation failed")
	ErrAllUploadsFailed = errors.New("no file in the batch could be stored")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrEmptyRecord      = errors.New("record has no stored artifacts")
)

// NotFoundIDsError reports the subset of a requested id set that did not
// resolve to records owned by the caller. It matches ErrNotFound under
// errors.Is.
type NotFoundIDsError struct {
	IDs []uuid.UUID
}

func (e *NotFoundIDsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("files not found: %s", strings.Join(ids, ", "))
}

func (e *NotFoundIDsError) Is(target error) bool {
	return target == ErrNotFound
}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownOwner) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyRecord) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, pipeline.ErrStageTimeout) {
		return http.StatusGatewayTimeout
	}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) || errors.Is(err, ErrUpstream) || errors.Is(err, ErrAllUploadsFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
