package pagination

import (
	"net/url"
	"strconv"
)

// CursorRequest represents a client request for one page of data.
type CursorRequest struct {
	Cursor *Cursor `json:"cursor,omitempty"`
	Limit  int     `json:"limit"`
}

// Normalize clamps the limit to the configured range, applying the default
// when the limit is unset or invalid.
func (r *CursorRequest) Normalize(cfg Config) {
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

// CursorRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: cursor (opaque token), limit. The result is
// normalized according to the provided config; a malformed cursor is treated
// as absent.
func CursorRequestFromQuery(values url.Values, cfg Config) CursorRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))

	req := CursorRequest{
		Cursor: DecodeCursor(values.Get("cursor")),
		Limit:  limit,
	}

	req.Normalize(cfg)
	return req
}

// CursorPage holds one page of data along with continuation metadata.
type CursorPage[T any] struct {
	Data       []T     `json:"data"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// NewCursorPage builds a page from rows fetched with limit+1. When the extra
// row is present it is dropped and a next cursor is derived from the last row
// of the trimmed page via keyOf.
func NewCursorPage[T any](rows []T, limit int, keyOf func(T) Cursor) CursorPage[T] {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	if rows == nil {
		rows = []T{}
	}

	page := CursorPage[T]{
		Data:    rows,
		HasMore: hasMore,
	}

	if hasMore {
		token := keyOf(rows[len(rows)-1]).Encode()
		page.NextCursor = &token
	}

	return page
}
