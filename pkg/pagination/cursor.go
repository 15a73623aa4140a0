package pagination

import (
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
)

// Cursor identifies the last row of a previously returned page by its
// (updated_at, id) sort key. Both fields participate in the seek predicate:
// updated_at alone is not unique, so id breaks ties to keep the order total.
type Cursor struct {
	UpdatedAt int64     `json:"u"`
	ID        uuid.UUID `json:"i"`
}

// Encode serializes the cursor into an opaque URL-safe token. Callers treat
// the token as a string to echo back, never to construct or parse.
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses an opaque cursor token. A malformed or unparseable
// token returns nil rather than an error: a corrupted client-held cursor
// degrades to a fresh first page instead of failing the request.
func DecodeCursor(token string) *Cursor {
	if token == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	if c.ID == uuid.Nil && c.UpdatedAt == 0 {
		return nil
	}

	return &c
}
