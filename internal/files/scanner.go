package files

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/repository"
)

// artifactKeys maps the ordered key sequence onto a JSONB column.
type artifactKeys []string

func (a artifactKeys) Value() (driver.Value, error) {
	if a == nil {
		a = artifactKeys{}
	}
	return json.Marshal(a)
}

func (a *artifactKeys) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = artifactKeys{}
		return nil
	default:
		return fmt.Errorf("unsupported artifact_keys source type %T", src)
	}
}

func scanFile(s repository.Scanner) (FileRecord, error) {
	var f FileRecord
	err := s.Scan(
		&f.ID,
		&f.OwnerID,
		&f.DisplayName,
		&f.Status,
		(*artifactKeys)(&f.ArtifactKeys),
		&f.PageCount,
		&f.Description,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	return f, err
}
