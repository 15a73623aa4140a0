package files

import "github.com/khunghaydien/AI-Scanner-Backend/pkg/query"

var projection = query.NewProjectionMap("public", "files", "f").
	Project("id", "Id").
	Project("owner_id", "OwnerId").
	Project("display_name", "DisplayName").
	Project("status", "Status").
	Project("artifact_keys", "ArtifactKeys").
	Project("page_count", "PageCount").
	Project("description", "Description").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")
