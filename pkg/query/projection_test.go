package query_test

import (
	"testing"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/query"
)

func TestNewProjectionMap(t *testing.T) {
	p := query.NewProjectionMap("public", "files", "f")

	if p.Alias() != "f" {
		t.Errorf("Expected alias %q, got %q", "f", p.Alias())
	}

	if p.Table() != "public.files f" {
		t.Errorf("Expected table %q, got %q", "public.files f", p.Table())
	}
}

func TestProject_Column(t *testing.T) {
	p := query.NewProjectionMap("public", "files", "f").
		Project("id", "Id").
		Project("display_name", "DisplayName")

	if col := p.Column("Id"); col != "f.id" {
		t.Errorf("Expected column %q, got %q", "f.id", col)
	}

	if col := p.Column("DisplayName"); col != "f.display_name" {
		t.Errorf("Expected column %q, got %q", "f.display_name", col)
	}
}

func TestColumn_UnknownField(t *testing.T) {
	p := query.NewProjectionMap("public", "files", "f").
		Project("id", "Id")

	if col := p.Column("Missing"); col != "Missing" {
		t.Errorf("Unknown field should be returned as-is, got %q", col)
	}
}

func TestColumns_Order(t *testing.T) {
	p := query.NewProjectionMap("public", "files", "f").
		Project("id", "Id").
		Project("owner_id", "OwnerId").
		Project("status", "Status")

	expected := "f.id, f.owner_id, f.status"
	if cols := p.Columns(); cols != expected {
		t.Errorf("Expected columns %q, got %q", expected, cols)
	}

	list := p.ColumnList()
	if len(list) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(list))
	}
	if list[0] != "f.id" || list[1] != "f.owner_id" || list[2] != "f.status" {
		t.Errorf("Columns out of registration order: %v", list)
	}
}
