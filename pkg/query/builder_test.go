package query_test

import (
	"testing"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "files", "f").
		Project("id", "Id").
		Project("owner_id", "OwnerId").
		Project("status", "Status").
		Project("updated_at", "UpdatedAt")
}

func TestBuildSelect_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %d", len(args))
	}
}

func TestBuildSelect_WhereEquals(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("OwnerId", "abc").
		WhereEquals("Status", "active").
		BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f" +
		" WHERE f.owner_id = $1 AND f.status = $2"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d", len(args))
	}
	if args[0] != "abc" || args[1] != "active" {
		t.Errorf("Args out of order: %v", args)
	}
}

func TestBuildSelect_OrderAndLimit(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), "UpdatedAt", "Id").
		Descending().
		WhereEquals("OwnerId", "abc").
		BuildSelect(21)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f" +
		" WHERE f.owner_id = $1 ORDER BY f.updated_at DESC, f.id DESC LIMIT 21"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
}

func TestWhereKeysetBefore(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), "UpdatedAt", "Id").
		Descending().
		WhereEquals("OwnerId", "abc").
		WhereKeysetBefore("UpdatedAt", "Id", int64(1000), "last-id").
		BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f" +
		" WHERE f.owner_id = $1 AND (f.updated_at < $2 OR (f.updated_at = $3 AND f.id < $4))" +
		" ORDER BY f.updated_at DESC, f.id DESC"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}

	if len(args) != 4 {
		t.Fatalf("Expected 4 args, got %d", len(args))
	}
	if args[1] != int64(1000) || args[2] != int64(1000) || args[3] != "last-id" {
		t.Errorf("Keyset args incorrect: %v", args)
	}
}

func TestWhereIn(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereIn("Id", []any{"a", "b", "c"}).
		BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f" +
		" WHERE f.id IN ($1, $2, $3)"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereIn_Empty(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereIn("Id", nil).
		BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f"
	if sql != expected {
		t.Errorf("Empty IN should be ignored, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %d", len(args))
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("OwnerId", "abc").
		BuildSingle("Id", "xyz")

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f" +
		" WHERE f.owner_id = $1 AND f.id = $2"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d", len(args))
	}
}

func TestBuildCount(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("Status", "active").
		BuildCount()

	expected := "SELECT COUNT(*) FROM public.files f WHERE f.status = $1"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestWhereEquals_NilIgnored(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("OwnerId", nil).
		BuildSelect(0)

	expected := "SELECT f.id, f.owner_id, f.status, f.updated_at FROM public.files f"
	if sql != expected {
		t.Errorf("Nil value should be ignored, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %d", len(args))
	}
}
