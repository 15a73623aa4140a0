package query

import (
	"fmt"
	"strings"
)

type condition struct {
	clause string
	args   []any
}

// Builder constructs SQL queries using a fluent API with automatic parameter
// numbering. Conditions are joined with AND; ordering defaults to the sort
// fields provided at construction.
type Builder struct {
	projection *ProjectionMap
	conditions []condition
	orderBy    []string
	descending bool
}

// NewBuilder creates a Builder for the given projection ordered by the
// provided fields.
func NewBuilder(projection *ProjectionMap, orderBy ...string) *Builder {
	return &Builder{
		projection: projection,
		conditions: make([]condition, 0),
		orderBy:    orderBy,
	}
}

// Descending sets the sort direction for all order fields.
func (b *Builder) Descending() *Builder {
	b.descending = true
	return b
}

// WhereEquals adds an equality condition. Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s = $%%d", col),
		args:   []any{value},
	})
	return b
}

// WhereIn adds an IN condition for multiple values. Empty slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	col := b.projection.Column(field)
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "$%d"
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")),
		args:   values,
	})
	return b
}

// WhereContains adds a case-insensitive ILIKE condition. Nil or empty values
// are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s ILIKE $%%d", col),
		args:   []any{"%" + *value + "%"},
	})
	return b
}

// WhereKeysetBefore adds the seek predicate for descending keyset pagination:
// rows strictly before the (primary, tie) pair in (primaryField DESC,
// tieField DESC) order. The predicate is
// primary < p OR (primary = p AND tie < t).
func (b *Builder) WhereKeysetBefore(primaryField, tieField string, primary, tie any) *Builder {
	pcol := b.projection.Column(primaryField)
	tcol := b.projection.Column(tieField)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("(%s < $%%d OR (%s = $%%d AND %s < $%%d))", pcol, pcol, tcol),
		args:   []any{primary, primary, tie},
	})
	return b
}

// BuildSelect returns a SELECT query with the current conditions, ordering,
// and row limit. A limit of 0 omits the LIMIT clause.
func (b *Builder) BuildSelect(limit int) (string, []any) {
	where, args := b.buildWhere()

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.buildOrderBy(),
	)

	if limit > 0 {
		sql = fmt.Sprintf("%s LIMIT %d", sql, limit)
	}

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by the given field.
func (b *Builder) BuildSingle(field string, value any) (string, []any) {
	b.WhereEquals(field, value)
	where, args := b.buildWhere()

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s",
		b.projection.Columns(),
		b.projection.Table(),
		where,
	)

	return sql, args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where)
	return sql, args
}

func (b *Builder) buildOrderBy() string {
	if len(b.orderBy) == 0 {
		return ""
	}

	dir := "ASC"
	if b.descending {
		dir = "DESC"
	}

	cols := make([]string, len(b.orderBy))
	for i, field := range b.orderBy {
		cols[i] = b.projection.Column(field) + " " + dir
	}

	return " ORDER BY " + strings.Join(cols, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	paramIdx := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", paramIdx), 1)
			args = append(args, arg)
			paramIdx++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
