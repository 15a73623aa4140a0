// Package query provides SQL query construction with projection mapping
// between view-model field names and database columns.
package query

import "strings"

// ProjectionMap maps view field names to aliased database columns for a
// single table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  []string
	columns map[string]string
}

// NewProjectionMap creates a projection for schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column under a view field name. Registration order
// determines column order in Columns and ColumnList.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.fields = append(p.fields, field)
	p.columns[field] = p.alias + "." + column
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for FROM clauses.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column returns the aliased column for a view field name. Unknown fields
// are returned as-is.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the comma-separated projected column list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the projected columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.fields))
	for i, f := range p.fields {
		list[i] = p.columns[f]
	}
	return list
}
