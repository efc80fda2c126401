package query

import (
	"fmt"
	"strings"
)

// ProjectionMap associates Go field names with database columns for a table,
// preserving the order in which columns were projected.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column under a Go field name and returns the map for chaining.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.columns = append(p.columns, column)
	p.fields[field] = column
	return p
}

// Table returns the aliased table reference, e.g. "public.documents d".
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Columns returns the comma-separated aliased column list in projection order.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.columns))
	for i, c := range p.columns {
		cols[i] = p.alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// Column returns the aliased column for a Go field name.
// Unknown fields panic: a bad field name is a programming error, not input.
func (p *ProjectionMap) Column(field string) string {
	col, ok := p.fields[field]
	if !ok {
		panic(fmt.Sprintf("query: field %q not projected", field))
	}
	return p.alias + "." + col
}

// SortField identifies a projected field and sort direction for ORDER BY clauses.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}
