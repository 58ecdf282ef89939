// Package table composes column order, pin state, visibility, filters and
// rows into the view consumed by a renderer, and owns the mutable state
// behind a single lock per table.
package table

import (
	"github.com/jask/coltable/internal/columns"
	"github.com/jask/coltable/internal/filtering"
)

// Row is one immutable source record.
type Row struct {
	ID     string
	Record columns.Record
}

// HeaderCell describes a column header.
type HeaderCell struct {
	ID         string
	Label      string
	Pinned     bool
	Visible    bool
	FilterText string
}

// Cell is a rendered cell value.
type Cell struct {
	ColumnID string
	Value    string
}

// RenderedRow is a row reduced to its visible cells in display order.
type RenderedRow struct {
	RowID string
	Cells []Cell
}

// Inputs is everything a View is derived from.
type Inputs struct {
	Registry   *columns.Registry
	Order      columns.State
	Visibility map[string]bool
	Filters    filtering.State
	Policy     filtering.Policy
	Rows       []Row
}

// View is the derived, renderable table.
type View struct {
	// Headers lists every column in display order, hidden ones included.
	Headers []HeaderCell
	// Columns lists the visible columns in display order.
	Columns []columns.Descriptor
	// Rows holds the rows passing the current filters.
	Rows []Row
	// Filter is the predicate Rows were selected with.
	Filter filtering.Predicate
}

// IsVisible reports a column's visibility; columns default to visible.
func IsVisible(vis map[string]bool, id string) bool {
	v, ok := vis[id]
	return !ok || v
}

// Build derives the view from in. It does not retain or modify in.Rows.
func Build(in Inputs) View {
	var v View
	var filterCols []filtering.Column
	for _, id := range in.Order.Order() {
		desc, ok := in.Registry.Lookup(id)
		if !ok {
			continue
		}
		visible := IsVisible(in.Visibility, id)
		v.Headers = append(v.Headers, HeaderCell{
			ID:         id,
			Label:      desc.Label,
			Pinned:     in.Order.IsPinned(id),
			Visible:    visible,
			FilterText: in.Filters.PerColumn[id],
		})
		if visible {
			v.Columns = append(v.Columns, desc)
		}
		filterCols = append(filterCols, filtering.Column{Descriptor: desc, Visible: visible})
	}

	v.Filter = filtering.Build(filterCols, in.Filters, in.Policy)
	v.Rows = make([]Row, 0, len(in.Rows))
	for _, r := range in.Rows {
		if v.Filter.Match(r.Record) {
			v.Rows = append(v.Rows, r)
		}
	}
	return v
}

// Page renders one page of the filtered rows.
func (v View) Page(pageIndex, pageSize int) []RenderedRow {
	page := Page(v.Rows, pageIndex, pageSize)
	out := make([]RenderedRow, len(page))
	for i, r := range page {
		cells := make([]Cell, len(v.Columns))
		for j, c := range v.Columns {
			cells[j] = Cell{ColumnID: c.ID, Value: filtering.Stringify(c.Value(r.Record))}
		}
		out[i] = RenderedRow{RowID: r.ID, Cells: cells}
	}
	return out
}

// Page returns rows[pageIndex*pageSize : (pageIndex+1)*pageSize], clamped.
// A page past the end, or a negative index, is empty. A pageSize below one
// puts every row on page zero.
func Page(rows []Row, pageIndex, pageSize int) []Row {
	// bound the index first; pageIndex*pageSize can overflow
	if pageIndex < 0 || pageIndex >= PageCount(len(rows), pageSize) {
		return []Row{}
	}
	if pageSize <= 0 {
		return rows
	}
	start := pageIndex * pageSize
	end := start + min(pageSize, len(rows)-start)
	return rows[start:end:end]
}

// PageCount returns the number of pages n rows fill.
func PageCount(n, pageSize int) int {
	if n == 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
