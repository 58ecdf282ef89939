// Package filtering evaluates per-column and global substring filters
// against row records.
package filtering

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"

	"github.com/jask/coltable/internal/columns"
)

// State is the active filter text. Absent or empty entries are inactive.
type State struct {
	PerColumn map[string]string
	Global    string
}

// Active reports whether any filter is set.
func (s State) Active() bool {
	if s.Global != "" {
		return true
	}
	for _, v := range s.PerColumn {
		if v != "" {
			return true
		}
	}
	return false
}

// Policy decides how hidden columns take part in filtering.
type Policy struct {
	// FilterHiddenColumns keeps a hidden column's own filter active.
	FilterHiddenColumns bool
	// SearchHiddenColumns lets the global search match hidden columns.
	SearchHiddenColumns bool
}

// DefaultPolicy keeps per-column filters on hidden columns but stops hidden
// data from matching the global search.
func DefaultPolicy() Policy {
	return Policy{FilterHiddenColumns: true, SearchHiddenColumns: false}
}

// Column is a filterable column and its visibility.
type Column struct {
	columns.Descriptor
	Visible bool
}

// Stringify returns the canonical string form of a field value.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// Matches reports whether the value accessor extracts from rec contains text,
// ignoring case. Empty text always matches.
func Matches(rec columns.Record, accessor columns.Accessor, text string) bool {
	if text == "" {
		return true
	}
	if accessor == nil {
		return false
	}
	return containsFold(Stringify(accessor(rec)), text)
}

func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// RowVisible reports whether rec passes every active per-column filter and,
// when a global filter is set, matches it in at least one searchable column.
func RowVisible(rec columns.Record, cols []Column, st State, p Policy) bool {
	return Build(cols, st, p).Match(rec)
}
