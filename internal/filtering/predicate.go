package filtering

import (
	"fmt"
	"strings"

	"github.com/jask/coltable/internal/columns"
)

// Predicate decides whether a record is shown.
type Predicate interface {
	Match(rec columns.Record) bool
	Description() string
}

// LogicOp combines predicates.
type LogicOp int

const (
	// LogicAND requires all predicates to pass.
	LogicAND LogicOp = iota
	// LogicOR requires at least one predicate to pass.
	LogicOR
)

// String returns the string representation of a LogicOp.
func (op LogicOp) String() string {
	switch op {
	case LogicAND:
		return "AND"
	case LogicOR:
		return "OR"
	default:
		return fmt.Sprintf("unknown(%d)", op)
	}
}

// ColumnContains matches records whose column value contains Text.
type ColumnContains struct {
	Column columns.Descriptor
	Text   string
}

// Match implements Predicate.
func (c ColumnContains) Match(rec columns.Record) bool {
	return Matches(rec, c.Column.Accessor, c.Text)
}

// Description implements Predicate.
func (c ColumnContains) Description() string {
	return fmt.Sprintf("%s~%q", c.Column.ID, c.Text)
}

// Composite combines predicates with AND or OR. An empty AND passes every
// record and an empty OR passes none.
type Composite struct {
	Predicates []Predicate
	Logic      LogicOp
}

// Match implements Predicate.
func (c Composite) Match(rec columns.Record) bool {
	switch c.Logic {
	case LogicOR:
		for _, p := range c.Predicates {
			if p.Match(rec) {
				return true
			}
		}
		return false
	default:
		for _, p := range c.Predicates {
			if !p.Match(rec) {
				return false
			}
		}
		return true
	}
}

// Description implements Predicate.
func (c Composite) Description() string {
	if len(c.Predicates) == 0 {
		if c.Logic == LogicOR {
			return "none"
		}
		return "all"
	}
	if len(c.Predicates) == 1 {
		return c.Predicates[0].Description()
	}
	parts := make([]string, len(c.Predicates))
	for i, p := range c.Predicates {
		parts[i] = p.Description()
	}
	return "(" + strings.Join(parts, " "+c.Logic.String()+" ") + ")"
}

// Build returns the predicate for st over cols.
func Build(cols []Column, st State, p Policy) Predicate {
	var all []Predicate
	for _, col := range cols {
		text := st.PerColumn[col.ID]
		if text == "" || (!col.Visible && !p.FilterHiddenColumns) {
			continue
		}
		all = append(all, ColumnContains{Column: col.Descriptor, Text: text})
	}
	if st.Global != "" {
		search := globalSearch{text: st.Global, Composite: Composite{Logic: LogicOR}}
		for _, col := range cols {
			if !col.Visible && !p.SearchHiddenColumns {
				continue
			}
			search.Predicates = append(search.Predicates, ColumnContains{Column: col.Descriptor, Text: st.Global})
		}
		all = append(all, search)
	}
	return Composite{Predicates: all, Logic: LogicAND}
}

// globalSearch is the OR over searchable columns, described by its text only.
type globalSearch struct {
	Composite
	text string
}

func (g globalSearch) Description() string {
	return fmt.Sprintf("*~%q", g.text)
}
