// Package columns holds the static column registry, the column order and pin
// state, and the drag controller that turns drop events into reorders.
package columns

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Record is an opaque row value. Only accessors look inside it.
type Record = any

// Accessor extracts a field value from a record.
type Accessor func(Record) any

// Descriptor describes one column.
type Descriptor struct {
	ID       string
	Label    string
	Accessor Accessor
}

// Value returns the descriptor's field value for rec.
func (d Descriptor) Value(rec Record) any {
	if d.Accessor == nil {
		return nil
	}
	return d.Accessor(rec)
}

// Registry is the immutable set of available columns in their natural order.
type Registry struct {
	cols  []Descriptor
	index map[string]int
}

// NewRegistry validates descs and returns a registry. Ids must be unique and
// non-empty and every descriptor needs an accessor.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		cols:  make([]Descriptor, 0, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for _, d := range descs {
		if strings.TrimSpace(d.ID) == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidColumnReference)
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, d.ID)
		}
		if d.Accessor == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoAccessor, d.ID)
		}
		if d.Label == "" {
			d.Label = d.ID
		}
		r.index[d.ID] = len(r.cols)
		r.cols = append(r.cols, d)
	}
	return r, nil
}

// Len returns the number of registered columns.
func (r *Registry) Len() int { return len(r.cols) }

// IDs returns the column ids in natural order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.cols))
	for i, d := range r.cols {
		ids[i] = d.ID
	}
	return ids
}

// All returns a copy of every descriptor in natural order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.cols))
	copy(out, r.cols)
	return out
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.cols[i], true
}

// Check returns nil when id is registered, otherwise an
// ErrInvalidColumnReference naming the closest registered id.
func (r *Registry) Check(id string) error {
	if r.Has(id) {
		return nil
	}
	return invalidRef(id, r.Suggest(id))
}

// Suggest returns the registered id closest to id by edit distance, or "" if
// nothing is reasonably close.
func (r *Registry) Suggest(id string) string {
	return suggest(id, r.IDs())
}

func suggest(id string, known []string) string {
	if id == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	// more than half the name changed is a different name
	if bestDist < 0 || bestDist*2 > max(len(id), len(best)) {
		return ""
	}
	return best
}
