package columns

import (
	"fmt"
	"slices"
)

// State is an immutable snapshot of column display order and pin state.
// Pinned ids always form the leading prefix of the order, keeping the relative
// order they had. Every mutation returns a new State and never touches the
// receiver.
type State struct {
	order  []string
	pinned map[string]struct{}
}

// Initialize returns a State whose order is ids and with nothing pinned.
func Initialize(ids []string) (State, error) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return State{}, fmt.Errorf("%w: empty id", ErrInvalidColumnReference)
		}
		if _, dup := seen[id]; dup {
			return State{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, id)
		}
		seen[id] = struct{}{}
	}
	return State{order: slices.Clone(ids), pinned: map[string]struct{}{}}, nil
}

// Order returns a copy of the display order.
func (s State) Order() []string { return slices.Clone(s.order) }

// Len returns the number of ordered columns.
func (s State) Len() int { return len(s.order) }

// Has reports whether id is part of the order.
func (s State) Has(id string) bool { return slices.Contains(s.order, id) }

// IsPinned reports whether id is pinned.
func (s State) IsPinned(id string) bool {
	_, ok := s.pinned[id]
	return ok
}

// Pinned returns the pinned ids in display order.
func (s State) Pinned() []string {
	out := make([]string, 0, len(s.pinned))
	for _, id := range s.order {
		if s.IsPinned(id) {
			out = append(out, id)
		}
	}
	return out
}

// Equal reports whether s and o have the same order and pin set.
func (s State) Equal(o State) bool {
	if !slices.Equal(s.order, o.order) || len(s.pinned) != len(o.pinned) {
		return false
	}
	for id := range s.pinned {
		if !o.IsPinned(id) {
			return false
		}
	}
	return true
}

// Reorder moves source to the slot target occupies. The insertion index is
// target's index before source is removed. Pinned ids are then moved back to
// the front, so a drag can never interleave pinned and unpinned columns.
// Dragging a column onto itself returns s unchanged.
func (s State) Reorder(source, target string) (State, error) {
	from := slices.Index(s.order, source)
	if from < 0 {
		return s, invalidRef(source, suggest(source, s.order))
	}
	to := slices.Index(s.order, target)
	if to < 0 {
		return s, invalidRef(target, suggest(target, s.order))
	}
	if source == target {
		return s, nil
	}

	next := slices.Delete(slices.Clone(s.order), from, from+1)
	next = slices.Insert(next, to, source)
	return State{order: s.partition(next), pinned: s.pinned}, nil
}

// TogglePin pins id if it is unpinned and unpins it otherwise, then rebuilds
// the order as pinned ids followed by unpinned ids, each group keeping its
// relative order from s.
func (s State) TogglePin(id string) (State, error) {
	if !s.Has(id) {
		return s, invalidRef(id, suggest(id, s.order))
	}
	pinned := make(map[string]struct{}, len(s.pinned)+1)
	for p := range s.pinned {
		pinned[p] = struct{}{}
	}
	if _, ok := pinned[id]; ok {
		delete(pinned, id)
	} else {
		pinned[id] = struct{}{}
	}
	next := State{order: s.order, pinned: pinned}
	next.order = next.partition(s.order)
	return next, nil
}

// partition returns ids with pinned ids first, both groups stable.
func (s State) partition(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.IsPinned(id) {
			out = append(out, id)
		}
	}
	for _, id := range ids {
		if !s.IsPinned(id) {
			out = append(out, id)
		}
	}
	return out
}

// Validate checks that the order is a permutation of ids and that pinned ids
// form the leading prefix.
func (s State) Validate(ids []string) error {
	if len(s.order) != len(ids) {
		return fmt.Errorf("%w: order has %d columns, want %d", ErrInvalidColumnReference, len(s.order), len(ids))
	}
	seen := make(map[string]struct{}, len(s.order))
	for _, id := range s.order {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, id)
		}
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			return invalidRef(id, "")
		}
	}
	unpinnedSeen := false
	for _, id := range s.order {
		if !s.IsPinned(id) {
			unpinnedSeen = true
			continue
		}
		if unpinnedSeen {
			return fmt.Errorf("pinned column %q follows an unpinned column", id)
		}
	}
	return nil
}
