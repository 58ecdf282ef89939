package table

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/coltable/internal/columns"
	"github.com/jask/coltable/internal/filtering"
	"github.com/jask/coltable/internal/logger"
)

// ErrNoRegistry is returned when a table is built without columns.
var ErrNoRegistry = errors.New("column registry is nil")

// Snapshot is one committed table state. Its maps and slices are shared with
// the table and must not be modified.
type Snapshot struct {
	Version    uint64
	Order      columns.State
	Visibility map[string]bool
	Filters    filtering.State
	Rows       []Row
}

// Options configures a Table.
type Options struct {
	Policy filtering.Policy
	Logger *slog.Logger
}

type subscription struct {
	id uuid.UUID
	fn func(Snapshot)
}

// Table holds the state of one rendered table. All mutations are serialised;
// each reads the latest snapshot and commits the next one, or fails and
// leaves the snapshot untouched. Subscribers see every commit in commit
// order.
type Table struct {
	registry *columns.Registry
	policy   filtering.Policy
	log      *slog.Logger
	drag     *columns.DragController

	mu   sync.Mutex
	snap Snapshot
	view *View
	subs []subscription

	// committed snapshots not yet delivered; drained by one goroutine at a time
	pending     []Snapshot
	dispatching bool
}

// New returns a table over reg with the natural column order.
func New(reg *columns.Registry, rows []Row, opts Options) (*Table, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	order, err := columns.Initialize(reg.IDs())
	if err != nil {
		return nil, fmt.Errorf("initialize order: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	t := &Table{
		registry: reg,
		policy:   opts.Policy,
		log:      log.With("component", "table"),
		snap: Snapshot{
			Order:      order,
			Visibility: map[string]bool{},
			Filters:    filtering.State{PerColumn: map[string]string{}},
			Rows:       withIDs(rows),
		},
	}
	t.drag = columns.NewDragController(t)
	return t, nil
}

// Registry returns the table's columns.
func (t *Table) Registry() *columns.Registry { return t.registry }

// Drag returns the controller tracking an in-flight keyboard or pointer drag.
// It is not safe for concurrent use.
func (t *Table) Drag() *columns.DragController { return t.drag }

// Snapshot returns the latest committed state.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// View returns the view derived from the latest committed state.
func (t *Table) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.view == nil {
		v := Build(Inputs{
			Registry:   t.registry,
			Order:      t.snap.Order,
			Visibility: t.snap.Visibility,
			Filters:    t.snap.Filters,
			Policy:     t.policy,
			Rows:       t.snap.Rows,
		})
		t.view = &v
	}
	return *t.view
}

// DisplayColumns returns every header in display order.
func (t *Table) DisplayColumns() []HeaderCell { return t.View().Headers }

// VisibleRows returns one page of filtered rows with their visible cells.
func (t *Table) VisibleRows(pageIndex, pageSize int) []RenderedRow {
	return t.View().Page(pageIndex, pageSize)
}

// FilteredCount returns the number of rows passing the filters.
func (t *Table) FilteredCount() int { return len(t.View().Rows) }

// PageCount returns the number of pages the filtered rows fill.
func (t *Table) PageCount(pageSize int) int { return PageCount(t.FilteredCount(), pageSize) }

// FilterDescription describes the active filters.
func (t *Table) FilterDescription() string { return t.View().Filter.Description() }

// Subscribe registers fn to receive every committed snapshot. Callbacks run
// without any table lock held and may mutate the table; such a commit is
// delivered after the current one, on the same goroutine. The returned func
// removes the subscription.
func (t *Table) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := uuid.New()
	t.mu.Lock()
	t.subs = append(t.subs, subscription{id: id, fn: fn})
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Reorder moves source onto target's slot. It implements columns.Reorderer.
func (t *Table) Reorder(source, target string) error {
	return t.update("reorder", func(s Snapshot) (Snapshot, bool, error) {
		next, err := s.Order.Reorder(source, target)
		if err != nil {
			return s, false, err
		}
		changed := !next.Equal(s.Order)
		s.Order = next
		return s, changed, nil
	}, "source", source, "target", target)
}

// HandleDragEnd applies a completed drag reported by a gesture recogniser.
// An empty target means the drag ended outside any column.
func (t *Table) HandleDragEnd(source, target string) error {
	_, err := columns.NewDragController(t).HandleDragEnd(source, target)
	return err
}

// TogglePin pins or unpins id.
func (t *Table) TogglePin(id string) error {
	return t.update("toggle pin", func(s Snapshot) (Snapshot, bool, error) {
		if err := t.registry.Check(id); err != nil {
			return s, false, err
		}
		next, err := s.Order.TogglePin(id)
		if err != nil {
			return s, false, err
		}
		s.Order = next
		return s, true, nil
	}, "column", id)
}

// SetColumnFilter sets id's filter text. Empty text clears it.
func (t *Table) SetColumnFilter(id, text string) error {
	return t.update("set column filter", func(s Snapshot) (Snapshot, bool, error) {
		if err := t.registry.Check(id); err != nil {
			return s, false, err
		}
		if s.Filters.PerColumn[id] == text {
			return s, false, nil
		}
		per := maps.Clone(s.Filters.PerColumn)
		if per == nil {
			per = map[string]string{}
		}
		if text == "" {
			delete(per, id)
		} else {
			per[id] = text
		}
		s.Filters.PerColumn = per
		return s, true, nil
	}, "column", id, "text", text)
}

// SetGlobalFilter sets the global search text. Empty text clears it.
func (t *Table) SetGlobalFilter(text string) error {
	return t.update("set global filter", func(s Snapshot) (Snapshot, bool, error) {
		if s.Filters.Global == text {
			return s, false, nil
		}
		s.Filters.Global = text
		return s, true, nil
	}, "text", text)
}

// SetColumnVisible shows or hides id. Hidden columns keep their order and
// pin state.
func (t *Table) SetColumnVisible(id string, visible bool) error {
	return t.update("set column visible", func(s Snapshot) (Snapshot, bool, error) {
		if err := t.registry.Check(id); err != nil {
			return s, false, err
		}
		if IsVisible(s.Visibility, id) == visible {
			return s, false, nil
		}
		vis := maps.Clone(s.Visibility)
		if vis == nil {
			vis = map[string]bool{}
		}
		if visible {
			delete(vis, id)
		} else {
			vis[id] = false
		}
		s.Visibility = vis
		return s, true, nil
	}, "column", id, "visible", visible)
}

// SetRows replaces every row. Rows without an id are numbered by position.
func (t *Table) SetRows(rows []Row) error {
	return t.update("set rows", func(s Snapshot) (Snapshot, bool, error) {
		if err := s.Order.Validate(t.registry.IDs()); err != nil {
			return s, false, fmt.Errorf("column order out of sync with registry: %w", err)
		}
		s.Rows = withIDs(rows)
		return s, true, nil
	}, "rows", len(rows))
}

func (t *Table) update(op string, fn func(Snapshot) (Snapshot, bool, error), attrs ...any) error {
	t.mu.Lock()
	next, changed, err := fn(t.snap)
	if err != nil {
		t.mu.Unlock()
		t.log.Warn(op+" rejected", append(attrs, "err", err)...)
		return err
	}
	if !changed {
		t.mu.Unlock()
		return nil
	}
	next.Version = t.snap.Version + 1
	t.snap = next
	t.view = nil
	t.pending = append(t.pending, next)
	if t.dispatching {
		t.mu.Unlock()
		t.log.Debug(op, append(attrs, "version", next.Version)...)
		return nil
	}
	t.dispatching = true
	t.mu.Unlock()

	t.log.Debug(op, append(attrs, "version", next.Version)...)
	t.dispatch()
	return nil
}

// dispatch delivers pending snapshots until none are left. Commits made
// meanwhile, by subscribers or other goroutines, join the queue.
func (t *Table) dispatch() {
	for {
		t.mu.Lock()
		if len(t.pending) == 0 {
			t.dispatching = false
			t.mu.Unlock()
			return
		}
		snap := t.pending[0]
		t.pending = t.pending[1:]
		subs := slices.Clone(t.subs)
		t.mu.Unlock()

		for _, s := range subs {
			s.fn(snap)
		}
	}
}

func withIDs(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		if r.ID == "" {
			r.ID = strconv.Itoa(i)
		}
		out[i] = r
	}
	return out
}
