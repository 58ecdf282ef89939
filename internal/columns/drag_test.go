package columns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingReorderer struct {
	state State
	calls [][2]string
}

func (r *recordingReorderer) Reorder(source, target string) error {
	next, err := r.state.Reorder(source, target)
	if err != nil {
		return err
	}
	if !next.Equal(r.state) {
		r.calls = append(r.calls, [2]string{source, target})
	}
	r.state = next
	return nil
}

func newRecorder(t *testing.T) *recordingReorderer {
	t.Helper()
	return &recordingReorderer{state: mustInit(t, "A", "B", "C", "D")}
}

func TestDragDropCommitsReorder(t *testing.T) {
	rec := newRecorder(t)
	c := NewDragController(rec)

	_, active := c.Dragging()
	require.False(t, active)

	c.Begin("A")
	src, active := c.Dragging()
	require.True(t, active)
	require.Equal(t, "A", src)

	ok, err := c.Drop("C")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"B", "C", "A", "D"}, rec.state.Order())

	_, active = c.Dragging()
	require.False(t, active)
}

func TestDragWithoutMutation(t *testing.T) {
	cases := []struct {
		name string
		run  func(c *DragController) (bool, error)
	}{
		{"drop on self", func(c *DragController) (bool, error) { c.Begin("B"); return c.Drop("B") }},
		{"drop outside", func(c *DragController) (bool, error) { c.Begin("B"); return c.Drop("") }},
		{"drop while idle", func(c *DragController) (bool, error) { return c.Drop("C") }},
		{"cancel twice", func(c *DragController) (bool, error) { c.Begin("B"); c.Cancel(); c.Cancel(); return c.Drop("C") }},
		{"drag end on self", func(c *DragController) (bool, error) { return c.HandleDragEnd("C", "C") }},
		{"drag end without target", func(c *DragController) (bool, error) { return c.HandleDragEnd("C", "") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder(t)
			c := NewDragController(rec)
			ok, err := tc.run(c)
			require.NoError(t, err)
			require.False(t, ok)
			require.Empty(t, rec.calls)
			require.Equal(t, []string{"A", "B", "C", "D"}, rec.state.Order())
		})
	}
}

func TestDragEndWithStaleID(t *testing.T) {
	rec := newRecorder(t)
	c := NewDragController(rec)

	c.Begin("gone")
	ok, err := c.Drop("A")
	require.ErrorIs(t, err, ErrInvalidColumnReference)
	require.False(t, ok)
	_, active := c.Dragging()
	require.False(t, active)

	ok, err = c.HandleDragEnd("D", "A")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"D", "A", "B", "C"}, rec.state.Order())
}

func TestDropOnSelfRejectsUnknownID(t *testing.T) {
	rec := newRecorder(t)
	c := NewDragController(rec)

	ok, err := c.HandleDragEnd("zzz", "zzz")
	require.ErrorIs(t, err, ErrInvalidColumnReference)
	require.False(t, ok)

	c.Begin("gone")
	ok, err = c.Drop("gone")
	require.ErrorIs(t, err, ErrInvalidColumnReference)
	require.False(t, ok)

	require.Empty(t, rec.calls)
	require.Equal(t, []string{"A", "B", "C", "D"}, rec.state.Order())
}
