package columns

// Reorderer applies a committed drag.
type Reorderer interface {
	Reorder(source, target string) error
}

// DragController tracks one in-flight column drag. It is Idle until Begin and
// returns to Idle on Drop or Cancel. A drop onto the dragged column itself
// still reaches the Reorderer so stale ids are rejected, but never moves
// anything.
type DragController struct {
	target Reorderer
	source string
	active bool
}

// NewDragController returns an idle controller committing into r.
func NewDragController(r Reorderer) *DragController {
	return &DragController{target: r}
}

// Begin starts dragging source, replacing any drag already in flight.
func (c *DragController) Begin(source string) {
	c.source = source
	c.active = true
}

// Dragging returns the id being dragged.
func (c *DragController) Dragging() (string, bool) {
	return c.source, c.active
}

// Cancel drops the in-flight drag without mutating anything. Calling it while
// idle does nothing.
func (c *DragController) Cancel() {
	c.source = ""
	c.active = false
}

// Drop ends the drag over target. An empty target means the pointer was
// released outside any column and nothing is committed. It reports whether a
// reorder was committed; on error the drag is still ended.
func (c *DragController) Drop(target string) (bool, error) {
	if !c.active {
		return false, nil
	}
	source := c.source
	c.Cancel()
	return c.commit(source, target)
}

// HandleDragEnd consumes a completed gesture in one call, as reported by a
// gesture recogniser that tracks the drag itself.
func (c *DragController) HandleDragEnd(source, target string) (bool, error) {
	c.Cancel()
	return c.commit(source, target)
}

func (c *DragController) commit(source, target string) (bool, error) {
	if target == "" || c.target == nil {
		return false, nil
	}
	if err := c.target.Reorder(source, target); err != nil {
		return false, err
	}
	return source != target, nil
}
