package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/coltable/internal/columns"
	"github.com/jask/coltable/internal/logger"
	"github.com/jask/coltable/internal/table"
)

// RowLoader supplies table rows.
type RowLoader interface {
	Load(ctx context.Context) ([]table.Row, error)
}

// Options configures the App.
type Options struct {
	PageSize  int
	PinMarker string
	Logger    *slog.Logger
}

type mode string

const (
	modeNormal  mode = "normal"
	modeFilter  mode = "filter"
	modeSearch  mode = "search"
	modeDrag    mode = "drag"
	modeColumns mode = "columns"
)

// App is the bubbletea model rendering one table.
type App struct {
	ctx    context.Context
	table  *table.Table
	source RowLoader
	log    *slog.Logger
	keys   keyMap

	pageSize  int
	pinMarker string

	mode          mode
	page          int
	focus         int // index into the visible columns
	chooserCursor int
	input         textinput.Model
	editingID     string // column whose filter is being edited
	restore       string // filter text to restore on cancel
	status        string
	width         int
}

func New(ctx context.Context, tbl *table.Table, source RowLoader, opts Options) *App {
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	if opts.PinMarker == "" {
		opts.PinMarker = "*"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	inp := textinput.New()
	inp.Prompt = "> "
	return &App{
		ctx:       ctx,
		table:     tbl,
		source:    source,
		log:       opts.Logger.With("component", "tui"),
		keys:      defaultKeys(),
		pageSize:  opts.PageSize,
		pinMarker: opts.PinMarker,
		mode:      modeNormal,
		input:     inp,
	}
}

// messages
type rowsMsg []table.Row

type errMsg struct{ error }

func (a *App) Init() tea.Cmd {
	return a.loadRows()
}

func (a *App) loadRows() tea.Cmd {
	if a.source == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := a.source.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return rowsMsg(rows)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case rowsMsg:
		if err := a.table.SetRows([]table.Row(m)); err != nil {
			a.fail(err)
			break
		}
		a.status = ""
		a.clampPage()
	case errMsg:
		a.fail(m.error)
	case tea.KeyMsg:
		switch a.mode {
		case modeFilter, modeSearch:
			return a.handleInputKey(m)
		case modeDrag:
			return a.handleDragKey(m)
		case modeColumns:
			return a.handleColumnsKey(m)
		default:
			return a.handleNormalKey(m)
		}
	}
	return a, nil
}

func (a *App) handleNormalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := a.table.View().Columns
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Left):
		if a.focus > 0 {
			a.focus--
		}
	case key.Matches(m, a.keys.Right):
		if a.focus < len(cols)-1 {
			a.focus++
		}
	case key.Matches(m, a.keys.NextPage):
		if a.page < a.table.PageCount(a.pageSize)-1 {
			a.page++
		}
	case key.Matches(m, a.keys.PrevPage):
		if a.page > 0 {
			a.page--
		}
	case key.Matches(m, a.keys.Pin):
		if id, ok := a.focusedID(); ok {
			if err := a.table.TogglePin(id); err != nil {
				a.fail(err)
				break
			}
			a.focusOn(id)
		}
	case key.Matches(m, a.keys.Filter):
		if id, ok := a.focusedID(); ok {
			a.startInput(modeFilter, id, a.table.Snapshot().Filters.PerColumn[id])
		}
	case key.Matches(m, a.keys.Search):
		a.startInput(modeSearch, "", a.table.Snapshot().Filters.Global)
	case key.Matches(m, a.keys.Columns):
		a.mode = modeColumns
		a.chooserCursor = 0
	case key.Matches(m, a.keys.Drag):
		if id, ok := a.focusedID(); ok {
			a.table.Drag().Begin(id)
			a.mode = modeDrag
		}
	case key.Matches(m, a.keys.Reload):
		a.status = "reloading..."
		return a, a.loadRows()
	}
	return a, nil
}

func (a *App) handleDragKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	drag := a.table.Drag()
	cols := a.table.View().Columns
	switch {
	case key.Matches(m, a.keys.Left):
		if a.focus > 0 {
			a.focus--
		}
	case key.Matches(m, a.keys.Right):
		if a.focus < len(cols)-1 {
			a.focus++
		}
	case key.Matches(m, a.keys.Confirm):
		source, _ := drag.Dragging()
		target, _ := a.focusedID()
		a.mode = modeNormal
		if _, err := drag.Drop(target); err != nil {
			a.fail(err)
			break
		}
		a.focusOn(source)
	case key.Matches(m, a.keys.Cancel), key.Matches(m, a.keys.Quit):
		source, _ := drag.Dragging()
		drag.Cancel()
		a.mode = modeNormal
		a.focusOn(source)
	}
	return a, nil
}

func (a *App) handleColumnsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	headers := a.table.DisplayColumns()
	switch {
	case key.Matches(m, a.keys.Up):
		if a.chooserCursor > 0 {
			a.chooserCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.chooserCursor < len(headers)-1 {
			a.chooserCursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if a.chooserCursor < len(headers) {
			h := headers[a.chooserCursor]
			if err := a.table.SetColumnVisible(h.ID, !h.Visible); err != nil {
				a.fail(err)
			}
			a.clampFocus()
			a.clampPage()
		}
	case key.Matches(m, a.keys.Confirm), key.Matches(m, a.keys.Cancel), key.Matches(m, a.keys.Columns):
		a.mode = modeNormal
	}
	return a, nil
}

func (a *App) startInput(md mode, id, current string) {
	a.mode = md
	a.editingID = id
	a.restore = current
	a.input.SetValue(current)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Confirm):
		a.endInput()
		return a, nil
	case key.Matches(m, a.keys.Cancel):
		a.applyInput(a.restore)
		a.endInput()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	a.applyInput(a.input.Value())
	return a, cmd
}

func (a *App) applyInput(text string) {
	var err error
	if a.mode == modeSearch {
		err = a.table.SetGlobalFilter(text)
	} else {
		err = a.table.SetColumnFilter(a.editingID, text)
	}
	if err != nil {
		a.fail(err)
		return
	}
	a.page = 0
}

func (a *App) endInput() {
	a.input.Blur()
	a.mode = modeNormal
	a.editingID = ""
}

func (a *App) focusedID() (string, bool) {
	cols := a.table.View().Columns
	if a.focus < 0 || a.focus >= len(cols) {
		return "", false
	}
	return cols[a.focus].ID, true
}

func (a *App) focusOn(id string) {
	for i, c := range a.table.View().Columns {
		if c.ID == id {
			a.focus = i
			return
		}
	}
	a.clampFocus()
}

func (a *App) clampFocus() {
	n := len(a.table.View().Columns)
	if a.focus >= n {
		a.focus = n - 1
	}
	if a.focus < 0 {
		a.focus = 0
	}
}

func (a *App) clampPage() {
	if last := a.table.PageCount(a.pageSize) - 1; a.page > last {
		a.page = max(last, 0)
	}
}

func (a *App) fail(err error) {
	a.status = "error: " + err.Error()
	if errors.Is(err, columns.ErrInvalidColumnReference) {
		a.log.Warn("column operation rejected", "err", err)
		return
	}
	a.log.Error("table update failed", "err", err)
}
