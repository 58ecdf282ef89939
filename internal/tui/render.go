package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/coltable/internal/table"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	pinnedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	focusStyle  = lipgloss.NewStyle().Reverse(true)
	dragStyle   = lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	minColWidth = 4
	maxColWidth = 28
)

func (a *App) View() string {
	view := a.table.View()
	rows := view.Page(a.page, a.pageSize)

	var b strings.Builder
	b.WriteString(titleStyle.Render("People"))
	b.WriteString("\n")
	b.WriteString(a.renderSearch())
	b.WriteString("\n\n")

	if len(view.Columns) == 0 {
		b.WriteString(dimStyle.Render("All columns hidden. Press c to choose columns."))
		b.WriteString("\n")
	} else {
		widths := columnWidths(view, rows, a.pinMarker)
		b.WriteString(a.renderHeader(view, widths))
		b.WriteString("\n")
		b.WriteString(a.renderFilters(view, widths))
		b.WriteString("\n")
		if len(rows) == 0 {
			b.WriteString(dimStyle.Render("No matching rows."))
			b.WriteString("\n")
		}
		for _, r := range rows {
			cells := make([]string, len(r.Cells))
			for i, c := range r.Cells {
				cells[i] = padRight(c.Value, widths[i])
			}
			b.WriteString(strings.Join(cells, " │ "))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter(len(view.Rows)))
	if a.mode == modeColumns {
		b.WriteString("\n\n")
		b.WriteString(a.renderChooser())
	}
	if a.status != "" {
		b.WriteString("\n")
		if strings.HasPrefix(a.status, "error:") {
			b.WriteString(errorStyle.Render(a.status))
		} else {
			b.WriteString(a.status)
		}
	}
	return b.String()
}

func (a *App) renderSearch() string {
	if a.mode == modeSearch {
		return "Search: " + a.input.View()
	}
	g := a.table.Snapshot().Filters.Global
	if g == "" {
		return dimStyle.Render("Search: (press / to search all columns)")
	}
	return "Search: " + g
}

func (a *App) renderHeader(view table.View, widths []int) string {
	pinned := map[string]bool{}
	for _, h := range view.Headers {
		pinned[h.ID] = h.Pinned
	}
	dragging, isDragging := a.table.Drag().Dragging()
	cells := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		label := c.Label
		if pinned[c.ID] {
			label = a.pinMarker + label
		}
		if isDragging && c.ID == dragging {
			label = "⋮" + label
		}
		cell := padRight(label, widths[i])
		switch {
		case i == a.focus && isDragging:
			cell = dragStyle.Render(cell)
		case i == a.focus:
			cell = focusStyle.Render(cell)
		case pinned[c.ID]:
			cell = pinnedStyle.Render(cell)
		default:
			cell = headerStyle.Render(cell)
		}
		cells[i] = cell
	}
	return strings.Join(cells, " │ ")
}

func (a *App) renderFilters(view table.View, widths []int) string {
	per := a.table.Snapshot().Filters.PerColumn
	cells := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		text := per[c.ID]
		if a.mode == modeFilter && a.editingID == c.ID {
			cells[i] = padRight(a.input.View(), widths[i])
			continue
		}
		if text == "" {
			cells[i] = dimStyle.Render(padRight("·", widths[i]))
			continue
		}
		cells[i] = padRight("~"+text, widths[i])
	}
	return strings.Join(cells, " │ ")
}

func (a *App) renderFooter(filtered int) string {
	pages := max(a.table.PageCount(a.pageSize), 1)
	total := len(a.table.Snapshot().Rows)
	out := fmt.Sprintf("Page %d of %d  ·  %d of %d rows", a.page+1, pages, filtered, total)
	if desc := a.table.FilterDescription(); desc != "all" {
		out += "  ·  filter " + desc
	}
	out += "\n" + dimStyle.Render(a.helpLine())
	return out
}

func (a *App) helpLine() string {
	switch a.mode {
	case modeDrag:
		return "[←/→] Choose target  [enter] Drop  [esc] Cancel"
	case modeFilter, modeSearch:
		return "[enter] Done  [esc] Cancel"
	case modeColumns:
		return "[↑/↓] Select  [space] Show/hide  [enter] Close"
	}
	var parts []string
	for _, b := range a.keys.normalHelp() {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderChooser() string {
	out := titleStyle.Render("Columns") + "\n"
	for i, h := range a.table.DisplayColumns() {
		marker := " "
		if i == a.chooserCursor {
			marker = "▶"
		}
		check := "[ ]"
		if h.Visible {
			check = "[x]"
		}
		label := h.Label
		if h.Pinned {
			label = a.pinMarker + label
		}
		out += fmt.Sprintf("%s %s %s\n", marker, check, label)
	}
	return strings.TrimRight(out, "\n")
}

func columnWidths(view table.View, rows []table.RenderedRow, pinMarker string) []int {
	widths := make([]int, len(view.Columns))
	for i, c := range view.Columns {
		widths[i] = ansi.StringWidth(pinMarker+c.Label) + 1
	}
	for _, r := range rows {
		for i, c := range r.Cells {
			widths[i] = max(widths[i], ansi.StringWidth(c.Value))
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minColWidth), maxColWidth)
	}
	return widths
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
