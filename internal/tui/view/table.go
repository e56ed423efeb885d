package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/ttg/internal/palette"
	"github.com/javiermolinar/ttg/internal/render"
	"github.com/javiermolinar/ttg/internal/timegrid"
)

// DefaultColWidth is the width of a day column when none is given.
const DefaultColWidth = 16

const timeColWidth = 5

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the timetable grid.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
	Render       bool
}

// TermOptions controls how one term of a grid view is drawn.
type TermOptions struct {
	ColWidth int               // day column width, DefaultColWidth if zero
	Cursor   *timegrid.SlotKey // slot drawn with CursorBg, optional
	Bg       lipgloss.Color    // empty slot background
	Fg       lipgloss.Color    // time column and header text
	Border   lipgloss.Color
	CursorBg lipgloss.Color
}

// RenderTable renders the grid as a lipgloss table placed in a fixed box.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	tableWidth := state.InnerW - 2
	if tableWidth < 0 {
		tableWidth = 0
	}

	grid := newTable(state).Width(tableWidth).Render()
	return PlaceBox(state.InnerW, state.GridH, state.VAlign, grid, state.Bg)
}

func newTable(state TableViewState) *table.Table {
	return table.New().
		Headers(state.Headers...).
		Border(lipgloss.RoundedBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderLeft(true).
		BorderRight(true).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			if row < 0 || row >= len(state.Content.CellStyles) || col < 0 || col >= len(state.Content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return state.Content.CellStyles[row][col]
		})
}

// RenderTerm draws one term: the grid followed by its totals line.
// The Saturday column is only drawn when that term uses it.
func RenderTerm(gv render.GridView, term timegrid.Term, opts TermOptions) string {
	state := TermTable(gv, term, opts)
	grid := newTable(state).Render()
	return grid + "\n" + FormatTotals(gv.Totals(term))
}

// TermTable builds the table state of one term. Callers placing the grid in
// a box still need to set InnerW and GridH.
func TermTable(gv render.GridView, term timegrid.Term, opts TermOptions) TableViewState {
	colW := opts.ColWidth
	if colW <= 0 {
		colW = DefaultColWidth
	}
	days := Days(gv.Totals(term).Saturday)

	headers := HeaderLabels(days)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(opts.Fg).Padding(0, 1)
	headerStyles := make([]lipgloss.Style, len(headers))
	headerStyles[0] = headerStyle.Width(timeColWidth + 2)
	for i := 1; i < len(headerStyles); i++ {
		headerStyles[i] = headerStyle.Width(colW + 2)
	}

	timeStyle := lipgloss.NewStyle().Foreground(opts.Fg).Padding(0, 1).Width(timeColWidth + 2)
	emptyStyle := lipgloss.NewStyle().Background(opts.Bg).Padding(0, 1).Width(colW + 2)

	var content TableContent
	for minute := timegrid.FirstSlotMinute; minute <= timegrid.LastSlotMinute; minute += timegrid.SlotMinutes {
		row := make([]string, 0, len(days)+1)
		styles := make([]lipgloss.Style, 0, len(days)+1)

		row = append(row, timegrid.MinutesToTime(minute))
		styles = append(styles, timeStyle)

		for _, day := range days {
			key := timegrid.SlotKey{Term: term, Day: day, Minute: minute}
			cell, ok := gv.CellAt(key)

			style := emptyStyle
			text := ""
			if ok {
				text = CellLine(cell, key, colW)
				style = cellStyle(cell, colW)
			}
			if opts.Cursor != nil && *opts.Cursor == key {
				style = style.Background(opts.CursorBg).
					Foreground(lipgloss.Color(palette.TextColor(string(opts.CursorBg))))
			}

			row = append(row, text)
			styles = append(styles, style)
		}

		content.Rows = append(content.Rows, row)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return TableViewState{
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  lipgloss.NewStyle().Foreground(opts.Border),
		VAlign:       lipgloss.Top,
		Bg:           opts.Bg,
		Render:       true,
	}
}

// CellLine returns the text a merged cell shows on the row of key.
// Lines are handed out one per row; lines left over when the span runs out
// are joined onto its last row.
func CellLine(cell render.Cell, key timegrid.SlotKey, width int) string {
	offset := (key.Minute - cell.Key.Minute) / timegrid.SlotMinutes
	if offset < 0 || offset >= cell.Span || offset >= len(cell.Lines) {
		return ""
	}

	text := cell.Lines[offset]
	if offset == cell.Span-1 && len(cell.Lines) > cell.Span {
		text = strings.Join(cell.Lines[offset:], " ")
	}
	if width > 0 {
		text = ansi.Truncate(text, width, "…")
	}
	return text
}

func cellStyle(cell render.Cell, colW int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(cell.Color)).
		Foreground(lipgloss.Color(palette.TextColor(cell.Color))).
		Padding(0, 1).
		Width(colW + 2)
	if cell.Kind == render.Conflict {
		style = style.Bold(true)
	}
	return style
}
