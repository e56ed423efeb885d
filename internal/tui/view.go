package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/ttg/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	base := m.renderAppContent()
	if m.mode != ModeModal {
		return base
	}
	return view.Overlay(base, m.renderModal(), m.width, m.height, m.styles.ModalBgColor)
}

func (m Model) renderAppContent() string {
	layout := m.layout
	if layout.InnerW <= 0 || layout.BodyH <= 0 {
		return "Terminal too small"
	}

	title := m.placeBox(layout.InnerW, titleH, lipgloss.Top, m.styles.TitleStyle.Render(m.title()))
	picker := m.renderPicker(layout)
	grid := m.placeBox(layout.GridW, layout.BodyH, lipgloss.Top, m.grid.View())
	gap := m.placeBox(paneGap, layout.BodyH, lipgloss.Top, "")
	body := lipgloss.JoinHorizontal(lipgloss.Top, picker, gap, grid)
	footer := view.RenderFooter(m.footerViewState(layout))

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) title() string {
	name := m.catalog.Name
	if name == "" {
		name = m.catalog.ID
	}
	mode := ""
	if m.session.Monochrome() {
		mode = " · mono"
	}
	return fmt.Sprintf("Timetable · %s · Term %d%s", name, m.term, mode)
}

func (m Model) renderPicker(layout Layout) string {
	frameW, frameH := m.styles.PickerStyle.GetFrameSize()
	innerW := max(0, layout.PickerW-frameW)
	innerH := max(0, layout.BodyH-frameH)

	var b strings.Builder
	b.WriteString(m.styles.PickerCrumbStyle.Render(ansi.Truncate(m.picker.crumb(), innerW, "…")))
	b.WriteString("\n")
	if m.mode == ModeFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
	}
	b.WriteString("\n")

	rows := max(1, innerH-2)
	start := 0
	if m.picker.cursor >= rows {
		start = m.picker.cursor - rows + 1
	}
	end := min(len(m.picker.items), start+rows)

	if len(m.picker.items) == 0 {
		b.WriteString(m.styles.PickerFilterStyle.Render("No matches"))
	}
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(m.renderPickerItem(m.picker.items[i], i == m.picker.cursor, innerW))
	}

	list := view.PlaceBox(innerW, innerH, lipgloss.Top, b.String(), m.styles.colorBg)
	return m.styles.PickerStyle.Render(list)
}

func (m Model) renderPickerItem(item pickerItem, selected bool, width int) string {
	if item.header {
		return m.styles.PickerHeadingStyle.Render(ansi.Truncate(item.label, width, "…"))
	}

	marker := "  "
	if item.picked {
		marker = "✓ "
	}
	if m.picker.level < levelSections {
		marker = ""
	}
	text := ansi.Truncate(marker+item.label, width, "…")

	style := m.styles.PickerItemStyle
	switch {
	case selected:
		style = m.styles.PickerCursorStyle
	case item.picked:
		style = m.styles.PickerPickedStyle
	}
	return style.Width(width).Render(text)
}

func (m Model) footerViewState(layout Layout) view.FooterViewState {
	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.ErrorStyle
	}

	return view.FooterViewState{
		InnerW:      layout.InnerW,
		FooterH:     layout.FooterH,
		FullFooter:  layout.FooterH >= footerFull,
		TotalsLine:  m.selectionSummary(),
		StatusLine:  m.statusMsg,
		HelpLine:    m.keys.HelpLine(),
		TotalsStyle: m.styles.TotalsStyle,
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		VAlign:      lipgloss.Bottom,
		Bg:          m.styles.colorBg,
	}
}

// selectionSummary counts the picked sections and courses.
func (m Model) selectionSummary() string {
	units := m.session.Units()
	courses := make(map[string]struct{})
	for _, u := range units {
		courses[u.Department+" "+u.Code] = struct{}{}
	}
	return fmt.Sprintf("%d sections in %d courses", len(units), len(courses))
}

func (m Model) renderModal() string {
	return view.RenderSaveResult(m.saveResult, view.ModalStyles{
		Frame:        m.styles.ModalStyle,
		Title:        m.styles.ModalTitleStyle,
		Body:         m.styles.ModalBodyStyle,
		Button:       m.styles.ModalButtonStyle,
		ActiveButton: m.styles.ModalButtonActiveStyle,
	})
}
