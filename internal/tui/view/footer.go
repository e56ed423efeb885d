package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	FooterH     int
	FullFooter  bool
	TotalsLine  string
	StatusLine  string
	HelpLine    string
	TotalsStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	VAlign      lipgloss.Position
	Bg          lipgloss.Color
}

// RenderFooter renders totals, status, and help lines.
// A short footer drops the totals line.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	status := footerLine(state.InnerW, state.StatusStyle, state.StatusLine)
	help := footerLine(state.InnerW, state.HelpStyle, state.HelpLine)

	var s string
	if state.FullFooter {
		s += footerLine(state.InnerW, state.TotalsStyle, state.TotalsLine) + "\n"
	}
	s += status + "\n"
	s += help

	return PlaceBox(state.InnerW, state.FooterH, state.VAlign, s, state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
