package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content top-left or bottom-left in a w×h box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground makes content exactly height lines, each padded to
// width with bg. Lines already wider than width are left alone.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay draws modal centred over base, which is padded to width×height.
// The modal keeps its background across the resets its styled spans emit.
func Overlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	boxLines := strings.Split(modal, "\n")
	boxW := min(widest(boxLines), width)
	if boxW == 0 {
		return base
	}
	for i, line := range boxLines {
		boxLines[i] = fitModalLine(line, boxW, modalBg)
	}

	top := max(0, (height-len(boxLines))/2)
	left := max(0, (width-boxW)/2)

	lines := strings.Split(PadLinesWithBackground(base, width, height, ""), "\n")
	for i, boxLine := range boxLines {
		row := top + i
		if row >= len(lines) {
			break
		}
		under := lines[row]
		lines[row] = ansi.Cut(under, 0, left) + boxLine + ansi.Cut(under, left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

func widest(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

// fitModalLine cuts or pads line to width and closes it with a reset.
func fitModalLine(line string, width int, bg lipgloss.Color) string {
	lineW := lipgloss.Width(line)
	switch {
	case lineW > width:
		line = ansi.Cut(line, 0, width)
	case lineW < width:
		line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width-lineW))
	}
	return keepBackground(line, bg) + ansi.ResetStyle
}

// keepBackground re-applies bg after every reset inside line.
func keepBackground(line string, bg lipgloss.Color) string {
	if bg == "" {
		return line
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+seq)
	}
	return line
}
