package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestPadLinesWithBackground(t *testing.T) {
	out := PadLinesWithBackground("ab\ncdef", 5, 3, "")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 5 {
			t.Errorf("line %d width = %d, want 5", i, w)
		}
	}

	if got := PadLinesWithBackground("a\nb\nc", 1, 2, ""); strings.Count(got, "\n") != 1 {
		t.Errorf("extra lines should be dropped, got %q", got)
	}
}

func TestOverlay_CentresModal(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := Overlay(base, "XX\nXX", 10, 5, "")

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if !strings.Contains(lines[0], "..........") {
		t.Errorf("row 0 = %q, want untouched base", lines[0])
	}
	for _, row := range []int{1, 2} {
		plain := ansi.Strip(lines[row])
		if plain != "....XX...." {
			t.Errorf("row %d = %q, want modal in the centre", row, plain)
		}
	}
}

func TestOverlay_EmptyModal(t *testing.T) {
	if got := Overlay("base", "", 10, 2, ""); got != "base" {
		t.Errorf("Overlay with empty modal = %q, want base", got)
	}
}

func TestKeepBackground(t *testing.T) {
	line := "a\x1b[0mb"
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor("#112233")).String()
	got := keepBackground(line, "#112233")
	if got != "a\x1b[0m"+seq+"b" {
		t.Errorf("keepBackground = %q", got)
	}
	if keepBackground(line, "") != line {
		t.Error("no background should leave the line alone")
	}
}
