package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ttg/internal/palette"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	// Border is the accent pulled towards the background, for grid lines.
	Border lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnSelection lipgloss.Color
	TextOnWarning   lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg     lipgloss.Color
	Border lipgloss.Color
	Text   lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(palette.DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	borderRatio := 0.35
	if isLight {
		borderRatio = 0.5
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),
		Border:      lipgloss.Color(palette.Blend(t.Accent, t.Bg, borderRatio)),

		TextOnAccent:    lipgloss.Color(palette.ChooseText(t.Accent, t.Bg, t.Fg)),
		TextOnSelection: lipgloss.Color(palette.ChooseText(t.BgSelection, t.Bg, t.Fg)),
		TextOnWarning:   lipgloss.Color(palette.ChooseText(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:     lipgloss.Color(t.BgHighlight),
			Border: lipgloss.Color(t.Accent),
			Text:   lipgloss.Color(t.Fg),
		},
	}
}

func isLightTheme(bg string) bool {
	return palette.TextColor(bg) != "#FFFFFF"
}
