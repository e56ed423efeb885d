package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ttg/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorBorder      lipgloss.Color
	colorWarning     lipgloss.Color

	// Title and pane headers
	TitleStyle lipgloss.Style

	// Picker rows
	PickerStyle        lipgloss.Style
	PickerItemStyle    lipgloss.Style
	PickerCursorStyle  lipgloss.Style
	PickerHeadingStyle lipgloss.Style
	PickerPickedStyle  lipgloss.Style
	PickerFilterStyle  lipgloss.Style
	PickerCrumbStyle   lipgloss.Style

	// Footer
	TotalsStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles builds the styles of a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorBorder = palette.Border
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.PickerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorBorder).
		Background(s.colorBg).
		Padding(0, 1)

	s.PickerItemStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.PickerCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnSelection).
		Background(s.colorBgSelection).
		Bold(true)

	s.PickerHeadingStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.PickerPickedStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.PickerFilterStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.PickerCrumbStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Italic(true)

	s.TotalsStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Padding(0, 1)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnWarning).
		Background(s.colorWarning).
		Padding(0, 1)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)

	modalBg := palette.Modal.Bg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Modal.Border).
		BorderBackground(modalBg).
		Background(modalBg).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(modalBg).
		Bold(true)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(palette.Modal.Text).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(palette.TextOnSelection).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Padding(0, 3).
		Underline(true)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingLeft(1).
		PaddingRight(1)

	return s
}
