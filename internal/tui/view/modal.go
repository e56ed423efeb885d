package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles are the styles of the save result modal.
type ModalStyles struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
}

// SaveResultModel contains the fields of the modal shown after saving.
type SaveResultModel struct {
	Link   string
	Copied bool
	Err    string
}

// Title returns the modal heading for the result.
func (m SaveResultModel) Title() string {
	if m.Err != "" {
		return "Save failed"
	}
	return "Timetable saved"
}

// RenderSaveResult renders the whole save result modal: heading, the shared
// link or the error, and the key hints.
func RenderSaveResult(model SaveResultModel, styles ModalStyles) string {
	sections := []string{styles.Title.Render(model.Title())}

	if model.Err != "" {
		sections = append(sections,
			styles.Body.Render(" Could not save: "+model.Err),
			buttons(styles, "[Enter] Close"))
	} else {
		body := styles.Body.Render(" Share this timetable with:") + "\n\n" +
			styles.Body.Render(" "+model.Link)
		if model.Copied {
			body += "\n\n" + styles.Body.Render(" Copied to clipboard.")
		}
		sections = append(sections, body, buttons(styles, "[Enter] Close", "[y] Copy"))
	}

	return styles.Frame.Render(strings.Join(sections, "\n\n"))
}

// buttons renders key hints with the first one highlighted.
func buttons(styles ModalStyles, labels ...string) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		style := styles.Button
		if i == 0 {
			style = styles.ActiveButton
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
