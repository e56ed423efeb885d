// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ttg/internal/catalog"
)

// Saver persists a timetable state and returns its short id.
type Saver interface {
	Save(ctx context.Context, st catalog.State) (string, error)
}

// ClipboardFunc writes text to the system clipboard.
type ClipboardFunc func(text string) error

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SavedMsg is sent when a timetable has been saved.
type SavedMsg struct {
	ID     string
	Link   string
	Copied bool
}

// CopiedMsg is sent when a link has been copied to the clipboard.
type CopiedMsg struct {
	Text string
}

// saveTimeout bounds one save round trip.
const saveTimeout = 10 * time.Second

// SaveSchedule saves st and reports the shareable link.
// When copy is set the link is also placed on the clipboard; a clipboard
// failure does not fail the save.
func SaveSchedule(saver Saver, st catalog.State, linkFor func(id string) string, copy ClipboardFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		id, err := saver.Save(ctx, st)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving timetable: %w", err)}
		}

		msg := SavedMsg{ID: id, Link: linkFor(id)}
		if copy != nil && copy(msg.Link) == nil {
			msg.Copied = true
		}
		return msg
	}
}

// CopyToClipboard copies text to the clipboard.
func CopyToClipboard(copy ClipboardFunc, text string) tea.Cmd {
	return func() tea.Msg {
		if copy == nil {
			return ErrMsg{Err: fmt.Errorf("clipboard is not available")}
		}
		if err := copy(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Text: text}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
