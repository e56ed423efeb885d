package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/ttg/internal/tui/commands"
	"github.com/javiermolinar/ttg/internal/tui/view"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		if model, ok := updated.(Model); ok {
			return model.scheduleStatusClear(cmd)
		}
		return updated, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = m.buildLayout(m.width, m.height)
		m.grid.Width = m.layout.GridW
		m.grid.Height = m.layout.BodyH
		m.filter.Width = max(0, m.layout.PickerW-8)
		m.refreshGrid()
		return m, nil

	case commands.SavedMsg:
		m.logger.Info("timetable saved", zap.String("id", msg.ID))
		m.saving = false
		m.saveResult = view.SaveResultModel{Link: msg.Link, Copied: msg.Copied}
		m.mode = ModeModal
		m.statusMsg = ""
		return m, nil

	case commands.CopiedMsg:
		m.saveResult.Copied = true
		m.setStatus("Copied " + msg.Text)
		return m.scheduleStatusClear(nil)

	case commands.ErrMsg:
		m.logger.Warn("command failed", zap.Error(msg.Err))
		if m.saving {
			m.saving = false
			m.saveResult = view.SaveResultModel{Err: msg.Err.Error()}
			m.mode = ModeModal
		}
		m.setError(msg.Err)
		return m.scheduleStatusClear(nil)

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg)
		return m.scheduleStatusClear(nil)

	case commands.ClearStatusMsg:
		if !m.nowFunc().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	if m.mode == ModeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	return m, nil
}

// scheduleStatusClear adds a tick that clears a freshly set status message.
func (m Model) scheduleStatusClear(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.statusPending {
		return m, cmd
	}
	m.statusPending = false
	ttl := m.statusTime.Sub(m.nowFunc())
	return m, tea.Batch(cmd, commands.ClearStatusAfter(ttl))
}
