package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/tui/commands"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Toggle     key.Binding
	Mono       key.Binding
	Term       key.Binding
	Save       key.Binding
	Copy       key.Binding
	Filter     key.Binding
	Clear      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "add/remove"),
		),
		Mono: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mono"),
		),
		Term: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "term"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpLine renders the enabled bindings as "key desc" pairs.
func (k KeyMap) HelpLine() string {
	bindings := []key.Binding{
		k.Up, k.Down, k.Enter, k.Back, k.Toggle, k.Filter,
		k.Term, k.Mono, k.Save, k.Clear, k.ScrollDown, k.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys while browsing the catalog.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)

	case key.Matches(msg, m.keys.Enter):
		if m.picker.level == levelSections {
			return m.toggleSelected()
		}
		m.descend()

	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.reloadPicker()
			return m, nil
		}
		m.ascend()

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelected()

	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Term):
		if m.term == timegrid.Term1 {
			m.term = timegrid.Term2
		} else {
			m.term = timegrid.Term1
		}
		m.refreshGrid()
		m.grid.GotoTop()

	case key.Matches(msg, m.keys.Mono):
		m.session.SetMonochrome(!m.session.Monochrome())
		m.refreshGrid()
		if m.session.Monochrome() {
			m.setStatus("Monochrome on")
		} else {
			m.setStatus("Monochrome off")
		}

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.refreshGrid()
		m.setStatus("Timetable cleared")

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.ScrollUp):
		m.grid.HalfPageUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.grid.HalfPageDown()
	}

	return m, nil
}

// handleFilterKeys feeds the filter input until enter or esc.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		m.filter.Blur()
		m.mode = ModeNormal
		m.reloadPicker()
		return m, nil
	case tea.KeyEnter:
		m.filter.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.reloadPicker()
	return m, cmd
}

// handleModalKeys handles keys while the save result is shown.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if m.saveResult.Link == "" {
			return m, nil
		}
		return m, commands.CopyToClipboard(m.clipboard, m.saveResult.Link)
	case msg.Type == tea.KeyEnter, msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	item, ok := m.picker.selected()
	if !ok || item.kind == "" {
		return m, nil
	}

	u, err := m.catalog.Unit(m.picker.department, m.picker.course, item.kind, item.id)
	if err != nil {
		m.logger.Warn("section cannot be scheduled", zap.Error(err))
		m.setError(fmt.Errorf("section %s: %w", item.label, err))
		return m, nil
	}

	if m.session.Toggle(u) {
		m.setStatus("Added " + u.Code + " " + m.catalog.Prefix(u.Kind) + u.Label)
	} else {
		m.setStatus("Removed " + u.Code + " " + m.catalog.Prefix(u.Kind) + u.Label)
	}
	m.reloadPicker()
	m.refreshGrid()
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saver == nil || m.saving {
		return m, nil
	}
	units := m.session.Units()
	if len(units) == 0 {
		m.setStatus("Nothing to save")
		return m, nil
	}

	st, err := m.catalog.StateFor(units, m.session.Monochrome())
	if err != nil {
		m.setError(err)
		return m, nil
	}

	m.saving = true
	m.setStatus("Saving...")
	return m, commands.SaveSchedule(m.saver, st, m.config.LinkFor, m.clipboard)
}
