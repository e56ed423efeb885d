// Package tui provides the terminal user interface for building a timetable.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/config"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/timetable"
	"github.com/javiermolinar/ttg/internal/tui/commands"
	"github.com/javiermolinar/ttg/internal/tui/theme"
	"github.com/javiermolinar/ttg/internal/tui/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter      // typing into the picker filter
	ModeModal       // save result shown
)

const (
	statusTTL = 3 * time.Second
	errorTTL  = 5 * time.Second
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	catalog   *catalog.Catalog
	session   *timetable.Session
	saver     commands.Saver
	config    *config.Config
	logger    *zap.Logger
	clipboard commands.ClipboardFunc
	keys      KeyMap

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	picker     picker
	term       timegrid.Term
	mode       Mode
	saveResult view.SaveResultModel
	saving     bool

	// Components
	filter textinput.Model
	grid   viewport.Model

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Messages
	statusMsg     string    // Temporary status/error message
	statusErr     bool      // statusMsg is an error
	statusTime    time.Time // When to clear message
	statusPending bool      // a clear has to be scheduled
	nowFunc       func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithSaver sets where timetables are saved.
func WithSaver(s commands.Saver) ModelOption {
	return func(m *Model) {
		m.saver = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(fn commands.ClipboardFunc) ModelOption {
	return func(m *Model) {
		m.clipboard = fn
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
	}
}

// New creates a new TUI model.
func New(cat *catalog.Catalog, session *timetable.Session, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.Display.Palette)
	if err != nil {
		t, _ = theme.Load("")
	}
	styles := NewStyles(t)

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.CharLimit = 64
	filter.PromptStyle = styles.PickerFilterStyle
	filter.TextStyle = styles.PickerItemStyle
	filter.PlaceholderStyle = styles.PickerFilterStyle

	term := timegrid.Term(cfg.Display.Term)
	if !term.Valid() {
		term = timegrid.Term1
	}

	m := &Model{
		catalog:   cat,
		session:   session,
		config:    cfg,
		logger:    zap.NewNop(),
		clipboard: clipboard.WriteAll,
		keys:      DefaultKeyMap(),
		theme:     t,
		styles:    styles,
		term:      term,
		mode:      ModeNormal,
		filter:    filter,
		grid:      viewport.New(0, 0),
		nowFunc:   time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.saver == nil {
		m.keys.Save.SetEnabled(false)
	}
	m.reloadPicker()
	m.refreshGrid()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the timetable being edited.
func (m Model) Session() *timetable.Session {
	return m.session
}

// Run starts the TUI.
func Run(cat *catalog.Catalog, session *timetable.Session, cfg *config.Config, opts ...ModelOption) error {
	model := New(cat, session, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = m.nowFunc().Add(statusTTL)
	m.statusPending = true
}

func (m *Model) setError(err error) {
	m.statusMsg = "Error: " + err.Error()
	m.statusErr = true
	m.statusTime = m.nowFunc().Add(errorTTL)
	m.statusPending = true
}

// reloadPicker rebuilds the picker rows for the current level and filter.
func (m *Model) reloadPicker() {
	if err := m.picker.load(m.catalog, m.session, m.filter.Value()); err != nil {
		m.logger.Warn("loading picker", zap.Error(err))
		m.setError(err)
	}
}

func (m *Model) descend() {
	if m.picker.enter() {
		m.filter.SetValue("")
		m.reloadPicker()
	}
}

func (m *Model) ascend() {
	if m.picker.back() {
		m.filter.SetValue("")
		m.reloadPicker()
	}
}

// refreshGrid redraws the shown term into the grid viewport.
func (m *Model) refreshGrid() {
	gv := m.session.Render()
	content := view.RenderTerm(gv, m.term, view.TermOptions{
		ColWidth: m.layout.ColWidth,
		Bg:       m.styles.colorBg,
		Fg:       m.styles.colorFg,
		Border:   m.styles.colorBorder,
	})
	m.grid.SetContent(content)
}
