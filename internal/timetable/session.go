// Package timetable holds one user's editing session: the running schedule,
// its colour bindings and the units the user picked.
package timetable

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/ttg/internal/palette"
	"github.com/javiermolinar/ttg/internal/render"
	"github.com/javiermolinar/ttg/internal/schedule"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

// Session owns the mutable state of one timetable.
// It is not safe for concurrent use.
type Session struct {
	id       string
	running  *schedule.Running
	colors   *palette.Assigner
	prefixes map[unit.SectionKind]string
	units    []unit.SchoolUnit // picked units in the order they were added
	logger   *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrefixes sets the section label prefixes used when rendering.
func WithPrefixes(prefixes map[unit.SectionKind]string) Option {
	return func(s *Session) {
		if len(prefixes) > 0 {
			s.prefixes = prefixes
		}
	}
}

// New starts an empty session drawing colours from p.
func New(p *palette.Palette, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		running:  schedule.NewRunning(),
		colors:   palette.NewAssigner(p),
		prefixes: render.DefaultPrefixes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	return s
}

// ID returns the session id attached to every log line.
func (s *Session) ID() string {
	return s.id
}

// AddUnit schedules u. Meetings that cover no slot are skipped.
func (s *Session) AddUnit(u unit.SchoolUnit) {
	for _, m := range u.Meetings {
		if len(schedule.MeetingSlots(timegrid.Term1, m)) == 0 {
			s.logger.Debug("meeting covers no slots",
				zap.Stringer("unit", u),
				zap.Stringer("day", m.Day),
				zap.Stringer("start", m.Start),
				zap.Stringer("end", m.End),
			)
		}
	}

	n := s.running.Add(u)
	s.units = append(s.units, u)
	s.logger.Debug("unit added", zap.Stringer("unit", u), zap.Int("slots", n))
}

// RemoveUnit unschedules u, matched by value. Removing a unit that is not
// scheduled does nothing. The course colour is freed once no section of the
// course is left on the grid.
func (s *Session) RemoveUnit(u unit.SchoolUnit) {
	n := s.running.Remove(u)
	if i := slices.IndexFunc(s.units, func(p unit.SchoolUnit) bool {
		return sameSection(p, u)
	}); i >= 0 {
		s.units = slices.Delete(s.units, i, i+1)
	}

	released := false
	if !s.running.OccupiesCourse(u) {
		released = s.colors.Release(u)
	}
	s.logger.Debug("unit removed",
		zap.Stringer("unit", u),
		zap.Int("slots", n),
		zap.Bool("color_released", released),
	)
}

// Pick adds u, first removing any other section of the same course and kind.
// A course holds at most one section of each kind.
func (s *Session) Pick(u unit.SchoolUnit) {
	for _, p := range s.Units() {
		if unit.UnitsEqual(p, u) && p.Label != u.Label {
			s.RemoveUnit(p)
		}
	}
	if !s.Has(u) {
		s.AddUnit(u)
	}
}

// Toggle removes u when it is picked and picks it otherwise.
// It reports whether u is picked afterwards.
func (s *Session) Toggle(u unit.SchoolUnit) bool {
	if s.Has(u) {
		s.RemoveUnit(u)
		return false
	}
	s.Pick(u)
	return true
}

// Render draws the current timetable.
func (s *Session) Render() render.GridView {
	return render.Render(s.running, s.colors, s.prefixes)
}

// SetMonochrome switches every course to the default colour.
func (s *Session) SetMonochrome(enabled bool) {
	s.colors.SetMonochrome(enabled)
	s.logger.Debug("monochrome toggled", zap.Bool("enabled", enabled))
}

// Monochrome reports whether monochrome mode is on.
func (s *Session) Monochrome() bool {
	return s.colors.Monochrome()
}

// Clear drops every unit and colour binding.
func (s *Session) Clear() {
	s.running.Clear()
	s.colors.Reset()
	s.units = nil
	s.logger.Debug("session cleared")
}

// Restore replaces the timetable with units, as when opening a saved link.
func (s *Session) Restore(units []unit.SchoolUnit, monochrome bool) {
	s.Clear()
	s.SetMonochrome(monochrome)
	for _, u := range units {
		s.Pick(u)
	}
	s.logger.Debug("session restored", zap.Int("units", len(units)))
}

// Units returns the picked units in the order they were added.
func (s *Session) Units() []unit.SchoolUnit {
	return slices.Clone(s.units)
}

// Has reports whether the same section has been added.
func (s *Session) Has(u unit.SchoolUnit) bool {
	return slices.ContainsFunc(s.units, func(p unit.SchoolUnit) bool {
		return sameSection(p, u)
	})
}

// Bindings returns the colours currently held by courses.
func (s *Session) Bindings() []palette.Binding {
	return s.colors.Bound()
}

// Slots returns the number of occupied slots.
func (s *Session) Slots() int {
	return s.running.Len()
}

func sameSection(a, b unit.SchoolUnit) bool {
	return unit.UnitsEqual(a, b) && a.Label == b.Label
}
