// Package render turns a running schedule into an inert grid view: merged
// cells with colours and text, plus per-term totals.
package render

import (
	"slices"

	"github.com/javiermolinar/ttg/internal/schedule"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

const (
	alternatingMarker = "ALTERNATING"
	conflictMarker    = "*** CONFLICT ***"
)

// Reader is the read side of a running schedule.
type Reader interface {
	At(key timegrid.SlotKey) []schedule.Occupant
}

// ColorSource supplies cell colours.
type ColorSource interface {
	ColorFor(u unit.SchoolUnit) string
	Conflict() string
}

// DefaultPrefixes are the section label prefixes used when a catalog gives none.
var DefaultPrefixes = map[unit.SectionKind]string{
	unit.KindCore:     "C",
	unit.KindLab:      "L",
	unit.KindTutorial: "T",
}

// CellKind says how a cell was filled.
type CellKind int

const (
	// Single is one unit on its own.
	Single CellKind = iota
	// Alternating is a shared slot that is not a real clash.
	Alternating
	// Conflict is a true conflict.
	Conflict
)

func (k CellKind) String() string {
	switch k {
	case Alternating:
		return "alternating"
	case Conflict:
		return "conflict"
	default:
		return "single"
	}
}

// Entry is the text shown for one occupant of a cell.
type Entry struct {
	Code        string
	Section     string // prefix plus section label, e.g. "C01"
	Instructor  string // first instructor, core sections only
	Serial      string
	Location    string
	Alternating bool
}

// Cell is one rendered block starting at Key and covering Span slots down
// the same day column.
type Cell struct {
	Key     timegrid.SlotKey
	Span    int
	Color   string
	Kind    CellKind
	Entries []Entry
	Lines   []string
}

// Covers reports whether the cell spans the given slot.
func (c Cell) Covers(key timegrid.SlotKey) bool {
	if key.Term != c.Key.Term || key.Day != c.Key.Day {
		return false
	}
	return key.Minute >= c.Key.Minute && key.Minute < c.Key.Minute+c.Span*timegrid.SlotMinutes
}

// TermTotals are the running totals of one term.
type TermTotals struct {
	Hours    float64
	Credits  float64
	Saturday bool // some Saturday slot is occupied
}

// GridView is the full rendered timetable.
type GridView struct {
	Cells []Cell
	Terms [timegrid.NumTerms]TermTotals
}

// Totals returns the totals of a term.
func (v GridView) Totals(term timegrid.Term) TermTotals {
	if !term.Valid() {
		return TermTotals{}
	}
	return v.Terms[term-1]
}

// CellsForTerm returns the cells of one term in grid order.
func (v GridView) CellsForTerm(term timegrid.Term) []Cell {
	var cells []Cell
	for _, c := range v.Cells {
		if c.Key.Term == term {
			cells = append(cells, c)
		}
	}
	return cells
}

// CellAt returns the cell covering key.
func (v GridView) CellAt(key timegrid.SlotKey) (Cell, bool) {
	for _, c := range v.Cells {
		if c.Covers(key) {
			return c, true
		}
	}
	return Cell{}, false
}

// walker holds the accumulators of one rendering pass.
type walker struct {
	colors   ColorSource
	prefixes map[unit.SectionKind]string
	view     GridView
	visited  []unit.SchoolUnit

	single     int // index of the open single cell, -1 when none
	singleUnit unit.SchoolUnit
	shared     int // index of the open multi-occupant cell, -1 when none
	sharedSet  []schedule.Occupant
}

// Render walks the grid in slot order and builds the view.
//
// Consecutive slots held by the same unit merge into one cell. Consecutive
// shared slots merge only when their occupant sets match exactly; a partial
// change opens a new cell. Cells never run across a day boundary.
// Colours are looked up as cells open, so colors may bind new entries.
func Render(sched Reader, colors ColorSource, prefixes map[unit.SectionKind]string) GridView {
	if prefixes == nil {
		prefixes = DefaultPrefixes
	}
	w := &walker{colors: colors, prefixes: prefixes}
	w.reset()

	var prev timegrid.SlotKey
	for i, key := range timegrid.Enumerate() {
		if i > 0 && (key.Term != prev.Term || key.Day != prev.Day) {
			w.reset()
		}
		prev = key
		w.visit(key, sched.At(key))
	}
	return w.view
}

func (w *walker) reset() {
	w.single = -1
	w.shared = -1
	w.sharedSet = nil
}

func (w *walker) visit(key timegrid.SlotKey, occupants []schedule.Occupant) {
	if len(occupants) == 0 {
		w.reset()
		return
	}

	w.count(key, occupants)

	if len(occupants) == 1 {
		w.shared = -1
		w.sharedSet = nil

		o := occupants[0]
		if w.single >= 0 && unit.UnitsEqual(o.Unit, w.singleUnit) {
			w.view.Cells[w.single].Span++
			return
		}
		w.single = w.open(Cell{
			Key:     key,
			Color:   w.colors.ColorFor(o.Unit),
			Kind:    Single,
			Entries: []Entry{w.entry(o)},
		})
		w.singleUnit = o.Unit
		return
	}

	w.single = -1
	if w.shared >= 0 && sameOccupants(occupants, w.sharedSet) {
		w.view.Cells[w.shared].Span++
		return
	}

	cell := Cell{Key: key, Kind: Alternating}
	if schedule.Classify(occupants).TrueConflict {
		cell.Kind = Conflict
		cell.Color = w.colors.Conflict()
	} else {
		cell.Color = w.colors.ColorFor(occupants[0].Unit)
	}
	for _, o := range occupants {
		cell.Entries = append(cell.Entries, w.entry(o))
	}
	w.shared = w.open(cell)
	w.sharedSet = occupants
}

// count adds the slot's hours and the credits of courses not seen before.
func (w *walker) count(key timegrid.SlotKey, occupants []schedule.Occupant) {
	totals := &w.view.Terms[key.Term-1]
	totals.Hours += 0.5
	if key.Day == timegrid.Saturday {
		totals.Saturday = true
	}

	for _, o := range occupants {
		seen := slices.ContainsFunc(w.visited, func(v unit.SchoolUnit) bool {
			return unit.SameCourse(v, o.Unit)
		})
		if seen {
			continue
		}
		w.visited = append(w.visited, o.Unit)

		if o.Unit.Linked {
			half := o.Unit.Credits / 2
			w.view.Terms[0].Credits += half
			w.view.Terms[1].Credits += half
		} else {
			totals.Credits += o.Unit.Credits
		}
	}
}

func (w *walker) open(c Cell) int {
	c.Span = 1
	c.Lines = cellLines(c)
	w.view.Cells = append(w.view.Cells, c)
	return len(w.view.Cells) - 1
}

func (w *walker) entry(o schedule.Occupant) Entry {
	e := Entry{
		Code:        o.Unit.Code,
		Section:     w.prefixes[o.Unit.Kind] + o.Unit.Label,
		Serial:      o.Unit.Serial,
		Location:    o.Location,
		Alternating: o.Unit.Alternating,
	}
	if o.Unit.Kind == unit.KindCore {
		e.Instructor = o.Unit.FirstInstructor()
	}
	return e
}

func cellLines(c Cell) []string {
	var lines []string
	for _, e := range c.Entries {
		lines = append(lines, e.Code+" "+e.Section)
		for _, s := range []string{e.Instructor, e.Serial, e.Location} {
			if s != "" {
				lines = append(lines, s)
			}
		}
		switch c.Kind {
		case Conflict:
			lines = append(lines, conflictMarker)
		case Alternating:
			lines = append(lines, alternatingMarker)
		default:
			if e.Alternating {
				lines = append(lines, alternatingMarker)
			}
		}
	}
	return lines
}

// sameOccupants reports whether a and b hold the same units, ignoring order.
func sameOccupants(a, b []schedule.Occupant) bool {
	if len(a) != len(b) {
		return false
	}
	return coveredBy(a, b) && coveredBy(b, a)
}

func coveredBy(a, b []schedule.Occupant) bool {
	for _, x := range a {
		found := slices.ContainsFunc(b, func(y schedule.Occupant) bool {
			return unit.UnitsEqual(x.Unit, y.Unit)
		})
		if !found {
			return false
		}
	}
	return true
}
