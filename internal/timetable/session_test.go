package timetable

import (
	"reflect"
	"testing"

	"github.com/javiermolinar/ttg/internal/palette"
	"github.com/javiermolinar/ttg/internal/render"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	p, err := palette.Load("classic")
	if err != nil {
		t.Fatalf("palette.Load error: %v", err)
	}
	return New(p)
}

func section(code string, kind unit.SectionKind, day timegrid.Weekday, sh, eh int) unit.SchoolUnit {
	return unit.SchoolUnit{
		Department: "COMPSCI",
		Code:       code,
		Name:       "Course " + code,
		Kind:       kind,
		Label:      "01",
		Credits:    3,
		Term:       unit.TermFirst,
		Meetings: []unit.Meeting{{
			Term:  unit.TermFirst,
			Day:   day,
			Start: timegrid.Clock{Hour: sh},
			End:   timegrid.Clock{Hour: eh},
		}},
	}
}

func TestSession_AddRemoveInverse(t *testing.T) {
	s := newSession(t)
	empty := s.Render()

	u := section("CS101", unit.KindCore, timegrid.Monday, 9, 10)
	s.AddUnit(u)
	if got := s.Render(); len(got.Cells) != 1 {
		t.Fatalf("len(Cells) = %d after add, want 1", len(got.Cells))
	}

	s.RemoveUnit(u)
	got := s.Render()
	if !reflect.DeepEqual(got, empty) {
		t.Fatalf("Render() after add+remove = %+v, want %+v", got, empty)
	}
	if len(s.Bindings()) != 0 {
		t.Errorf("Bindings() = %v, want none", s.Bindings())
	}
	if len(s.Units()) != 0 {
		t.Errorf("Units() = %v, want none", s.Units())
	}
}

func TestSession_RemoveIsIdempotent(t *testing.T) {
	s := newSession(t)
	a := section("CS101", unit.KindCore, timegrid.Monday, 9, 10)
	b := section("CS102", unit.KindCore, timegrid.Tuesday, 9, 10)
	s.AddUnit(a)
	s.AddUnit(b)

	s.RemoveUnit(a)
	once := s.Render()
	s.RemoveUnit(a)
	if twice := s.Render(); !reflect.DeepEqual(once, twice) {
		t.Fatalf("second RemoveUnit changed the view: %+v -> %+v", once, twice)
	}
}

func TestSession_ColorRecycling(t *testing.T) {
	s := newSession(t)
	a := section("A", unit.KindCore, timegrid.Monday, 9, 10)
	b := section("B", unit.KindCore, timegrid.Tuesday, 9, 10)
	c := section("C", unit.KindCore, timegrid.Wednesday, 9, 10)

	s.AddUnit(a)
	c1 := s.Render().Cells[0].Color
	s.AddUnit(b)
	c2 := s.Render().Cells[1].Color
	if c1 == c2 {
		t.Fatalf("A and B share colour %q", c1)
	}

	s.RemoveUnit(a)
	s.AddUnit(c)
	view := s.Render()
	cell, ok := view.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Wednesday, 9, 0))
	if !ok {
		t.Fatal("C not rendered")
	}
	if cell.Color != c1 {
		t.Errorf("C got %q, want recycled %q", cell.Color, c1)
	}
	if cell, _ := view.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Tuesday, 9, 0)); cell.Color != c2 {
		t.Errorf("B changed colour to %q, want %q", cell.Color, c2)
	}
}

func TestSession_SiblingKeepsColour(t *testing.T) {
	s := newSession(t)
	core := section("A", unit.KindCore, timegrid.Monday, 9, 10)
	lab := section("A", unit.KindLab, timegrid.Thursday, 14, 15)
	other := section("B", unit.KindCore, timegrid.Friday, 9, 10)

	s.AddUnit(core)
	s.AddUnit(lab)
	colour := s.Render().Cells[0].Color

	s.RemoveUnit(core)
	s.AddUnit(other)
	view := s.Render()
	labCell, _ := view.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Thursday, 14, 0))
	otherCell, _ := view.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Friday, 9, 0))
	if labCell.Color != colour {
		t.Errorf("lab colour = %q, want %q", labCell.Color, colour)
	}
	if otherCell.Color == colour {
		t.Errorf("new course took colour %q still held by the lab", colour)
	}
}

func TestSession_Monochrome(t *testing.T) {
	s := newSession(t)
	s.AddUnit(section("A", unit.KindCore, timegrid.Monday, 9, 10))
	s.SetMonochrome(true)
	if !s.Monochrome() {
		t.Fatal("Monochrome() = false")
	}

	view := s.Render()
	if view.Cells[0].Color != "#CCFF9A" {
		t.Errorf("Color = %q, want default #CCFF9A", view.Cells[0].Color)
	}
}

func TestSession_ZeroSlotMeeting(t *testing.T) {
	s := newSession(t)
	u := section("A", unit.KindCore, timegrid.Monday, 9, 10)
	u.Meetings[0].Start = timegrid.Clock{Hour: 9, Minute: 50}

	s.AddUnit(u)
	if s.Slots() != 0 {
		t.Fatalf("Slots() = %d, want 0", s.Slots())
	}
	if len(s.Render().Cells) != 0 {
		t.Error("zero-slot unit rendered a cell")
	}
}

func TestSession_ClearAndUnits(t *testing.T) {
	s := newSession(t)
	a := section("A", unit.KindCore, timegrid.Monday, 9, 10)
	a2 := a
	a2.Label = "02"
	s.AddUnit(a)

	if !s.Has(a) || s.Has(a2) {
		t.Fatal("Has() should match the exact section only")
	}

	s.Render()
	s.Clear()
	if s.Slots() != 0 || len(s.Units()) != 0 || len(s.Bindings()) != 0 {
		t.Fatal("Clear() left state behind")
	}
	if s.Render().Terms != [2]render.TermTotals{} {
		t.Error("totals not reset")
	}
}

func TestSession_IDIsUnique(t *testing.T) {
	if newSession(t).ID() == newSession(t).ID() {
		t.Error("two sessions share an id")
	}
}

func TestSession_PickReplacesSameKind(t *testing.T) {
	s := newSession(t)
	a := section("A", unit.KindCore, timegrid.Monday, 9, 10)
	a2 := section("A", unit.KindCore, timegrid.Tuesday, 9, 10)
	a2.Label = "02"
	lab := section("A", unit.KindLab, timegrid.Wednesday, 14, 16)

	s.Pick(a)
	s.Pick(lab)
	s.Pick(a2)

	if s.Has(a) {
		t.Error("picking another core section should drop the first one")
	}
	if !s.Has(a2) || !s.Has(lab) {
		t.Error("picked sections missing")
	}
	if len(s.Units()) != 2 {
		t.Errorf("Units() = %v, want two sections", s.Units())
	}

	gv := s.Render()
	if _, ok := gv.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0)); ok {
		t.Error("replaced section still drawn")
	}
	if gv.Totals(timegrid.Term1).Hours != 3 {
		t.Errorf("hours = %v, want 3", gv.Totals(timegrid.Term1).Hours)
	}

	s.Pick(a2)
	if len(s.Units()) != 2 {
		t.Error("picking an already picked section should not add it twice")
	}
}

func TestSession_Toggle(t *testing.T) {
	s := newSession(t)
	u := section("CS101", unit.KindCore, timegrid.Monday, 9, 10)

	if !s.Toggle(u) {
		t.Fatal("first Toggle should pick the section")
	}
	if s.Toggle(u) {
		t.Fatal("second Toggle should drop the section")
	}
	if s.Slots() != 0 {
		t.Errorf("Slots() = %d after toggling twice, want 0", s.Slots())
	}
}

func TestSession_Restore(t *testing.T) {
	s := newSession(t)
	s.AddUnit(section("OLD", unit.KindCore, timegrid.Friday, 9, 10))

	units := []unit.SchoolUnit{
		section("A", unit.KindCore, timegrid.Monday, 9, 10),
		section("B", unit.KindCore, timegrid.Tuesday, 9, 10),
	}
	s.Restore(units, true)

	if s.Has(section("OLD", unit.KindCore, timegrid.Friday, 9, 10)) {
		t.Error("Restore kept a unit from before")
	}
	if len(s.Units()) != 2 || !s.Monochrome() {
		t.Errorf("Restore: units = %d, mono = %v; want 2, true", len(s.Units()), s.Monochrome())
	}
}
