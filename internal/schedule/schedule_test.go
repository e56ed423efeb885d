package schedule

import (
	"slices"
	"testing"

	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

func clock(h, m int) timegrid.Clock {
	return timegrid.Clock{Hour: h, Minute: m}
}

func section(code string, kind unit.SectionKind, term unit.TermSpec, meetings ...unit.Meeting) unit.SchoolUnit {
	return unit.SchoolUnit{
		Department: "COMPSCI",
		Code:       code,
		Name:       "Course " + code,
		Kind:       kind,
		Label:      "01",
		Credits:    3,
		Term:       term,
		Meetings:   meetings,
	}
}

func meeting(term unit.TermSpec, day timegrid.Weekday, sh, sm, eh, em int) unit.Meeting {
	return unit.Meeting{Term: term, Day: day, Start: clock(sh, sm), End: clock(eh, em), Location: "ITB 137"}
}

func keysOf(placements []Placement) []timegrid.SlotKey {
	keys := make([]timegrid.SlotKey, len(placements))
	for i, p := range placements {
		keys[i] = p.Key
	}
	return keys
}

func TestRoundStart(t *testing.T) {
	tests := []struct {
		in   timegrid.Clock
		want timegrid.Clock
	}{
		{clock(9, 0), clock(9, 0)},
		{clock(9, 30), clock(9, 30)},
		{clock(9, 10), clock(9, 0)},
		{clock(9, 14), clock(9, 0)},
		{clock(9, 15), clock(9, 0)},
		{clock(9, 16), clock(9, 30)},
		{clock(9, 44), clock(9, 30)},
		{clock(9, 45), clock(9, 30)},
		{clock(9, 46), clock(10, 0)},
		{clock(9, 47), clock(10, 0)},
		{clock(23, 50), clock(24, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := RoundStart(tt.in); got != tt.want {
				t.Errorf("RoundStart(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProject_SingleTerm(t *testing.T) {
	u := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 10, 0))

	got := keysOf(Project(u))
	want := []timegrid.SlotKey{
		timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0),
		timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 30),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Project() keys = %v, want %v", got, want)
	}
}

func TestProject_UnroundedEnd(t *testing.T) {
	// 08:30 to 09:50 covers 08:30, 09:00 and 09:30.
	u := section("CS101", unit.KindLab, unit.TermSecond, meeting(unit.TermSecond, timegrid.Friday, 8, 30, 9, 50))

	got := keysOf(Project(u))
	if len(got) != 3 {
		t.Fatalf("Project() returned %d slots, want 3: %v", len(got), got)
	}
	if got[2] != timegrid.KeyFor(timegrid.Term2, timegrid.Friday, 9, 30) {
		t.Errorf("last slot = %v, want term2 Friday 09:30", got[2])
	}
}

func TestProject_RoundedPastEnd(t *testing.T) {
	// 09:50 rounds to 10:00, which is not before the 10:00 end.
	u := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 50, 10, 0))

	if got := Project(u); len(got) != 0 {
		t.Fatalf("Project() = %v, want no slots", got)
	}
}

func TestProject_KeepsMeetingLocation(t *testing.T) {
	a := meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30)
	b := meeting(unit.TermFirst, timegrid.Wednesday, 9, 0, 9, 30)
	b.Location = "BSB 108"
	u := section("CS101", unit.KindCore, unit.TermFirst, a, b)

	got := Project(u)
	if len(got) != 2 {
		t.Fatalf("Project() returned %d slots, want 2", len(got))
	}
	if got[0].Occupant.Location != "ITB 137" || got[1].Occupant.Location != "BSB 108" {
		t.Errorf("locations = %q, %q", got[0].Occupant.Location, got[1].Occupant.Location)
	}
}

func TestProject_FullYearSplit(t *testing.T) {
	u := section("CS200", unit.KindCore, unit.TermBoth, meeting(unit.TermBoth, timegrid.Monday, 9, 0, 10, 0))

	placements := Project(u)
	got := keysOf(placements)
	want := []timegrid.SlotKey{
		timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0),
		timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 30),
		timegrid.KeyFor(timegrid.Term2, timegrid.Monday, 9, 0),
		timegrid.KeyFor(timegrid.Term2, timegrid.Monday, 9, 30),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Project() keys = %v, want %v", got, want)
	}

	first := placements[0].Occupant.Unit
	second := placements[2].Occupant.Unit
	if first.IsFullYear() || second.IsFullYear() {
		t.Fatal("placements must carry the split halves")
	}
	if !unit.SameCourse(first, second) {
		t.Error("halves should be the same course")
	}
}

func TestProject_FullYearTermTaggedMeetings(t *testing.T) {
	u := section("CS200", unit.KindLab, unit.TermBoth,
		meeting(unit.TermFirst, timegrid.Tuesday, 13, 0, 13, 30),
		meeting(unit.TermSecond, timegrid.Thursday, 13, 0, 13, 30),
	)

	got := keysOf(Project(u))
	want := []timegrid.SlotKey{
		timegrid.KeyFor(timegrid.Term1, timegrid.Tuesday, 13, 0),
		timegrid.KeyFor(timegrid.Term2, timegrid.Thursday, 13, 0),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Project() keys = %v, want %v", got, want)
	}
}

func TestRunning_AddRemove(t *testing.T) {
	r := NewRunning()
	u := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 10, 0))

	if n := r.Add(u); n != 2 {
		t.Fatalf("Add() = %d, want 2", n)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if !r.OccupiesCourse(u) {
		t.Fatal("OccupiesCourse() = false after Add")
	}

	if n := r.Remove(u); n != 2 {
		t.Fatalf("Remove() = %d, want 2", n)
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d after Remove, want 0", r.Len())
	}
	if r.OccupiesCourse(u) {
		t.Fatal("OccupiesCourse() = true after Remove")
	}
}

func TestRunning_RemoveIsIdempotent(t *testing.T) {
	r := NewRunning()
	a := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 10, 0))
	b := section("CS102", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30))
	r.Add(a)
	r.Add(b)

	r.Remove(a)
	before := r.Keys()
	if n := r.Remove(a); n != 0 {
		t.Fatalf("second Remove() = %d, want 0", n)
	}
	if !slices.Equal(r.Keys(), before) {
		t.Fatalf("keys changed on second Remove: %v -> %v", before, r.Keys())
	}
	occ := r.At(timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0))
	if len(occ) != 1 || occ[0].Unit.Code != "CS102" {
		t.Fatalf("At(09:00) = %+v, want only CS102", occ)
	}
}

func TestRunning_RemoveByValue(t *testing.T) {
	r := NewRunning()
	added := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30))
	r.Add(added)

	// A rebuilt copy of the same unit removes the original.
	rebuilt := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30))
	if n := r.Remove(rebuilt); n != 1 {
		t.Fatalf("Remove(rebuilt) = %d, want 1", n)
	}
}

func TestRunning_RemoveKeepsOtherKinds(t *testing.T) {
	r := NewRunning()
	core := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30))
	lab := section("CS101", unit.KindLab, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 9, 30))
	r.Add(core)
	r.Add(lab)

	r.Remove(core)
	occ := r.At(timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0))
	if len(occ) != 1 || occ[0].Unit.Kind != unit.KindLab {
		t.Fatalf("At(09:00) = %+v, want only the lab", occ)
	}
	if !r.OccupiesCourse(core) {
		t.Error("course should still be occupied by its lab")
	}
}

func TestRunning_InsertionOrder(t *testing.T) {
	r := NewRunning()
	key := timegrid.KeyFor(timegrid.Term1, timegrid.Tuesday, 10, 0)
	for _, code := range []string{"CS103", "CS101", "CS102"} {
		r.Add(section(code, unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Tuesday, 10, 0, 10, 30)))
	}

	var got []string
	for _, o := range r.At(key) {
		got = append(got, o.Unit.Code)
	}
	if !slices.Equal(got, []string{"CS103", "CS101", "CS102"}) {
		t.Errorf("occupants = %v, want insertion order", got)
	}
}

func TestRunning_FullYear(t *testing.T) {
	r := NewRunning()
	u := section("CS200", unit.KindCore, unit.TermBoth, meeting(unit.TermBoth, timegrid.Monday, 9, 0, 10, 0))

	if n := r.Add(u); n != 4 {
		t.Fatalf("Add() = %d, want 4", n)
	}
	for _, term := range []timegrid.Term{timegrid.Term1, timegrid.Term2} {
		for _, minute := range []int{0, 30} {
			if len(r.At(timegrid.KeyFor(term, timegrid.Monday, 9, minute))) != 1 {
				t.Errorf("term %d Monday 09:%02d not occupied", term, minute)
			}
		}
	}
	if !r.OccupiesCourse(u) {
		t.Error("OccupiesCourse(full-year) = false")
	}

	if n := r.Remove(u); n != 4 {
		t.Fatalf("Remove() = %d, want 4", n)
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestRunning_UnitsAndClear(t *testing.T) {
	r := NewRunning()
	a := section("CS101", unit.KindCore, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 9, 0, 10, 0))
	b := section("CS101", unit.KindLab, unit.TermFirst, meeting(unit.TermFirst, timegrid.Monday, 8, 0, 8, 30))
	r.Add(a)
	r.Add(b)

	units := r.Units()
	if len(units) != 2 {
		t.Fatalf("Units() returned %d units, want 2", len(units))
	}
	if units[0].Kind != unit.KindLab {
		t.Errorf("first unit = %s, want the 08:00 lab", units[0])
	}

	r.Clear()
	if r.Len() != 0 || len(r.Units()) != 0 {
		t.Fatal("Clear() left occupants behind")
	}
}

func TestClassify(t *testing.T) {
	core := section("CS101", unit.KindCore, unit.TermFirst)
	core.Alternating = true
	lab := section("CS101", unit.KindLab, unit.TermFirst)
	lab.Alternating = true
	core2 := core
	core2.Label = "02"
	other := section("MATH1", unit.KindCore, unit.TermFirst)
	other.Alternating = true
	notAlternating := lab
	notAlternating.Alternating = false

	occ := func(units ...unit.SchoolUnit) []Occupant {
		out := make([]Occupant, len(units))
		for i, u := range units {
			out[i] = Occupant{Unit: u}
		}
		return out
	}

	tests := []struct {
		name      string
		occupants []Occupant
		want      bool
	}{
		{"alternating core and lab", occ(core, lab), false},
		{"same kind", occ(core, core2), true},
		{"unrelated third course", occ(core, lab, other), true},
		{"third course listed first", occ(other, core, lab), true},
		{"one side not alternating", occ(core, notAlternating), true},
		{"different courses", occ(core, other), true},
		{"single occupant", occ(core), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.occupants).TrueConflict; got != tt.want {
				t.Errorf("Classify().TrueConflict = %v, want %v", got, tt.want)
			}
		})
	}
}
