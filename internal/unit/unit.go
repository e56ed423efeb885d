// Package unit defines the school unit, the selectable section of a course
// that gets placed on a timetable.
package unit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/ttg/internal/timegrid"
)

// Validation errors.
var (
	ErrEmptyCode       = errors.New("course code cannot be empty")
	ErrInvalidKind     = errors.New("section kind must be 'core', 'lab' or 'tutorial'")
	ErrInvalidTerm     = errors.New("term must be 1, 2 or 3")
	ErrNegativeCredits = errors.New("credits cannot be negative")
	ErrNotFullYear     = errors.New("unit is not a full-year unit")
)

// SectionKind is the kind of a section.
type SectionKind string

const (
	KindCore     SectionKind = "core"
	KindLab      SectionKind = "lab"
	KindTutorial SectionKind = "tutorial"
)

// Kinds returns the section kinds in catalog order.
func Kinds() []SectionKind {
	return []SectionKind{KindCore, KindTutorial, KindLab}
}

// ParseSectionKind parses a section kind, case-insensitively.
func ParseSectionKind(s string) (SectionKind, error) {
	switch SectionKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCore:
		return KindCore, nil
	case KindLab:
		return KindLab, nil
	case KindTutorial:
		return KindTutorial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Valid returns true if the kind is a known value.
func (k SectionKind) Valid() bool {
	switch k {
	case KindCore, KindLab, KindTutorial:
		return true
	default:
		return false
	}
}

// TermSpec says which term(s) a unit or meeting belongs to.
type TermSpec int

const (
	TermFirst  TermSpec = 1
	TermSecond TermSpec = 2
	// TermBoth marks a full-year unit, or a meeting held in both terms.
	TermBoth TermSpec = 3
)

// Valid returns true if the term spec is 1, 2 or 3.
func (t TermSpec) Valid() bool {
	return t == TermFirst || t == TermSecond || t == TermBoth
}

// Includes reports whether meetings tagged t are held in the given grid term.
func (t TermSpec) Includes(term timegrid.Term) bool {
	return t == TermBoth || int(t) == int(term)
}

// Meeting is one weekly occurrence of a section.
type Meeting struct {
	Term     TermSpec
	Day      timegrid.Weekday
	Start    timegrid.Clock
	End      timegrid.Clock
	Location string
}

// SchoolUnit is one section of one course, the thing a user adds to a timetable.
type SchoolUnit struct {
	Department  string
	Code        string
	Name        string
	Kind        SectionKind
	Label       string // section name, e.g. "01"
	Serial      string // registration number, optional
	Credits     float64
	Instructors []string
	Alternating bool
	Meetings    []Meeting
	Term        TermSpec

	// Linked is set on the two single-term halves produced by SplitFullYear.
	Linked bool
}

// Validate checks the unit is well formed.
// A meeting that ends at or before its start is kept; it places no slots.
func (u *SchoolUnit) Validate() error {
	if u.Code == "" {
		return ErrEmptyCode
	}
	if !u.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, u.Kind)
	}
	if !u.Term.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTerm, u.Term)
	}
	if u.Credits < 0 {
		return ErrNegativeCredits
	}
	for i, m := range u.Meetings {
		if !m.Term.Valid() {
			return fmt.Errorf("meeting %d: %w: %d", i, ErrInvalidTerm, m.Term)
		}
		if !m.Day.Valid() {
			return fmt.Errorf("meeting %d: %w", i, timegrid.ErrUnknownWeekday)
		}
	}
	return nil
}

// IsFullYear returns true if the unit spans both terms and has not been split.
func (u *SchoolUnit) IsFullYear() bool {
	return u.Term == TermBoth
}

// FirstInstructor returns the first listed instructor, or "".
func (u *SchoolUnit) FirstInstructor() string {
	if len(u.Instructors) == 0 {
		return ""
	}
	return u.Instructors[0]
}

// String identifies the unit for logs, e.g. "COMPSCI 1MD3 core 01 T1".
func (u SchoolUnit) String() string {
	return fmt.Sprintf("%s %s %s %s T%d", u.Department, u.Code, u.Kind, u.Label, u.Term)
}

// SameCourse reports whether a and b belong to the same course offering.
//
// Units from different terms only match when both are halves of a full-year
// unit. Section kind and label are ignored.
func SameCourse(a, b SchoolUnit) bool {
	if a.Term != b.Term && (!a.Linked || !b.Linked) {
		return false
	}
	return a.Name == b.Name && a.Code == b.Code && a.Department == b.Department
}

// UnitsEqual reports whether a and b are the same course and section kind.
func UnitsEqual(a, b SchoolUnit) bool {
	return a.Kind == b.Kind && SameCourse(a, b)
}

// SplitFullYear splits a full-year unit into its term 1 and term 2 halves.
// Each half keeps the meetings held in its term, and is marked Linked.
func SplitFullYear(u SchoolUnit) (first, second SchoolUnit, err error) {
	if !u.IsFullYear() {
		return SchoolUnit{}, SchoolUnit{}, ErrNotFullYear
	}

	first = u.half(timegrid.Term1)
	second = u.half(timegrid.Term2)
	return first, second, nil
}

func (u SchoolUnit) half(term timegrid.Term) SchoolUnit {
	h := u
	h.Term = TermSpec(term)
	h.Linked = true
	h.Instructors = append([]string(nil), u.Instructors...)
	h.Meetings = nil
	for _, m := range u.Meetings {
		if m.Term.Includes(term) {
			h.Meetings = append(h.Meetings, m)
		}
	}
	return h
}
