package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/javiermolinar/ttg/internal/unit"
)

// State errors.
var (
	ErrNoSchool      = errors.New("state has no school")
	ErrBadSelection  = errors.New("invalid selection")
	ErrUnitNotListed = errors.New("unit is not in the catalog")
)

// Selection is the user's pick for one course. Empty section ids mean the
// kind was not picked.
//
// In JSON a selection is the array [department, course, core, tutorial, lab]
// with null for missing sections.
type Selection struct {
	Department string
	Course     string
	Core       string
	Tutorial   string
	Lab        string
}

// Section returns the picked section id of a kind.
func (s Selection) Section(kind unit.SectionKind) string {
	switch kind {
	case unit.KindCore:
		return s.Core
	case unit.KindLab:
		return s.Lab
	case unit.KindTutorial:
		return s.Tutorial
	default:
		return ""
	}
}

func (s *Selection) setSection(kind unit.SectionKind, id string) {
	switch kind {
	case unit.KindCore:
		s.Core = id
	case unit.KindLab:
		s.Lab = id
	case unit.KindTutorial:
		s.Tutorial = id
	}
}

// MarshalJSON writes the array form.
func (s Selection) MarshalJSON() ([]byte, error) {
	fields := []string{s.Department, s.Course, s.Core, s.Tutorial, s.Lab}
	out := make([]*string, len(fields))
	for i := range fields {
		if fields[i] != "" {
			out[i] = &fields[i]
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the array form. Entries may be strings, numbers or null.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSelection, err)
	}
	if len(raw) < 2 || len(raw) > 5 {
		return fmt.Errorf("%w: want 2 to 5 entries, got %d", ErrBadSelection, len(raw))
	}

	fields := make([]string, 5)
	for i, r := range raw {
		v, err := selectorValue(r)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrBadSelection, i, err)
		}
		fields[i] = v
	}
	if fields[0] == "" || fields[1] == "" {
		return fmt.Errorf("%w: department and course are required", ErrBadSelection)
	}

	*s = Selection{
		Department: fields[0],
		Course:     fields[1],
		Core:       fields[2],
		Tutorial:   fields[3],
		Lab:        fields[4],
	}
	return nil
}

func selectorValue(r json.RawMessage) (string, error) {
	r = bytes.TrimSpace(r)
	if bytes.Equal(r, []byte("null")) {
		return "", nil
	}
	var str string
	if err := json.Unmarshal(r, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(r, &num); err != nil {
		return "", err
	}
	return num.String(), nil
}

// Mode is the colour mode saved with a state.
type Mode string

const (
	ModeColor Mode = "color"
	ModeMono  Mode = "mono"
)

// State is a saved timetable: the school and the picks made in it.
type State struct {
	Selectors []Selection `json:"selectors"`
	School    string      `json:"school"`
	Mode      Mode        `json:"type,omitempty"`
}

// ParseState decodes a state document.
func ParseState(r io.Reader) (State, error) {
	var st State
	if err := json.NewDecoder(r).Decode(&st); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}
	if err := st.Validate(); err != nil {
		return State{}, err
	}
	return st, nil
}

// Validate checks the state names a school.
func (s State) Validate() error {
	if s.School == "" {
		return ErrNoSchool
	}
	return nil
}

// Monochrome reports whether the state was saved in monochrome mode.
func (s State) Monochrome() bool {
	return s.Mode == ModeMono
}

// Locate finds the catalog ids of the course and section a unit came from.
func (c *Catalog) Locate(u unit.SchoolUnit) (course, section string, err error) {
	courses, ok := c.courses[u.Department]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnitNotListed, u)
	}

	for _, courseID := range sortedKeys(courses) {
		crs := courses[courseID]
		if crs.Code != u.Code || crs.Name != u.Name || crs.Term != u.Term {
			continue
		}
		sections := crs.sections(u.Kind)
		for _, sectionID := range sortedKeys(sections) {
			s := sections[sectionID]
			if s.Name == u.Label && s.Serial == u.Serial {
				return courseID, sectionID, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnitNotListed, u)
}

// Selections groups units into one selection per course, in first-seen order.
func (c *Catalog) Selections(units []unit.SchoolUnit) ([]Selection, error) {
	var out []Selection
	index := make(map[[2]string]int)
	for _, u := range units {
		course, section, err := c.Locate(u)
		if err != nil {
			return nil, err
		}
		key := [2]string{u.Department, course}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Selection{Department: u.Department, Course: course})
		}
		out[i].setSection(u.Kind, section)
	}
	return out, nil
}

// StateFor builds the state that saves units picked from this catalog.
func (c *Catalog) StateFor(units []unit.SchoolUnit, monochrome bool) (State, error) {
	selectors, err := c.Selections(units)
	if err != nil {
		return State{}, err
	}
	mode := ModeColor
	if monochrome {
		mode = ModeMono
	}
	return State{Selectors: selectors, School: c.ID, Mode: mode}, nil
}

// ResolveState builds the units of every selection in a state.
func (c *Catalog) ResolveState(st State) ([]unit.SchoolUnit, error) {
	if st.School != "" && c.ID != "" && st.School != c.ID {
		return nil, fmt.Errorf("state is for school %q, catalog is %q", st.School, c.ID)
	}
	var units []unit.SchoolUnit
	for i, sel := range st.Selectors {
		us, err := c.Resolve(sel)
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		units = append(units, us...)
	}
	return units, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
