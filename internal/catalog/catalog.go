// Package catalog loads a school's departments, courses and sections and
// turns user selections into schedulable units.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/javiermolinar/ttg/internal/unit"
)

// Lookup errors.
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrNoSections         = errors.New("selection picks no sections")
)

// Catalog is one school's offering.
type Catalog struct {
	ID       string
	Name     string
	ShowTerm bool
	Prefixes map[unit.SectionKind]string
	Names    map[unit.SectionKind]string

	departments map[string]string             // display name -> code
	courses     map[string]map[string]*Course // code -> course id -> course
}

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	ShowTerm    bool                          `json:"show_term"`
	Prefixes    map[unit.SectionKind]string   `json:"section_prefixes"`
	Names       map[unit.SectionKind]string   `json:"section_names"`
	Departments map[string]string             `json:"departments"`
	Courses     map[string]map[string]*Course `json:"courses"`
}

// Course is one course with its sections grouped by kind.
type Course struct {
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Term     unit.TermSpec       `json:"term"`
	Credits  float64             `json:"credits"`
	Core     map[string]*Section `json:"core,omitempty"`
	Lab      map[string]*Section `json:"lab,omitempty"`
	Tutorial map[string]*Section `json:"tutorial,omitempty"`
}

// Section is one section as listed in the catalog.
type Section struct {
	Name        string   `json:"name"`
	Serial      string   `json:"serial,omitempty"`
	Supervisors []string `json:"supervisors,omitempty"`
	Alternating bool     `json:"alternating,omitempty"`
	Times       []Time   `json:"times"`
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		ID:          f.ID,
		Name:        f.Name,
		ShowTerm:    f.ShowTerm,
		Prefixes:    f.Prefixes,
		Names:       f.Names,
		departments: f.Departments,
		courses:     f.Courses,
	}
	if c.departments == nil {
		c.departments = make(map[string]string)
	}
	if c.courses == nil {
		c.courses = make(map[string]map[string]*Course)
	}
	return c, nil
}

// Prefix returns the label prefix of a section kind, e.g. "C" for core.
func (c *Catalog) Prefix(kind unit.SectionKind) string {
	if p, ok := c.Prefixes[kind]; ok {
		return p
	}
	if kind == "" {
		return ""
	}
	return strings.ToUpper(string(kind[:1]))
}

// KindName returns the display name of a section kind, e.g. "Lab".
func (c *Catalog) KindName(kind unit.SectionKind) string {
	if n, ok := c.Names[kind]; ok && n != "" {
		return n
	}
	if kind == "" {
		return ""
	}
	return strings.ToUpper(string(kind[:1])) + string(kind[1:])
}

// PrefixMap returns the prefixes of every kind.
func (c *Catalog) PrefixMap() map[unit.SectionKind]string {
	out := make(map[unit.SectionKind]string, 3)
	for _, k := range unit.Kinds() {
		out[k] = c.Prefix(k)
	}
	return out
}

// Department is a department name and code.
type Department struct {
	Name string
	Code string
}

// Departments returns the departments sorted by name.
func (c *Catalog) Departments() []Department {
	out := make([]Department, 0, len(c.departments))
	for name, code := range c.departments {
		out = append(out, Department{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CourseEntry is a course with its catalog id.
type CourseEntry struct {
	ID string
	*Course
}

// Label is the course as shown in pickers, e.g. "1MD3 Intro T1".
func (e CourseEntry) Label(showTerm bool) string {
	label := e.Code
	if e.Name != "" {
		label += " " + e.Name
	}
	if showTerm {
		label += fmt.Sprintf(" T%d", e.Term)
	}
	return label
}

// Courses returns the courses of a department sorted by code.
func (c *Catalog) Courses(department string) ([]CourseEntry, error) {
	courses, ok := c.courses[department]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDepartmentNotFound, department)
	}
	out := make([]CourseEntry, 0, len(courses))
	for id, course := range courses {
		out = append(out, CourseEntry{ID: id, Course: course})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Course looks up one course.
func (c *Catalog) Course(department, id string) (*Course, error) {
	courses, ok := c.courses[department]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDepartmentNotFound, department)
	}
	course, ok := courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrCourseNotFound, department, id)
	}
	return course, nil
}

// SectionEntry is a section with its catalog id.
type SectionEntry struct {
	ID string
	*Section
}

// Sections returns the sections of one kind, sorted by section name.
func (c *Catalog) Sections(department, course string, kind unit.SectionKind) ([]SectionEntry, error) {
	crs, err := c.Course(department, course)
	if err != nil {
		return nil, err
	}
	sections := crs.sections(kind)
	out := make([]SectionEntry, 0, len(sections))
	for id, s := range sections {
		out = append(out, SectionEntry{ID: id, Section: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Kinds returns the section kinds the course offers, in catalog order.
func (crs *Course) Kinds() []unit.SectionKind {
	var kinds []unit.SectionKind
	for _, k := range unit.Kinds() {
		if len(crs.sections(k)) > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (crs *Course) sections(kind unit.SectionKind) map[string]*Section {
	switch kind {
	case unit.KindCore:
		return crs.Core
	case unit.KindLab:
		return crs.Lab
	case unit.KindTutorial:
		return crs.Tutorial
	default:
		return nil
	}
}

// Unit builds the schedulable unit for one section of a course.
func (c *Catalog) Unit(department, course string, kind unit.SectionKind, section string) (unit.SchoolUnit, error) {
	crs, err := c.Course(department, course)
	if err != nil {
		return unit.SchoolUnit{}, err
	}
	s, ok := crs.sections(kind)[section]
	if !ok {
		return unit.SchoolUnit{}, fmt.Errorf("%w: %s/%s %s %s", ErrSectionNotFound, department, course, kind, section)
	}

	u := unit.SchoolUnit{
		Department:  department,
		Code:        crs.Code,
		Name:        crs.Name,
		Kind:        kind,
		Label:       s.Name,
		Serial:      s.Serial,
		Credits:     crs.Credits,
		Instructors: slices.Clone(s.Supervisors),
		Alternating: s.Alternating,
		Term:        crs.Term,
	}
	for _, t := range s.Times {
		if t.Unscheduled {
			continue
		}
		u.Meetings = append(u.Meetings, t.Meeting())
	}
	if err := u.Validate(); err != nil {
		return unit.SchoolUnit{}, fmt.Errorf("section %s/%s %s %s: %w", department, course, kind, section, err)
	}
	return u, nil
}

// Resolve builds the units of a selection in core, lab, tutorial order.
func (c *Catalog) Resolve(sel Selection) ([]unit.SchoolUnit, error) {
	if _, err := c.Course(sel.Department, sel.Course); err != nil {
		return nil, err
	}

	var units []unit.SchoolUnit
	for _, pick := range []struct {
		kind unit.SectionKind
		id   string
	}{
		{unit.KindCore, sel.Core},
		{unit.KindLab, sel.Lab},
		{unit.KindTutorial, sel.Tutorial},
	} {
		if pick.id == "" {
			continue
		}
		u, err := c.Unit(sel.Department, sel.Course, pick.kind, pick.id)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoSections, sel.Department, sel.Course)
	}
	return units, nil
}
