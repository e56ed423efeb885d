package tui

import (
	"strings"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/timetable"
	"github.com/javiermolinar/ttg/internal/tui/input"
	"github.com/javiermolinar/ttg/internal/unit"
)

// pickerLevel is the depth of the catalog browser.
type pickerLevel int

const (
	levelDepartments pickerLevel = iota
	levelCourses
	levelSections
)

// pickerItem is one row of the browser.
type pickerItem struct {
	label  string
	id     string           // department code, course id or section id
	kind   unit.SectionKind // set on section rows
	header bool             // section kind headings are not selectable
	picked bool

	keywords []string // extra filter terms
}

// picker browses departments, then courses, then sections.
type picker struct {
	level      pickerLevel
	department string // department code
	deptName   string
	course     string // course id
	courseName string

	items  []pickerItem
	cursor int

	// cursor positions to restore when going back up
	parentCursor []int
}

// load rebuilds the rows of the current level, keeping the cursor in range.
func (p *picker) load(cat *catalog.Catalog, session *timetable.Session, query string) error {
	var (
		items []pickerItem
		err   error
	)
	switch p.level {
	case levelDepartments:
		items = departmentItems(cat)
	case levelCourses:
		items, err = courseItems(cat, p.department)
	case levelSections:
		items, err = sectionItems(cat, session, p.department, p.course)
	}
	if err != nil {
		return err
	}

	p.items = filterItems(items, query)
	p.clampCursor()
	return nil
}

func (p *picker) clampCursor() {
	if p.cursor >= len(p.items) {
		p.cursor = len(p.items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if len(p.items) > 0 && p.items[p.cursor].header {
		p.move(1)
	}
}

// move steps the cursor by delta rows, skipping headings.
func (p *picker) move(delta int) {
	if len(p.items) == 0 {
		return
	}
	next := p.cursor
	for {
		next += delta
		if next < 0 || next >= len(p.items) {
			return
		}
		if !p.items[next].header {
			p.cursor = next
			return
		}
	}
}

// selected returns the row under the cursor.
func (p *picker) selected() (pickerItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return pickerItem{}, false
	}
	item := p.items[p.cursor]
	if item.header {
		return pickerItem{}, false
	}
	return item, true
}

// enter opens the row under the cursor. It reports false on the last level.
func (p *picker) enter() bool {
	item, ok := p.selected()
	if !ok {
		return false
	}
	switch p.level {
	case levelDepartments:
		p.department, p.deptName = item.id, item.label
	case levelCourses:
		p.course, p.courseName = item.id, item.label
	default:
		return false
	}
	p.parentCursor = append(p.parentCursor, p.cursor)
	p.level++
	p.cursor = 0
	return true
}

// back returns to the parent level. It reports false at the top.
func (p *picker) back() bool {
	if p.level == levelDepartments {
		return false
	}
	switch p.level {
	case levelSections:
		p.course, p.courseName = "", ""
	case levelCourses:
		p.department, p.deptName = "", ""
	}
	p.level--
	p.cursor = 0
	if n := len(p.parentCursor); n > 0 {
		p.cursor = p.parentCursor[n-1]
		p.parentCursor = p.parentCursor[:n-1]
	}
	return true
}

// crumb is the breadcrumb of the current level.
func (p *picker) crumb() string {
	parts := []string{"Departments"}
	if p.level >= levelCourses {
		parts = append(parts, p.deptName)
	}
	if p.level >= levelSections {
		parts = append(parts, p.courseName)
	}
	return strings.Join(parts, " › ")
}

func departmentItems(cat *catalog.Catalog) []pickerItem {
	depts := cat.Departments()
	items := make([]pickerItem, 0, len(depts))
	for _, d := range depts {
		items = append(items, pickerItem{label: d.Name, id: d.Code, keywords: []string{d.Code}})
	}
	return items
}

func courseItems(cat *catalog.Catalog, department string) ([]pickerItem, error) {
	courses, err := cat.Courses(department)
	if err != nil {
		return nil, err
	}
	items := make([]pickerItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, pickerItem{label: c.Label(cat.ShowTerm), id: c.ID})
	}
	return items, nil
}

// sectionItems lists the sections of a course grouped under a heading per kind.
func sectionItems(cat *catalog.Catalog, session *timetable.Session, department, course string) ([]pickerItem, error) {
	crs, err := cat.Course(department, course)
	if err != nil {
		return nil, err
	}

	var items []pickerItem
	for _, kind := range crs.Kinds() {
		sections, err := cat.Sections(department, course, kind)
		if err != nil {
			return nil, err
		}
		items = append(items, pickerItem{label: cat.KindName(kind), kind: kind, header: true})
		for _, s := range sections {
			item := pickerItem{
				label: sectionLabel(cat, kind, s),
				id:    s.ID,
				kind:  kind,
			}
			if u, err := cat.Unit(department, course, kind, s.ID); err == nil {
				item.picked = session.Has(u)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// sectionLabel is e.g. "C01 Ada Lovelace".
func sectionLabel(cat *catalog.Catalog, kind unit.SectionKind, s catalog.SectionEntry) string {
	label := cat.Prefix(kind) + s.Name
	if len(s.Supervisors) > 0 {
		label += " " + s.Supervisors[0]
	}
	return label
}

// filterItems keeps the rows matching query, and the headings that still
// have a matching row beneath them.
func filterItems(items []pickerItem, query string) []pickerItem {
	if strings.TrimSpace(query) == "" {
		return items
	}

	out := make([]pickerItem, 0, len(items))
	var heading *pickerItem
	for _, it := range items {
		if it.header {
			h := it
			heading = &h
			continue
		}
		if !input.Matches(query, input.FilterItem{Label: it.label, Keywords: it.keywords}) {
			continue
		}
		if heading != nil {
			out = append(out, *heading)
			heading = nil
		}
		out = append(out, it)
	}
	return out
}
