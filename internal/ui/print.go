package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/render"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/timetable"
	"github.com/javiermolinar/ttg/internal/tui/view"
)

const (
	minPrintColWidth = 8
	maxPrintColWidth = 20
)

// PrintOpts controls plain timetable output.
type PrintOpts struct {
	Term  timegrid.Term // 0 prints both terms
	Width int           // terminal width
}

// printColWidth fits six day columns into width.
func printColWidth(width int) int {
	w := (width-9)/timegrid.DaysPerWeek - 3
	if w < minPrintColWidth {
		return minPrintColWidth
	}
	if w > maxPrintColWidth {
		return maxPrintColWidth
	}
	return w
}

// PrintTimetable writes the grid of each requested term followed by the
// picked sections.
func PrintTimetable(w io.Writer, cat *catalog.Catalog, session *timetable.Session, opts PrintOpts) {
	gv := session.Render()
	termOpts := view.TermOptions{ColWidth: printColWidth(opts.Width)}

	for _, term := range []timegrid.Term{timegrid.Term1, timegrid.Term2} {
		if opts.Term != 0 && term != opts.Term {
			continue
		}
		fmt.Fprintf(w, "=== %s ===\n", formatHeader(fmt.Sprintf("%s · Term %d", schoolName(cat), term)))
		fmt.Fprintln(w, view.RenderTerm(gv, term, termOpts))
		if n := conflictSlots(gv, term); n > 0 {
			fmt.Fprintln(w, formatConflict(fmt.Sprintf("%d clashing slot(s)", n)))
		}
		fmt.Fprintln(w)
	}

	units := session.Units()
	if len(units) == 0 {
		fmt.Fprintln(w, formatMuted("No sections picked."))
		return
	}
	fmt.Fprintln(w, formatHeader("Sections"))
	for _, u := range units {
		line := fmt.Sprintf("  %s %s %s%s", u.Department, formatCode(u.Code), cat.Prefix(u.Kind), u.Label)
		if u.Name != "" {
			line += "  " + u.Name
		}
		if len(u.Instructors) > 0 {
			line += "  " + formatMuted(strings.Join(u.Instructors, ", "))
		}
		fmt.Fprintln(w, line)
	}
}

func schoolName(cat *catalog.Catalog) string {
	if cat.Name != "" {
		return cat.Name
	}
	return cat.ID
}

func conflictSlots(gv render.GridView, term timegrid.Term) int {
	n := 0
	for _, c := range gv.CellsForTerm(term) {
		if c.Kind == render.Conflict {
			n += c.Span
		}
	}
	return n
}
