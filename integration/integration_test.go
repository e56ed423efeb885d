package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/palette"
	"github.com/javiermolinar/ttg/internal/render"
	"github.com/javiermolinar/ttg/internal/store"
	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/timetable"
	"github.com/javiermolinar/ttg/internal/unit"
)

const clashCatalog = `{
  "id": "test",
  "name": "Test School",
  "section_prefixes": {"core": "C", "lab": "L", "tutorial": "T"},
  "departments": {"Physics": "PHYS"},
  "courses": {
    "PHYS": {
      "a": {
        "code": "1A03", "name": "Mechanics", "term": 1, "credits": 3,
        "core": {"0": {"name": "01", "times": [{"term": 1, "day": "mo", "start": "09:00", "end": "10:00"}]}},
        "lab": {"0": {"name": "01", "alternating": true,
          "times": [{"term": 1, "day": "tu", "start": "13:00", "end": "15:00", "location": "ABB 102"}]}},
        "tutorial": {"0": {"name": "01", "alternating": true,
          "times": [{"term": 1, "day": "tu", "start": "14:00", "end": "15:00"}]}}
      },
      "b": {
        "code": "1B03", "name": "Waves", "term": 1, "credits": 3,
        "core": {"0": {"name": "01", "times": [{"term": 1, "day": "mo", "start": "09:00", "end": "10:00"}]}}
      }
    }
  }
}`

// openStore creates a fresh store for each test with automatic cleanup.
func openStore(t *testing.T, path string, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.New(path, opts...)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("../internal/catalog/testdata/school.json")
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return cat
}

func newSession(t *testing.T, cat *catalog.Catalog) *timetable.Session {
	t.Helper()
	p, err := palette.Load("classic")
	if err != nil {
		t.Fatalf("failed to load palette: %v", err)
	}
	return timetable.New(p, timetable.WithPrefixes(cat.PrefixMap()))
}

// pick adds one catalog section to the session.
func pick(t *testing.T, cat *catalog.Catalog, s *timetable.Session, dep, course string, kind unit.SectionKind, section string) {
	t.Helper()
	u, err := cat.Unit(dep, course, kind, section)
	if err != nil {
		t.Fatalf("failed to build unit %s/%s %s %s: %v", dep, course, kind, section, err)
	}
	s.Pick(u)
}

func TestSaveAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	cat := loadCatalog(t)
	dbPath := filepath.Join(t.TempDir(), "ttg.db")

	original := newSession(t, cat)
	pick(t, cat, original, "COMPSCI", "0", unit.KindCore, "0")
	pick(t, cat, original, "COMPSCI", "0", unit.KindLab, "0")
	pick(t, cat, original, "COMPSCI", "1", unit.KindCore, "0")
	pick(t, cat, original, "COMPSCI", "1", unit.KindTutorial, "0")
	pick(t, cat, original, "MATH", "0", unit.KindCore, "0")
	want := original.Render()

	st, err := cat.StateFor(original.Units(), false)
	if err != nil {
		t.Fatalf("StateFor: %v", err)
	}
	id, err := openStore(t, dbPath).Save(ctx, st)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// a second process opening the same database
	loaded, err := openStore(t, dbPath).Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	units, err := cat.ResolveState(loaded)
	if err != nil {
		t.Fatalf("ResolveState: %v", err)
	}
	restored := newSession(t, cat)
	restored.Restore(units, loaded.Monochrome())
	got := restored.Render()

	if len(got.Cells) != len(want.Cells) {
		t.Fatalf("restored %d cells, want %d", len(got.Cells), len(want.Cells))
	}
	for i := range want.Cells {
		w, g := want.Cells[i], got.Cells[i]
		if w.Key != g.Key || w.Span != g.Span || w.Color != g.Color || w.Kind != g.Kind {
			t.Errorf("cell %d = %+v, want %+v", i, g, w)
		}
	}
	if got.Terms != want.Terms {
		t.Errorf("totals = %+v, want %+v", got.Terms, want.Terms)
	}
	if !got.Totals(timegrid.Term2).Saturday {
		t.Error("the 2C03 tutorial should put term 2 on Saturday")
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cat := loadCatalog(t)
	s := openStore(t, filepath.Join(t.TempDir(), "ttg.db"))

	session := newSession(t, cat)
	pick(t, cat, session, "COMPSCI", "0", unit.KindCore, "1")
	st, err := cat.StateFor(session.Units(), true)
	if err != nil {
		t.Fatalf("StateFor: %v", err)
	}

	first, err := s.Save(ctx, st)
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := s.Save(ctx, st)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first != second {
		t.Fatalf("ids = %q, %q, want the same id", first, second)
	}

	loaded, err := s.Load(ctx, first)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Monochrome() {
		t.Error("monochrome mode was not kept")
	}
}

func TestConflictAndAlternatingCells(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(clashCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	session := newSession(t, cat)
	pick(t, cat, session, "PHYS", "a", unit.KindCore, "0")
	pick(t, cat, session, "PHYS", "a", unit.KindLab, "0")
	pick(t, cat, session, "PHYS", "a", unit.KindTutorial, "0")
	pick(t, cat, session, "PHYS", "b", unit.KindCore, "0")

	gv := session.Render()

	clash, ok := gv.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Monday, 9, 0))
	if !ok {
		t.Fatal("no cell on Monday 09:00")
	}
	if clash.Kind != render.Conflict || len(clash.Entries) != 2 {
		t.Errorf("Monday 09:00 = %s with %d entries, want conflict with 2", clash.Kind, len(clash.Entries))
	}

	labOnly, ok := gv.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Tuesday, 13, 0))
	if !ok || labOnly.Kind != render.Single || labOnly.Span != 2 {
		t.Errorf("Tuesday 13:00 = %+v, want a single cell spanning 2 slots", labOnly)
	}

	shared, ok := gv.CellAt(timegrid.KeyFor(timegrid.Term1, timegrid.Tuesday, 14, 0))
	if !ok {
		t.Fatal("no cell on Tuesday 14:00")
	}
	if shared.Kind != render.Alternating || shared.Span != 2 {
		t.Errorf("Tuesday 14:00 = %s span %d, want alternating span 2", shared.Kind, shared.Span)
	}

	totals := gv.Totals(timegrid.Term1)
	if totals.Credits != 6 {
		t.Errorf("credits = %v, want 6", totals.Credits)
	}
}

func TestLastAccessIsTimezoneIndependent(t *testing.T) {
	ctx := context.Background()
	cat := loadCatalog(t)
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 1, 5, 23, 30, 0, 0, est)

	s := openStore(t, filepath.Join(t.TempDir(), "ttg.db"), store.WithClock(func() time.Time { return now }))

	session := newSession(t, cat)
	pick(t, cat, session, "MATH", "0", unit.KindCore, "0")
	st, err := cat.StateFor(session.Units(), false)
	if err != nil {
		t.Fatalf("StateFor: %v", err)
	}
	id, err := s.Save(ctx, st)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.LastAccess(ctx, id)
	if err != nil {
		t.Fatalf("LastAccess: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("last access = %v, want %v", got, now)
	}

	// reaping at the same instant written in UTC keeps the document
	n, err := s.Reap(ctx, now.UTC())
	if err != nil {
		t.Fatalf("Reap: %v", err)
	}
	if n != 0 {
		t.Fatalf("reaped %d, want 0", n)
	}
}
