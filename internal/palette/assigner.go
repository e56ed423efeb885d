package palette

import "github.com/javiermolinar/ttg/internal/unit"

// Binding is a wheel colour and the course holding it.
type Binding struct {
	Color string
	Unit  unit.SchoolUnit
}

// Assigner hands out wheel colours per course.
//
// A course keeps its colour until Release frees it. When every wheel colour
// is held, new courses get the palette default, which nobody owns.
// Assigner is not safe for concurrent use.
type Assigner struct {
	palette *Palette
	owners  []*unit.SchoolUnit // parallel to palette.Wheel, nil when free
	mono    bool
}

// NewAssigner returns an assigner with every wheel colour free.
func NewAssigner(p *Palette) *Assigner {
	return &Assigner{
		palette: p,
		owners:  make([]*unit.SchoolUnit, len(p.Wheel)),
	}
}

// ColorFor returns the colour of u's course, binding the first free wheel
// colour if the course has none yet. In monochrome mode it always returns
// the default colour and binds nothing.
func (a *Assigner) ColorFor(u unit.SchoolUnit) string {
	if a.mono {
		return a.palette.Default
	}

	u = courseProbe(u)
	free := -1
	for i, owner := range a.owners {
		if owner == nil {
			if free < 0 {
				free = i
			}
			continue
		}
		if unit.SameCourse(*owner, u) {
			return a.palette.Wheel[i]
		}
	}

	if free < 0 {
		return a.palette.Default
	}
	a.owners[free] = &u
	return a.palette.Wheel[free]
}

// Release frees the colour held by u's course. It reports whether one was held.
func (a *Assigner) Release(u unit.SchoolUnit) bool {
	u = courseProbe(u)
	for i, owner := range a.owners {
		if owner != nil && unit.SameCourse(*owner, u) {
			a.owners[i] = nil
			return true
		}
	}
	return false
}

// SetMonochrome switches monochrome mode.
func (a *Assigner) SetMonochrome(enabled bool) {
	a.mono = enabled
}

// Monochrome reports whether monochrome mode is on.
func (a *Assigner) Monochrome() bool {
	return a.mono
}

// Default returns the overflow course colour.
func (a *Assigner) Default() string {
	return a.palette.Default
}

// Conflict returns the true-conflict colour.
func (a *Assigner) Conflict() string {
	return a.palette.Conflict
}

// Palette returns the palette in use.
func (a *Assigner) Palette() *Palette {
	return a.palette
}

// Bound returns the held colours in wheel order.
func (a *Assigner) Bound() []Binding {
	var out []Binding
	for i, owner := range a.owners {
		if owner != nil {
			out = append(out, Binding{Color: a.palette.Wheel[i], Unit: *owner})
		}
	}
	return out
}

// Reset frees every wheel colour.
func (a *Assigner) Reset() {
	clear(a.owners)
}

// courseProbe maps a full-year unit to its first half, which is what the
// schedule stores and what course comparisons see.
func courseProbe(u unit.SchoolUnit) unit.SchoolUnit {
	if !u.IsFullYear() {
		return u
	}
	first, _, err := unit.SplitFullYear(u)
	if err != nil {
		return u
	}
	return first
}
