// Package palette assigns each course on a timetable a stable colour.
package palette

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed palettes/*.toml
var embeddedPalettes embed.FS

// DefaultName is the palette used when none is configured.
const DefaultName = "classic"

// ErrEmptyWheel is returned for a palette without any course colours.
var ErrEmptyWheel = errors.New("palette has no course colours")

// Palette is a named colour wheel plus the two fixed colours.
type Palette struct {
	Name     string   `toml:"name"`
	Default  string   `toml:"default"`  // overflow and monochrome course colour
	Conflict string   `toml:"conflict"` // background of true conflicts
	Wheel    []string `toml:"wheel"`    // course colours, handed out in order
}

// Load loads a palette by name from the embedded files.
// Unknown names fall back to classic.
func Load(name string) (*Palette, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedPalettes.ReadFile("palettes/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading palette %q: %w", name, err)
	}

	var p Palette
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing palette %q: %w", name, err)
	}
	if len(p.Wheel) == 0 {
		return nil, fmt.Errorf("palette %q: %w", name, ErrEmptyWheel)
	}
	return &p, nil
}

// Available returns the names of the embedded palettes.
func Available() []string {
	return []string{"classic", "night"}
}

// IsAvailable reports whether a palette name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, p := range Available() {
		if p == name {
			return true
		}
	}
	return false
}
