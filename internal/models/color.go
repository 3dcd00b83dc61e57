package models

import (
	"fmt"
	"strings"
)

// Color is the symbolic display color of a sphere.
type Color int

// White is the zero value so unclassified spheres default to it.
const (
	White Color = iota
	Red
	Yellow
	Green
	Cyan
	Magenta
	Blue
	Grey
)

var colorNames = map[Color]string{
	White:   "white",
	Red:     "red",
	Yellow:  "yellow",
	Green:   "green",
	Cyan:    "cyan",
	Magenta: "magenta",
	Blue:    "blue",
	Grey:    "grey",
}

// Hex values follow the common engine palette (grey is 50%).
var colorHex = map[Color]string{
	White:   "#FFFFFF",
	Red:     "#FF0000",
	Yellow:  "#FFEB04",
	Green:   "#00FF00",
	Cyan:    "#00FFFF",
	Magenta: "#FF00FF",
	Blue:    "#0000FF",
	Grey:    "#7F7F7F",
}

// levelColors maps nesting levels to colors. Levels not listed are white.
var levelColors = map[int]Color{
	1: Red,
	2: Yellow,
	3: Green,
	4: Cyan,
	5: Magenta,
	6: Blue,
	7: Grey,
}

// ColorForLevel returns the display color for a nesting level.
// Any level outside 1..7 maps to White.
func ColorForLevel(level int) Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return White
}

// String returns the symbolic color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Hex returns the RGB hex code of the color, e.g. "#FF0000".
func (c Color) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return colorHex[White]
}

// ParseColor converts a symbolic color name back into a Color.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "gray" {
		name = "grey"
	}
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return White, fmt.Errorf("unknown color: %q", s)
}

// MarshalText encodes the color by name (used by JSON and YAML output).
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
