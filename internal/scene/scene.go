// Package scene turns classified spheres into placed scene primitives.
package scene

import (
	"sync"

	"github.com/google/uuid"
	"github.com/raphaelgruber/spheres-go/internal/models"
)

// Offset is added to every sphere center when it is placed.
var Offset = Vec3{X: 1, Y: 1, Z: 1}

// Vec3 is a point or extent in scene space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Primitive is one sphere placed in the scene.
type Primitive struct {
	ID       string       `json:"id" yaml:"id"`
	Position Vec3         `json:"position" yaml:"position"`
	Diameter float64      `json:"diameter" yaml:"diameter"`
	Color    models.Color `json:"color" yaml:"color"`
	Level    int          `json:"level" yaml:"level"`
}

// NewPrimitive builds the primitive for a classified sphere: centered at
// the sphere center plus Offset, uniformly scaled to its diameter.
func NewPrimitive(s models.ClassifiedSphere) Primitive {
	center := Vec3{X: s.Record.X, Y: s.Record.Y, Z: s.Record.Z}
	return Primitive{
		ID:       uuid.NewString(),
		Position: center.Add(Offset),
		Diameter: 2 * s.Record.R,
		Color:    s.Color,
		Level:    s.Record.Level,
	}
}

// Scale returns the per-axis scale of the primitive.
func (p Primitive) Scale() Vec3 {
	return Vec3{X: p.Diameter, Y: p.Diameter, Z: p.Diameter}
}

// Scene collects placed primitives. It is safe for concurrent use.
type Scene struct {
	mu         sync.RWMutex
	primitives []Primitive
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Place creates a primitive for the sphere and appends it to the scene.
func (s *Scene) Place(sphere models.ClassifiedSphere) {
	p := NewPrimitive(sphere)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.primitives = append(s.primitives, p)
}

// Primitives returns a copy of the placed primitives in placement order.
func (s *Scene) Primitives() []Primitive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Primitive, len(s.primitives))
	copy(out, s.primitives)
	return out
}

// Len returns the number of placed primitives.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.primitives)
}

// CountByColor returns how many primitives carry each color.
func (s *Scene) CountByColor() map[models.Color]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Color]int)
	for _, p := range s.primitives {
		counts[p.Color]++
	}
	return counts
}
