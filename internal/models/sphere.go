// Package models defines data structures for the sphere importer.
package models

import (
	"fmt"
	"math"
)

// SphereRecord is one sphere extracted from the sphere payload.
// Fields missing from the payload stay at zero.
type SphereRecord struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	R     float64 `json:"r" yaml:"r"`
	Level int     `json:"level" yaml:"level"`
}

// Distance returns the Euclidean distance from the sphere center to the origin.
func (s SphereRecord) Distance() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// ClassifiedSphere is a displayed sphere with its level color.
type ClassifiedSphere struct {
	Record SphereRecord `json:"record" yaml:"record"`
	Color  Color        `json:"color" yaml:"color"`
}

// Classify pairs a record with the color for its level.
func Classify(r SphereRecord) ClassifiedSphere {
	return ClassifiedSphere{Record: r, Color: ColorForLevel(r.Level)}
}

// ImportReport counts the outcome of one import.
type ImportReport struct {
	Displayed int `json:"displayed" yaml:"displayed"`
	Filtered  int `json:"filtered" yaml:"filtered"`
}

// Total returns the number of sphere objects considered.
func (r ImportReport) Total() int {
	return r.Displayed + r.Filtered
}

// String renders the report as a human-readable line.
func (r ImportReport) String() string {
	return fmt.Sprintf("Displayed %d spheres, filtered %d others.", r.Displayed, r.Filtered)
}

// ImportResult is the output of a successful import.
type ImportResult struct {
	Report  ImportReport       `json:"report" yaml:"report"`
	Spheres []ClassifiedSphere `json:"spheres" yaml:"spheres"`
}
