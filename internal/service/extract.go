// Package service provides the sphere import pipeline.
package service

import (
	"math"

	"github.com/raphaelgruber/spheres-go/internal/jsontree"
	"github.com/raphaelgruber/spheres-go/internal/models"
)

// Payload keys for sphere objects. Matching is case-sensitive.
const (
	KeyX     = "X"
	KeyY     = "Y"
	KeyZ     = "Z"
	KeyR     = "R"
	KeyLevel = "L"
)

// ExtractSpheres walks a decoded payload and returns one record per object
// element of the root array, in input order.
//
// A root that is not an array yields no records. Elements that are not
// objects are skipped. Unknown keys are ignored, and keys that are missing
// or hold a non-number value leave the field at zero. Every member is
// visited, so a duplicated key takes its last numeric value.
func ExtractSpheres(root *jsontree.Node) []models.SphereRecord {
	elems, err := root.Elements()
	if err != nil {
		return []models.SphereRecord{}
	}

	records := make([]models.SphereRecord, 0, len(elems))
	for _, elem := range elems {
		members, err := elem.Members()
		if err != nil {
			continue
		}
		records = append(records, extractRecord(members))
	}
	return records
}

func extractRecord(members []jsontree.Member) models.SphereRecord {
	var rec models.SphereRecord
	for _, m := range members {
		v, err := m.Value.Number()
		if err != nil {
			continue
		}
		switch m.Key {
		case KeyX:
			rec.X = v
		case KeyY:
			rec.Y = v
		case KeyZ:
			rec.Z = v
		case KeyR:
			rec.R = v
		case KeyLevel:
			rec.Level = LevelFromNumber(v)
		}
	}
	return rec
}

// LevelFromNumber converts a decoded number into a level.
// The value is truncated toward zero; NaN becomes 0 and values outside the
// 32-bit range clamp to its bounds.
func LevelFromNumber(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Trunc(v))
}
