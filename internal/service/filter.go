package service

import "github.com/raphaelgruber/spheres-go/internal/models"

const (
	// DefaultRadius is the radius of the outer bounding sphere.
	DefaultRadius = 0.8

	// VisibilityTolerance scales the boundary radius when testing visibility.
	VisibilityTolerance = 0.99
)

// Boundary is the outer bounding sphere, centered at the origin.
type Boundary struct {
	Radius float64
}

// DefaultBoundary returns the boundary with DefaultRadius.
func DefaultBoundary() Boundary {
	return Boundary{Radius: DefaultRadius}
}

// Visible reports whether a sphere reaches close enough to the boundary to
// be displayed. Spheres whose surface stays inside Radius*VisibilityTolerance
// are assumed occluded.
func (b Boundary) Visible(s models.SphereRecord) bool {
	return s.Distance()+s.R > b.Radius*VisibilityTolerance
}

// Partition splits records into displayed and filtered sets.
type Partition struct {
	Displayed []models.SphereRecord
	Filtered  []models.SphereRecord
}

// Report returns the counts of the partition.
func (p Partition) Report() models.ImportReport {
	return models.ImportReport{
		Displayed: len(p.Displayed),
		Filtered:  len(p.Filtered),
	}
}

// FilterSpheres partitions records by visibility, preserving input order
// within each set.
func FilterSpheres(b Boundary, records []models.SphereRecord) Partition {
	p := Partition{
		Displayed: []models.SphereRecord{},
		Filtered:  []models.SphereRecord{},
	}
	for _, r := range records {
		if b.Visible(r) {
			p.Displayed = append(p.Displayed, r)
		} else {
			p.Filtered = append(p.Filtered, r)
		}
	}
	return p
}
