// Package outline reconstructs closed board outlines from drawing entities
// that may contain tiny export gaps. It extracts straight segments from
// curve primitives, detects near-coincident endpoints, and heals small gaps
// with a buffer/union technique, falling back to the original entities when
// healing cannot be trusted.
package outline

import (
	"fmt"
	"math"

	"outline-healer/pkg/geometry"
)

// Tessellation chord counts for curved primitives.
const (
	// ArcChords is the number of chord segments an arc is approximated with.
	ArcChords = 24
	// CircleChords is the number of chord segments a full circle is
	// approximated with.
	CircleChords = 36
)

// Entity is a drawing primitive. The set of implementations is closed:
// Line, Arc, Circle and Polyline. Entities are immutable once constructed;
// reconstruction builds new entities rather than mutating existing ones.
type Entity interface {
	// Kind returns the primitive name ("line", "arc", "circle", "polyline").
	Kind() string

	// tessellate approximates the entity as an ordered point chain.
	// Consecutive points form the entity's segments.
	tessellate() ([]geometry.Point2D, error)

	isEntity()
}

// Tessellate approximates an entity as an ordered point chain; consecutive
// points form the entity's straight segments. It is the sampling used by
// extraction, exposed for collaborators that draw entities as shapes.
func Tessellate(e Entity) ([]geometry.Point2D, error) {
	return e.tessellate()
}

// Line is a straight segment between two points.
type Line struct {
	Start geometry.Point2D
	End   geometry.Point2D
}

func (Line) Kind() string { return "line" }
func (Line) isEntity()    {}

func (l Line) tessellate() ([]geometry.Point2D, error) {
	if !l.Start.IsFinite() || !l.End.IsFinite() {
		return nil, fmt.Errorf("line has non-finite coordinates")
	}
	return []geometry.Point2D{l.Start, l.End}, nil
}

// Arc is a circular arc. Angles are in degrees; the arc sweeps from
// StartAngle towards increasing angles. When EndAngle < StartAngle the end
// is normalized by adding 360 so the sweep is always in the increasing
// direction.
type Arc struct {
	Center     geometry.Point2D
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (Arc) Kind() string { return "arc" }
func (Arc) isEntity()    {}

func (a Arc) tessellate() ([]geometry.Point2D, error) {
	if !a.Center.IsFinite() || math.IsNaN(a.Radius) || math.IsInf(a.Radius, 0) {
		return nil, fmt.Errorf("arc has non-finite geometry")
	}
	if a.Radius <= 0 {
		return nil, fmt.Errorf("arc has non-positive radius %g", a.Radius)
	}

	startAngle := a.StartAngle
	endAngle := a.EndAngle
	if endAngle < startAngle {
		endAngle += 360
	}

	angleStep := (endAngle - startAngle) / float64(ArcChords)
	points := make([]geometry.Point2D, 0, ArcChords+1)
	for i := 0; i <= ArcChords; i++ {
		angle := (startAngle + float64(i)*angleStep) * math.Pi / 180
		points = append(points, geometry.Point2D{
			X: a.Center.X + a.Radius*math.Cos(angle),
			Y: a.Center.Y + a.Radius*math.Sin(angle),
		})
	}
	return points, nil
}

// Circle is a full circle.
type Circle struct {
	Center geometry.Point2D
	Radius float64
}

func (Circle) Kind() string { return "circle" }
func (Circle) isEntity()    {}

func (c Circle) tessellate() ([]geometry.Point2D, error) {
	if !c.Center.IsFinite() || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return nil, fmt.Errorf("circle has non-finite geometry")
	}
	if c.Radius <= 0 {
		return nil, fmt.Errorf("circle has non-positive radius %g", c.Radius)
	}

	points := geometry.GenerateCirclePoints(c.Center.X, c.Center.Y, c.Radius, CircleChords)
	// Close the loop by re-appending the first sample.
	points = append(points, points[0])
	return points, nil
}

// Polyline is an ordered point chain, optionally closed. A closed polyline
// whose stored first and last points differ gains an implicit closing
// segment during tessellation.
type Polyline struct {
	Points []geometry.Point2D
	Closed bool
}

func (Polyline) Kind() string { return "polyline" }
func (Polyline) isEntity()    {}

func (p Polyline) tessellate() ([]geometry.Point2D, error) {
	if len(p.Points) < 2 {
		return nil, fmt.Errorf("polyline has %d points, need at least 2", len(p.Points))
	}
	for _, pt := range p.Points {
		if !pt.IsFinite() {
			return nil, fmt.Errorf("polyline has non-finite coordinates")
		}
	}

	points := make([]geometry.Point2D, len(p.Points), len(p.Points)+1)
	copy(points, p.Points)
	if p.Closed && points[0] != points[len(points)-1] {
		points = append(points, points[0])
	}
	return points, nil
}
