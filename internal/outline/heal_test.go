package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outline-healer/pkg/geometry"
)

// gappedSquare returns four lines forming a square of the given size at
// the given origin, with a small vertical gap at the origin corner.
func gappedSquare(origin geometry.Point2D, size, gap float64) []Entity {
	x, y := origin.X, origin.Y
	return []Entity{
		Line{Start: geometry.Point2D{X: x, Y: y}, End: geometry.Point2D{X: x + size, Y: y}},
		Line{Start: geometry.Point2D{X: x + size, Y: y}, End: geometry.Point2D{X: x + size, Y: y + size}},
		Line{Start: geometry.Point2D{X: x + size, Y: y + size}, End: geometry.Point2D{X: x, Y: y + size}},
		Line{Start: geometry.Point2D{X: x, Y: y + size}, End: geometry.Point2D{X: x, Y: y + gap}},
	}
}

func TestHealClosesSmallGap(t *testing.T) {
	segments := Extract(gappedSquare(geometry.Point2D{}, 10, 0.0004)).Segments
	require.Equal(t, 1, FindGaps(segments, 0.001).Count())

	polygons, ok := Heal(segments, 0.001)
	require.True(t, ok, "healing should close a 0.0004mm gap")
	require.Len(t, polygons, 1)

	poly := polygons[0]
	require.Len(t, poly.Holes, 1)

	// The healed outline is a thin band around the original square: the
	// exterior sits just outside the 10x10 outline, the hole just inside.
	assert.InDelta(t, 100, poly.Exterior.Area(), 0.5)
	assert.InDelta(t, 100, poly.Holes[0].Area(), 0.5)
	assert.Greater(t, poly.Exterior.Area(), poly.Holes[0].Area())

	// The square's center is enclosed by both rings; a point on the
	// original outline falls between them.
	center := geometry.Point2D{X: 5, Y: 5}
	assert.True(t, geometry.PointInPolygon(center, poly.Exterior))
	assert.True(t, geometry.PointInPolygon(center, poly.Holes[0]))

	onOutline := geometry.Point2D{X: 0, Y: 5}
	assert.True(t, geometry.PointInPolygon(onOutline, poly.Exterior))
	assert.False(t, geometry.PointInPolygon(onOutline, poly.Holes[0]))
}

func TestHealOpenChainFormsNoRing(t *testing.T) {
	// Two open lines cannot form a closed ring: the buffered union is a
	// single capsule outline, which is not healed geometry.
	segments := Extract([]Entity{
		Line{Start: geometry.Point2D{X: 0, Y: 0}, End: geometry.Point2D{X: 1, Y: 0}},
		Line{Start: geometry.Point2D{X: 1, Y: 0.0005}, End: geometry.Point2D{X: 1, Y: 1}},
	}).Segments

	polygons, ok := Heal(segments, 0.001)
	assert.False(t, ok)
	assert.Empty(t, polygons)
}

func TestHealSortsExteriorsByAreaDescending(t *testing.T) {
	entities := append(
		gappedSquare(geometry.Point2D{X: 0, Y: 0}, 5, 0.0004),
		gappedSquare(geometry.Point2D{X: 20, Y: 0}, 10, 0.0004)...,
	)
	segments := Extract(entities).Segments

	polygons, ok := Heal(segments, 0.001)
	require.True(t, ok)
	require.Len(t, polygons, 2)

	// Largest shape first, regardless of input order.
	assert.InDelta(t, 100, polygons[0].Exterior.Area(), 0.5)
	assert.InDelta(t, 25, polygons[1].Exterior.Area(), 0.5)
}

func TestHealBufferCapPreventsFusing(t *testing.T) {
	// The gap is within the user tolerance but beyond what the capped
	// buffer can bridge, so no ring forms and the caller must revert.
	segments := Extract(gappedSquare(geometry.Point2D{}, 10, 0.002)).Segments
	require.Equal(t, 1, FindGaps(segments, 0.01).Count())

	polygons, ok := Heal(segments, 0.01)
	assert.False(t, ok)
	assert.Empty(t, polygons)
}

func TestHealEmptyAndDegenerateInput(t *testing.T) {
	_, ok := Heal(nil, 0.001)
	assert.False(t, ok)

	// A single zero-length segment buffers into a disc with no interior
	// ring; that is not a healed outline.
	degenerate := []Segment{{
		Start: geometry.Point2D{X: 1, Y: 1},
		End:   geometry.Point2D{X: 1, Y: 1},
	}}
	_, ok = Heal(degenerate, 0.001)
	assert.False(t, ok)
}

func TestHealZeroTolerance(t *testing.T) {
	segments := Extract(gappedSquare(geometry.Point2D{}, 10, 0.0004)).Segments
	_, ok := Heal(segments, 0)
	assert.False(t, ok)
}

func TestRingArea(t *testing.T) {
	ring := Ring{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	assert.InDelta(t, 4, ring.Area(), 1e-12)
}
