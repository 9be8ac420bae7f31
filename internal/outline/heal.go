package outline

import (
	"math"
	"sort"

	clipper "github.com/ctessum/go.clipper"

	"outline-healer/pkg/geometry"
)

// BufferCap is the hard upper bound on the healing buffer distance in mm.
// The buffer is min(tolerance, BufferCap) so healing only bridges genuinely
// small gaps and never fuses visually distinct shapes that happen to fall
// inside a generous user tolerance.
const BufferCap = 0.0005

// clipperScale is the fixed-point scale for the clipping engine: integer
// units per mm. At 1e7 the buffer cap maps to 5000 units, so quantization
// error stays far below the buffer distance.
const clipperScale = 1e7

// Ring is a closed ordered point chain. The closing edge from the last
// point back to the first is implicit.
type Ring []geometry.Point2D

// Area returns the enclosed area of the ring in mm².
func (r Ring) Area() float64 {
	return geometry.Area(r)
}

// HealedPolygon is one polygonized region of the healed outline: an
// exterior ring plus any interior (hole) rings.
type HealedPolygon struct {
	Exterior Ring
	Holes    []Ring
}

// Heal bridges small endpoint gaps by buffering every segment into a thin
// capsule polygon, unioning all capsules, and polygonizing the closed rings
// of the union boundary into exterior/hole polygons. Exterior polygons are
// returned sorted by descending enclosed area; callers depend on the first
// polygon being the largest shape.
//
// Buffered open chains — dangling ends the buffer could not close into a
// loop — are discarded rather than emitted. Heal reports ok=false when no
// closed ring could be formed at all, or when the clipping engine fails;
// the caller is expected to fall back to its preserved originals.
func Heal(segments []Segment, tolerance float64) (polygons []HealedPolygon, ok bool) {
	// The engine signals degenerate input and numerical failure by
	// panicking; treat any such fault as "no rings formed".
	defer func() {
		if r := recover(); r != nil {
			polygons, ok = nil, false
		}
	}()

	if len(segments) == 0 {
		return nil, false
	}

	bufferDistance := math.Min(tolerance, BufferCap)
	delta := bufferDistance * clipperScale
	if delta < 1 {
		return nil, false
	}

	// Buffer every segment into a capsule with round joins and round open
	// ends, then union all capsules. The offsetter's execute pass performs
	// the union of the per-segment offsets.
	co := clipper.NewClipperOffset()
	for _, s := range segments {
		co.AddPath(clipper.Path{toIntPoint(s.Start), toIntPoint(s.End)},
			clipper.JtRound, clipper.EtOpenRound)
	}
	tree := co.Execute2(delta)
	if tree == nil || tree.ChildCount() == 0 {
		return nil, false
	}

	polygons = collectPolygons(tree)
	if len(polygons) == 0 {
		return nil, false
	}

	sort.SliceStable(polygons, func(i, j int) bool {
		return polygons[i].Exterior.Area() > polygons[j].Exterior.Area()
	})
	return polygons, true
}

// collectPolygons walks the union's polygon tree. Every non-hole node is an
// exterior ring; its immediate hole children are its interior rings. An
// exterior without any hole is the capsule outline of an open chain that
// the buffer failed to close into a loop — those are dropped, since they
// are not healed outline geometry. A closed outline always unions into an
// annulus band (outer ring slightly outside the original curve, hole ring
// slightly inside), and both rings are emitted.
func collectPolygons(tree *clipper.PolyTree) []HealedPolygon {
	var polygons []HealedPolygon

	var walk func(node *clipper.PolyNode)
	walk = func(node *clipper.PolyNode) {
		if !node.IsHole() {
			var holes []Ring
			for _, child := range node.Childs() {
				if child.IsHole() {
					holes = append(holes, ringFromPath(child.Contour()))
				}
			}
			if len(holes) > 0 {
				polygons = append(polygons, HealedPolygon{
					Exterior: ringFromPath(node.Contour()),
					Holes:    holes,
				})
			}
		}
		for _, child := range node.Childs() {
			walk(child)
		}
	}
	for _, child := range tree.Childs() {
		walk(child)
	}

	return polygons
}

func toIntPoint(p geometry.Point2D) *clipper.IntPoint {
	return &clipper.IntPoint{
		X: clipper.CInt(math.Round(p.X * clipperScale)),
		Y: clipper.CInt(math.Round(p.Y * clipperScale)),
	}
}

func ringFromPath(path clipper.Path) Ring {
	ring := make(Ring, len(path))
	for i, pt := range path {
		ring[i] = geometry.Point2D{
			X: float64(pt.X) / clipperScale,
			Y: float64(pt.Y) / clipperScale,
		}
	}
	return ring
}
