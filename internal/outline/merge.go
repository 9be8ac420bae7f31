package outline

import (
	"outline-healer/pkg/geometry"
)

// MergeSegments converts a segment sequence straight back into entities
// without any buffering, for the paths where no healing is needed. Chains
// of segments whose endpoints coincide exactly are merged into maximal
// polylines; a chain that meets itself becomes a closed Polyline. Circle
// entities are copied verbatim from the source set instead of being
// re-derived from their own chords, so a circle always survives as exactly
// one entity.
func MergeSegments(entities []Entity, segments []Segment) []Entity {
	var result []Entity

	// Circles first, exact copies.
	isCircleOwner := make(map[int]bool)
	for i, e := range entities {
		if c, okCircle := e.(Circle); okCircle {
			result = append(result, c)
			isCircleOwner[i] = true
		}
	}

	var mergeable []Segment
	for _, s := range segments {
		if !isCircleOwner[s.Owner] {
			mergeable = append(mergeable, s)
		}
	}

	for _, chain := range mergeChains(mergeable) {
		result = append(result, chainEntity(chain))
	}
	return result
}

// chain is an ordered point sequence; closed chains repeat the first point
// at the end.
type chain []geometry.Point2D

func (c chain) closed() bool {
	return len(c) > 2 && c[0] == c[len(c)-1]
}

// chainEntity converts a merged chain back into the simplest entity that
// represents it.
func chainEntity(c chain) Entity {
	if c.closed() {
		return Polyline{Points: c[:len(c)-1], Closed: true}
	}
	if len(c) == 2 {
		return Line{Start: c[0], End: c[1]}
	}
	return Polyline{Points: c, Closed: false}
}

// segmentEnd identifies one end of one mergeable segment.
type segmentEnd struct {
	seg   int
	start bool
}

// mergeChains joins segments at exactly-coincident endpoints into maximal
// chains. Joining happens only at points touched by exactly two segment
// ends; junctions of three or more ends terminate a chain, so intentionally
// meeting shapes are never merged through their meeting point.
func mergeChains(segments []Segment) []chain {
	touches := make(map[geometry.Point2D][]segmentEnd, 2*len(segments))
	for i, s := range segments {
		touches[s.Start] = append(touches[s.Start], segmentEnd{seg: i, start: true})
		touches[s.End] = append(touches[s.End], segmentEnd{seg: i, start: false})
	}

	// next returns the unvisited segment continuing the chain at pt, or
	// ok=false at a free end or a junction.
	visited := make([]bool, len(segments))
	next := func(pt geometry.Point2D) (segmentEnd, bool) {
		ends := touches[pt]
		if len(ends) != 2 {
			return segmentEnd{}, false
		}
		for _, e := range ends {
			if !visited[e.seg] {
				return e, true
			}
		}
		return segmentEnd{}, false
	}

	var chains []chain
	for i := range segments {
		if visited[i] {
			continue
		}
		visited[i] = true
		c := chain{segments[i].Start, segments[i].End}

		// Grow forward from the tail.
		for {
			tail := c[len(c)-1]
			e, okNext := next(tail)
			if !okNext {
				break
			}
			visited[e.seg] = true
			if e.start {
				c = append(c, segments[e.seg].End)
			} else {
				c = append(c, segments[e.seg].Start)
			}
			if c[0] == c[len(c)-1] {
				break
			}
		}

		// Grow backward from the head unless the chain already closed.
		if !c.closed() {
			for {
				head := c[0]
				e, okNext := next(head)
				if !okNext {
					break
				}
				visited[e.seg] = true
				var far geometry.Point2D
				if e.start {
					far = segments[e.seg].End
				} else {
					far = segments[e.seg].Start
				}
				c = append(chain{far}, c...)
				if c[0] == c[len(c)-1] {
					break
				}
			}
		}

		chains = append(chains, c)
	}
	return chains
}
