package outline

import (
	"outline-healer/pkg/geometry"
)

// Segment is one straight piece of a tessellated entity. Owner is the index
// of the originating entity in the extraction input, assigned at extraction
// time; it is stable for the lifetime of one reconstruction pass and is not
// cached across passes.
type Segment struct {
	Start      geometry.Point2D
	End        geometry.Point2D
	Owner      int
	LocalIndex int
}

// SkippedEntity records an entity that could not be tessellated. A single
// malformed entity never aborts extraction of the rest.
type SkippedEntity struct {
	Index  int
	Kind   string
	Reason string
}

// ExtractResult holds the flat segment sequence produced from an entity set.
type ExtractResult struct {
	Segments []Segment
	Skipped  []SkippedEntity
}

// Extract tessellates every entity into straight segments. Lines yield one
// segment, arcs 24 chords, circles 36 chords, polylines one segment per
// consecutive point pair plus a closing segment when closed. Extraction is
// pure: it neither mutates the entity set nor keeps state between calls.
func Extract(entities []Entity) ExtractResult {
	var result ExtractResult

	for i, e := range entities {
		if e == nil {
			result.Skipped = append(result.Skipped, SkippedEntity{
				Index:  i,
				Kind:   "unknown",
				Reason: "nil entity",
			})
			continue
		}

		points, err := e.tessellate()
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntity{
				Index:  i,
				Kind:   e.Kind(),
				Reason: err.Error(),
			})
			continue
		}

		for j := 0; j+1 < len(points); j++ {
			result.Segments = append(result.Segments, Segment{
				Start:      points[j],
				End:        points[j+1],
				Owner:      i,
				LocalIndex: j,
			})
		}
	}

	return result
}
