package outline

// Options configures outline reconstruction.
type Options struct {
	// Tolerance is the maximum endpoint distance, in mm, treated as an
	// unintentional gap.
	Tolerance float64
	// HealGaps enables the buffer/union gap healing step. When off,
	// segments are still line-merged back into clean entities.
	HealGaps bool
}

// DefaultOptions returns the operator-facing defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance: 0.001,
		HealGaps:  true,
	}
}

// Result is the outcome of one reconstruction pass.
//
// GapCount is the number of gaps that were actually healed: it is zero
// whenever healing was skipped, failed, or was reverted — even if the
// detector found gaps. Callers that need the raw detection result must
// consult Report instead of inferring "no gaps existed" from GapCount.
type Result struct {
	// Entities is the reconstructed entity list.
	Entities []Entity
	// GapCount is the number of healed gaps (0 on any revert or skip).
	GapCount int
	// Report is the raw gap detection result for this pass.
	Report GapReport
	// Skipped lists entities that could not be tessellated.
	Skipped []SkippedEntity
	// Healed reports whether healed geometry was accepted.
	Healed bool
}

// Reconstruct runs the full pipeline over one entity snapshot: extract
// segments, detect gaps, heal when needed, and guard the healed output.
//
// The guard's decision table, in order:
//   - no segments at all: empty result;
//   - zero gaps: line-merge segments back into entities, no healing;
//   - healing disabled: same cheap path;
//   - healer produced no closed ring: revert to the preserved original
//     Circle and closed-Polyline entities;
//   - healed entity count below 50% of the preserved original count:
//     untrustworthy simplification, revert likewise;
//   - otherwise: accept the healed rings, copy Circle entities verbatim,
//     and report the detected gap count.
//
// Reverts are all-or-nothing: the result is always either fully healed
// geometry or the untouched preserved originals, never a mixture. The
// preserved set is captured before any healing work so every failure path
// has a safe fallback.
func Reconstruct(entities []Entity, opts Options) Result {
	preserved := preserveOriginals(entities)

	extracted := Extract(entities)
	result := Result{Skipped: extracted.Skipped}
	if len(extracted.Segments) == 0 {
		return result
	}

	if !opts.HealGaps {
		result.Entities = MergeSegments(entities, extracted.Segments)
		return result
	}

	result.Report = FindGaps(extracted.Segments, opts.Tolerance)
	if result.Report.Count() == 0 {
		result.Entities = MergeSegments(entities, extracted.Segments)
		return result
	}

	polygons, ok := Heal(extracted.Segments, opts.Tolerance)
	if !ok {
		result.Entities = preserved
		return result
	}

	healed := ringEntities(polygons)
	if len(preserved) > 0 && float64(len(healed)) < 0.5*float64(len(preserved)) {
		result.Entities = preserved
		return result
	}

	skipped := make(map[int]bool, len(extracted.Skipped))
	for _, s := range extracted.Skipped {
		skipped[s.Index] = true
	}
	for i, e := range entities {
		if c, isCircle := e.(Circle); isCircle && !skipped[i] {
			healed = append(healed, c)
		}
	}
	result.Entities = healed
	result.GapCount = result.Report.Count()
	result.Healed = true
	return result
}

// preserveOriginals captures the Circle and closed-Polyline entities from
// the source set. Every revert path falls back to exactly this set.
func preserveOriginals(entities []Entity) []Entity {
	var preserved []Entity
	for _, e := range entities {
		switch v := e.(type) {
		case Circle:
			preserved = append(preserved, v)
		case Polyline:
			if v.Closed {
				preserved = append(preserved, v)
			}
		}
	}
	return preserved
}

// ringEntities converts healed polygons into closed Polyline entities:
// each exterior ring and each hole ring becomes its own independent entity.
// Holes are not nested structurally; downstream consumers tag outer vs.
// inner boundaries themselves.
func ringEntities(polygons []HealedPolygon) []Entity {
	var entities []Entity
	for _, poly := range polygons {
		entities = append(entities, Polyline{Points: poly.Exterior, Closed: true})
		for _, hole := range poly.Holes {
			entities = append(entities, Polyline{Points: hole, Closed: true})
		}
	}
	return entities
}
