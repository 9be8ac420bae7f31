package outline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"outline-healer/pkg/geometry"
)

// EndpointKind distinguishes the two ends of a segment.
type EndpointKind int

const (
	EndpointStart EndpointKind = iota
	EndpointEnd
)

func (k EndpointKind) String() string {
	if k == EndpointStart {
		return "start"
	}
	return "end"
}

// EndpointRecord locates one end of one segment.
type EndpointRecord struct {
	Point        geometry.Point2D
	SegmentIndex int
	Which        EndpointKind
}

// Gap is a pair of endpoints from different segments whose distance is
// positive but below the detection tolerance.
type Gap struct {
	Distance float64
	SegA     int
	EndA     EndpointKind
	SegB     int
	EndB     EndpointKind
	PointA   geometry.Point2D
	PointB   geometry.Point2D
}

// GapReport is the ordered list of detected gaps.
type GapReport struct {
	Gaps []Gap
}

// Count returns the number of detected gaps.
func (r GapReport) Count() int { return len(r.Gaps) }

// GapStats summarizes the gap distances of a report.
type GapStats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Stats computes summary statistics over the gap distances.
func (r GapReport) Stats() GapStats {
	if len(r.Gaps) == 0 {
		return GapStats{}
	}
	distances := make([]float64, len(r.Gaps))
	for i, g := range r.Gaps {
		distances[i] = g.Distance
	}
	return GapStats{
		Count: len(distances),
		Min:   floats.Min(distances),
		Max:   floats.Max(distances),
		Mean:  stat.Mean(distances, nil),
	}
}

// FindGaps compares every pair of segment endpoints from distinct segments
// and records those with 0 < distance < tolerance. A distance of exactly
// zero means the endpoints already coincide and is not a gap. Two endpoints
// of the same segment are never compared. The scan is quadratic in the
// endpoint count; drawings at the target scale are small enough that a
// spatial index buys nothing.
func FindGaps(segments []Segment, tolerance float64) GapReport {
	endpoints := make([]EndpointRecord, 0, 2*len(segments))
	for i, s := range segments {
		endpoints = append(endpoints,
			EndpointRecord{Point: s.Start, SegmentIndex: i, Which: EndpointStart},
			EndpointRecord{Point: s.End, SegmentIndex: i, Which: EndpointEnd},
		)
	}

	var report GapReport
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			a, b := endpoints[i], endpoints[j]
			if a.SegmentIndex == b.SegmentIndex {
				continue
			}
			dist := a.Point.Distance(b.Point)
			if dist > 0 && dist < tolerance {
				report.Gaps = append(report.Gaps, Gap{
					Distance: dist,
					SegA:     a.SegmentIndex,
					EndA:     a.Which,
					SegB:     b.SegmentIndex,
					EndB:     b.Which,
					PointA:   a.Point,
					PointB:   b.Point,
				})
			}
		}
	}
	return report
}
