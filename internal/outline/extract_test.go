package outline

import (
	"math"
	"testing"

	"outline-healer/pkg/geometry"
)

func TestExtractLine(t *testing.T) {
	result := Extract([]Entity{
		Line{Start: geometry.Point2D{X: 0, Y: 0}, End: geometry.Point2D{X: 1, Y: 0}},
	})
	if len(result.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(result.Segments))
	}
	s := result.Segments[0]
	if s.Start != (geometry.Point2D{X: 0, Y: 0}) || s.End != (geometry.Point2D{X: 1, Y: 0}) {
		t.Errorf("segment = %+v", s)
	}
	if s.Owner != 0 || s.LocalIndex != 0 {
		t.Errorf("owner/index = %d/%d, want 0/0", s.Owner, s.LocalIndex)
	}
}

func TestExtractCircleTessellation(t *testing.T) {
	center := geometry.Point2D{X: 1, Y: 2}
	result := Extract([]Entity{Circle{Center: center, Radius: 2.0}})

	if len(result.Segments) != CircleChords {
		t.Fatalf("got %d segments, want %d", len(result.Segments), CircleChords)
	}

	// Every chord endpoint lies on the circle.
	for i, s := range result.Segments {
		for _, p := range []geometry.Point2D{s.Start, s.End} {
			if d := math.Abs(center.Distance(p) - 2.0); d > 1e-9 {
				t.Errorf("segment %d endpoint %v is %g off the circle", i, p, d)
			}
		}
	}

	// The loop closes exactly: last segment ends where the first begins.
	first := result.Segments[0]
	last := result.Segments[len(result.Segments)-1]
	if last.End != first.Start {
		t.Errorf("circle does not close: last end %v, first start %v", last.End, first.Start)
	}

	// Consecutive chords share endpoints exactly, so a circle never
	// produces gaps against itself.
	for i := 1; i < len(result.Segments); i++ {
		if result.Segments[i].Start != result.Segments[i-1].End {
			t.Errorf("chords %d and %d do not meet exactly", i-1, i)
		}
	}
}

func TestExtractArcTessellation(t *testing.T) {
	arc := Arc{Center: geometry.Point2D{}, Radius: 1.0, StartAngle: 0, EndAngle: 90}
	result := Extract([]Entity{arc})

	if len(result.Segments) != ArcChords {
		t.Fatalf("got %d segments, want %d", len(result.Segments), ArcChords)
	}

	start := result.Segments[0].Start
	end := result.Segments[len(result.Segments)-1].End
	if math.Abs(start.X-1) > 1e-12 || math.Abs(start.Y) > 1e-12 {
		t.Errorf("arc start = %+v, want (1,0)", start)
	}
	if math.Abs(end.X) > 1e-12 || math.Abs(end.Y-1) > 1e-12 {
		t.Errorf("arc end = %+v, want (0,1)", end)
	}
}

func TestExtractArcAngleNormalization(t *testing.T) {
	// End angle below start angle sweeps forward through 360.
	arc := Arc{Center: geometry.Point2D{}, Radius: 1.0, StartAngle: 90, EndAngle: 0}
	result := Extract([]Entity{arc})

	if len(result.Segments) != ArcChords {
		t.Fatalf("got %d segments, want %d", len(result.Segments), ArcChords)
	}

	start := result.Segments[0].Start
	end := result.Segments[len(result.Segments)-1].End
	if math.Abs(start.X) > 1e-12 || math.Abs(start.Y-1) > 1e-12 {
		t.Errorf("arc start = %+v, want (0,1)", start)
	}
	// 0 normalized to 360, which is the same point as angle 0.
	if math.Abs(end.X-1) > 1e-12 || math.Abs(end.Y) > 1e-9 {
		t.Errorf("arc end = %+v, want (1,0)", end)
	}
}

func TestExtractPolyline(t *testing.T) {
	square := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	tests := []struct {
		name     string
		polyline Polyline
		want     int
	}{
		{"open", Polyline{Points: square}, 3},
		{"closed adds closing segment", Polyline{Points: square, Closed: true}, 4},
		{
			"closed with duplicate endpoint",
			Polyline{Points: append(append([]geometry.Point2D{}, square...), square[0]), Closed: true},
			4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Extract([]Entity{tt.polyline})
			if len(result.Segments) != tt.want {
				t.Fatalf("got %d segments, want %d", len(result.Segments), tt.want)
			}
		})
	}
}

func TestExtractSkipsMalformedEntities(t *testing.T) {
	entities := []Entity{
		Polyline{Points: []geometry.Point2D{{X: 1, Y: 1}}}, // too few points
		Line{Start: geometry.Point2D{X: 0, Y: 0}, End: geometry.Point2D{X: 1, Y: 0}},
		Circle{Center: geometry.Point2D{}, Radius: -1}, // bad radius
		nil,
		Line{Start: geometry.Point2D{X: math.NaN(), Y: 0}, End: geometry.Point2D{X: 1, Y: 0}},
	}

	result := Extract(entities)

	// The one good line still comes through.
	if len(result.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(result.Segments))
	}
	if result.Segments[0].Owner != 1 {
		t.Errorf("surviving segment owner = %d, want 1", result.Segments[0].Owner)
	}

	if len(result.Skipped) != 4 {
		t.Fatalf("got %d skipped, want 4: %+v", len(result.Skipped), result.Skipped)
	}
	wantIndices := []int{0, 2, 3, 4}
	for i, s := range result.Skipped {
		if s.Index != wantIndices[i] {
			t.Errorf("skipped[%d].Index = %d, want %d", i, s.Index, wantIndices[i])
		}
		if s.Reason == "" {
			t.Errorf("skipped[%d] has no reason", i)
		}
	}
}

func TestExtractOwnersAndLocalIndices(t *testing.T) {
	entities := []Entity{
		Line{Start: geometry.Point2D{}, End: geometry.Point2D{X: 1}},
		Circle{Center: geometry.Point2D{X: 5}, Radius: 1},
	}
	result := Extract(entities)

	if len(result.Segments) != 1+CircleChords {
		t.Fatalf("got %d segments, want %d", len(result.Segments), 1+CircleChords)
	}
	for i, s := range result.Segments {
		wantOwner := 0
		wantLocal := i
		if i >= 1 {
			wantOwner = 1
			wantLocal = i - 1
		}
		if s.Owner != wantOwner || s.LocalIndex != wantLocal {
			t.Errorf("segment %d owner/local = %d/%d, want %d/%d",
				i, s.Owner, s.LocalIndex, wantOwner, wantLocal)
		}
	}
}
