// Command gapcheck runs gap detection on a drawing and lists every
// near-coincident endpoint pair without attempting to heal anything.
package main

import (
	"flag"
	"fmt"
	"os"

	"outline-healer/internal/drawing"
	"outline-healer/internal/outline"
	"outline-healer/internal/version"
)

func main() {
	drawingPath := flag.String("drawing", "", "Path to drawing JSON file")
	tolerance := flag.Float64("tolerance", 0, "Gap tolerance in mm (0 = drawing settings or 0.001)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gapcheck %s\n", version.String())
		return
	}

	if *drawingPath == "" {
		fmt.Println("Usage: gapcheck -drawing <path> [-tolerance 0.001]")
		os.Exit(1)
	}

	d, err := drawing.Load(*drawingPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load drawing: %v\n", err)
		os.Exit(1)
	}

	opts := d.Options()
	if *tolerance > 0 {
		opts.Tolerance = *tolerance
	}

	extracted := outline.Extract(d.Entities)
	fmt.Printf("Loaded %d entities, extracted %d segments\n", len(d.Entities), len(extracted.Segments))
	for _, s := range extracted.Skipped {
		fmt.Printf("Skipped entity #%d (%s): %s\n", s.Index, s.Kind, s.Reason)
	}

	report := outline.FindGaps(extracted.Segments, opts.Tolerance)
	if report.Count() == 0 {
		fmt.Printf("No gaps within tolerance %g mm\n", opts.Tolerance)
		return
	}

	fmt.Printf("\nFound %d gap(s) within tolerance %g mm:\n", report.Count(), opts.Tolerance)
	fmt.Printf("%-4s %12s %10s %10s %24s %24s\n", "#", "Distance", "SegA", "SegB", "PointA", "PointB")
	for i, g := range report.Gaps {
		fmt.Printf("%-4d %12.6f %6d/%-3s %6d/%-3s (%10.4f,%10.4f) (%10.4f,%10.4f)\n",
			i, g.Distance,
			g.SegA, g.EndA, g.SegB, g.EndB,
			g.PointA.X, g.PointA.Y, g.PointB.X, g.PointB.Y)
	}

	stats := report.Stats()
	fmt.Printf("\nGap distance: min %.6f mm, mean %.6f mm, max %.6f mm\n",
		stats.Min, stats.Mean, stats.Max)
}
