// Command outlineheal reconstructs closed outlines from a drawing file,
// healing small endpoint gaps, and reports what it did.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"outline-healer/internal/drawing"
	"outline-healer/internal/outline"
	"outline-healer/internal/render"
	"outline-healer/internal/version"
	"outline-healer/pkg/geometry"
)

func main() {
	drawingPath := flag.String("drawing", "", "Path to drawing JSON file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	tolerance := flag.Float64("tolerance", 0, "Gap tolerance in mm (0 = drawing settings or 0.001)")
	heal := flag.Bool("heal", true, "Heal small gaps between segments")
	outPath := flag.String("out", "", "Write reconstructed drawing JSON to this path")
	pngPath := flag.String("png", "", "Write a raster preview PNG to this path")
	fill := flag.Bool("fill", false, "Fill closed outlines in the preview")
	flag.Parse()

	if *showVersion {
		fmt.Printf("outlineheal %s\n", version.String())
		return
	}

	if *drawingPath == "" {
		fmt.Println("Usage: outlineheal -drawing <path> [-tolerance 0.001] [-heal=false] [-out <path>] [-png <path>]")
		os.Exit(1)
	}

	d, err := drawing.Load(*drawingPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load drawing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded drawing %q: %d entities (%s)\n", d.Name, len(d.Entities), d.Units)

	opts := d.Options()
	opts.HealGaps = *heal
	if *tolerance > 0 {
		opts.Tolerance = *tolerance
	}
	fmt.Printf("Tolerance: %g mm, healing: %v\n", opts.Tolerance, opts.HealGaps)

	result := outline.Reconstruct(d.Entities, opts)

	for _, s := range result.Skipped {
		fmt.Printf("Skipped entity #%d (%s): %s\n", s.Index, s.Kind, s.Reason)
	}

	if stats := result.Report.Stats(); stats.Count > 0 {
		fmt.Printf("\nDetected %d gap(s): min %.6f mm, mean %.6f mm, max %.6f mm\n",
			stats.Count, stats.Min, stats.Mean, stats.Max)
	} else {
		fmt.Println("\nNo gaps detected")
	}
	if result.Healed {
		fmt.Printf("Healed %d gap(s)\n", result.GapCount)
	} else if result.Report.Count() > 0 && opts.HealGaps {
		fmt.Println("Healing reverted; original entities preserved")
	}

	fmt.Printf("\nReconstructed %d entities:\n", len(result.Entities))
	fmt.Printf("%-4s %-10s %8s %8s %12s\n", "#", "Kind", "Points", "Closed", "Area")
	for i, e := range result.Entities {
		points, closed, area := describe(e)
		fmt.Printf("%-4d %-10s %8d %8v %12.4f\n", i, e.Kind(), points, closed, area)
	}

	if *outPath != "" {
		out := drawing.New(d.Name)
		out.Settings = d.Settings
		out.Entities = result.Entities
		if err := out.Save(*outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save drawing: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSaved reconstructed drawing to %s\n", *outPath)
	}

	if *pngPath != "" {
		ropts := render.DefaultOptions()
		ropts.FillClosed = *fill
		img := render.Render(result.Entities, result.Report.Gaps, ropts)
		if err := render.WritePNG(*pngPath, img); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote preview to %s\n", *pngPath)
	}
}

// describe summarizes an entity for the result table.
func describe(e outline.Entity) (points int, closed bool, area float64) {
	switch v := e.(type) {
	case outline.Line:
		return 2, false, 0
	case outline.Arc:
		return outline.ArcChords + 1, false, 0
	case outline.Circle:
		return outline.CircleChords, true, math.Pi * v.Radius * v.Radius
	case outline.Polyline:
		if v.Closed {
			return len(v.Points), true, geometry.Area(v.Points)
		}
		return len(v.Points), false, 0
	default:
		return 0, false, 0
	}
}
