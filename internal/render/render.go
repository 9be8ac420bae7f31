// Package render produces raster previews of reconstructed outlines. It is
// debug tooling for inspection, not an interactive drawing surface.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"outline-healer/internal/outline"
	"outline-healer/pkg/geometry"
)

// Options configures outline rendering.
type Options struct {
	Width  int // Output image width in pixels
	Height int // Output image height in pixels
	Margin int // Border margin in pixels

	StrokeWidth   int  // Outline stroke thickness in pixels
	FillClosed    bool // Fill closed polylines instead of just stroking them
	GapMarkerSize int  // Half-size of the gap marker cross (0 = no markers)

	Background color.RGBA
	Stroke     color.RGBA
	Fill       color.RGBA
	GapMarker  color.RGBA
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		Width:         1024,
		Height:        1024,
		Margin:        32,
		StrokeWidth:   2,
		FillClosed:    false,
		GapMarkerSize: 6,
		Background:    color.RGBA{R: 16, G: 16, B: 24, A: 255},
		Stroke:        color.RGBA{R: 220, G: 220, B: 220, A: 255},
		Fill:          color.RGBA{R: 40, G: 110, B: 60, A: 255},
		GapMarker:     color.RGBA{R: 230, G: 60, B: 60, A: 255},
	}
}

// Render draws the entity set, and optionally the detected gaps, into an
// RGBA image. The drawing is fitted into the viewport preserving aspect
// ratio, with the drawing's Y axis pointing up.
func Render(entities []outline.Entity, gaps []outline.Gap, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	chains := make([][]geometry.Point2D, 0, len(entities))
	closed := make([]bool, 0, len(entities))
	var all []geometry.Point2D
	for _, e := range entities {
		points, err := outline.Tessellate(e)
		if err != nil {
			continue
		}
		chains = append(chains, points)
		closed = append(closed, len(points) > 2 && points[0] == points[len(points)-1])
		all = append(all, points...)
	}
	for _, g := range gaps {
		all = append(all, g.PointA, g.PointB)
	}
	if len(all) == 0 {
		return img
	}

	toPixel := fitTransform(geometry.BoundingBox(all), opts)

	for i, points := range chains {
		if opts.FillClosed && closed[i] {
			fillChain(img, points, toPixel, opts.Fill)
		}
		strokeChain(img, points, toPixel, opts.StrokeWidth, opts.Stroke)
	}

	if opts.GapMarkerSize > 0 {
		for _, g := range gaps {
			mid := geometry.Point2D{
				X: (g.PointA.X + g.PointB.X) / 2,
				Y: (g.PointA.Y + g.PointB.Y) / 2,
			}
			drawCross(img, toPixel.Apply(mid), opts.GapMarkerSize, opts.GapMarker)
		}
	}

	return img
}

// WritePNG renders and writes the image to a PNG file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// fitTransform maps the drawing's bounding box into the pixel viewport,
// preserving aspect ratio and flipping Y so the drawing's up is screen up.
func fitTransform(bounds geometry.Rect, opts Options) geometry.AffineTransform {
	availW := float64(opts.Width - 2*opts.Margin)
	availH := float64(opts.Height - 2*opts.Margin)
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	scale := 1.0
	if bounds.Width > 0 || bounds.Height > 0 {
		scale = math.Min(
			availW/math.Max(bounds.Width, 1e-9),
			availH/math.Max(bounds.Height, 1e-9),
		)
	}

	center := bounds.Center()
	// Pixel center, then scale with Y flipped, then recenter on the drawing.
	return geometry.Translation(float64(opts.Width)/2, float64(opts.Height)/2).
		Compose(geometry.Scale(scale, -scale)).
		Compose(geometry.Translation(-center.X, -center.Y))
}

// strokeChain draws a point chain with thick line segments.
func strokeChain(img *image.RGBA, points []geometry.Point2D, t geometry.AffineTransform, thickness int, c color.RGBA) {
	for i := 0; i+1 < len(points); i++ {
		a := t.Apply(points[i])
		b := t.Apply(points[i+1])
		drawThickLine(img, a.X, a.Y, b.X, b.Y, thickness, c)
	}
}

// fillChain fills a closed point chain using the vector rasterizer.
func fillChain(img *image.RGBA, points []geometry.Point2D, t geometry.AffineTransform, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	first := t.Apply(points[0])
	r.MoveTo(float32(first.X), float32(first.Y))
	for _, p := range points[1:] {
		px := t.Apply(p)
		r.LineTo(float32(px.X), float32(px.Y))
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{})
}

// drawCross marks a point with a small diagonal cross.
func drawCross(img *image.RGBA, p geometry.Point2D, size int, c color.RGBA) {
	bounds := img.Bounds()
	cx, cy := int(p.X), int(p.Y)
	for d := -size; d <= size; d++ {
		setPixel(img, cx+d, cy+d, c, bounds)
		setPixel(img, cx+d, cy-d, c, bounds)
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA, bounds image.Rectangle) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

// drawThickLine draws a line with given thickness.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2 float64, thickness int, c color.RGBA) {
	bounds := img.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		setPixel(img, int(x1), int(y1), c, bounds)
		return
	}

	// Perpendicular unit vector
	px := -dy / length
	py := dx / length

	halfThick := float64(thickness) / 2
	for t := -halfThick; t <= halfThick; t += 1.0 {
		drawLine(img, int(x1+px*t), int(y1+py*t), int(x2+px*t), int(y2+py*t), c, bounds)
	}
}

// drawLine draws a line using Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA, bounds image.Rectangle) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.Set(x1, y1, c)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
