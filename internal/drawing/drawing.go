// Package drawing provides load/save of a drawing's entity set as JSON.
// It stands in for the host's drawing-format loader: the outline pipeline
// consumes the entity snapshot and never touches the file again.
package drawing

import (
	"encoding/json"
	"fmt"
	"os"

	"outline-healer/internal/outline"
	"outline-healer/pkg/geometry"
)

// Settings holds operator preferences for a drawing.
type Settings struct {
	GapTolerance float64 `json:"gap_tolerance,omitempty"`
	HealGaps     bool    `json:"heal_gaps"`
}

// Drawing is an entity snapshot plus metadata.
type Drawing struct {
	Version  int              `json:"version"`
	Name     string           `json:"name,omitempty"`
	Units    string           `json:"units"`
	Settings Settings         `json:"settings"`
	Entities []outline.Entity `json:"-"`
}

// New creates an empty drawing with default settings.
func New(name string) *Drawing {
	opts := outline.DefaultOptions()
	return &Drawing{
		Version: 1,
		Name:    name,
		Units:   "mm",
		Settings: Settings{
			GapTolerance: opts.Tolerance,
			HealGaps:     opts.HealGaps,
		},
	}
}

// Options returns the reconstruction options stored in the drawing,
// falling back to defaults for unset fields.
func (d *Drawing) Options() outline.Options {
	opts := outline.DefaultOptions()
	opts.HealGaps = d.Settings.HealGaps
	if d.Settings.GapTolerance > 0 {
		opts.Tolerance = d.Settings.GapTolerance
	}
	return opts
}

// entityRecord is the on-disk tagged form of an entity.
type entityRecord struct {
	Type       string              `json:"type"`
	Start      *geometry.Point2D   `json:"start,omitempty"`
	End        *geometry.Point2D   `json:"end,omitempty"`
	Center     *geometry.Point2D   `json:"center,omitempty"`
	Radius     float64             `json:"radius,omitempty"`
	StartAngle float64             `json:"start_angle,omitempty"`
	EndAngle   float64             `json:"end_angle,omitempty"`
	Points     []geometry.Point2D  `json:"points,omitempty"`
	Closed     bool                `json:"closed,omitempty"`
}

// drawingFile mirrors Drawing with entities in record form.
type drawingFile struct {
	Version  int            `json:"version"`
	Name     string         `json:"name,omitempty"`
	Units    string         `json:"units"`
	Settings Settings       `json:"settings"`
	Entities []entityRecord `json:"entities"`
}

// Load reads a drawing file. Any read or decode failure is a hard error:
// there is no entity set to fall back to.
func Load(path string) (*Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read drawing %s: %w", path, err)
	}

	var file drawingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse drawing %s: %w", path, err)
	}

	d := &Drawing{
		Version:  file.Version,
		Name:     file.Name,
		Units:    file.Units,
		Settings: file.Settings,
	}
	for i, rec := range file.Entities {
		e, err := rec.entity()
		if err != nil {
			return nil, fmt.Errorf("parse drawing %s: entity %d: %w", path, i, err)
		}
		d.Entities = append(d.Entities, e)
	}
	return d, nil
}

// Save writes the drawing to a file.
func (d *Drawing) Save(path string) error {
	file := drawingFile{
		Version:  d.Version,
		Name:     d.Name,
		Units:    d.Units,
		Settings: d.Settings,
		Entities: make([]entityRecord, 0, len(d.Entities)),
	}
	for _, e := range d.Entities {
		file.Entities = append(file.Entities, record(e))
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drawing: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write drawing %s: %w", path, err)
	}
	return nil
}

func (rec entityRecord) entity() (outline.Entity, error) {
	switch rec.Type {
	case "line":
		if rec.Start == nil || rec.End == nil {
			return nil, fmt.Errorf("line needs start and end")
		}
		return outline.Line{Start: *rec.Start, End: *rec.End}, nil
	case "arc":
		if rec.Center == nil {
			return nil, fmt.Errorf("arc needs a center")
		}
		return outline.Arc{
			Center:     *rec.Center,
			Radius:     rec.Radius,
			StartAngle: rec.StartAngle,
			EndAngle:   rec.EndAngle,
		}, nil
	case "circle":
		if rec.Center == nil {
			return nil, fmt.Errorf("circle needs a center")
		}
		return outline.Circle{Center: *rec.Center, Radius: rec.Radius}, nil
	case "polyline":
		return outline.Polyline{Points: rec.Points, Closed: rec.Closed}, nil
	default:
		return nil, fmt.Errorf("unsupported entity type %q", rec.Type)
	}
}

func record(e outline.Entity) entityRecord {
	switch v := e.(type) {
	case outline.Line:
		start, end := v.Start, v.End
		return entityRecord{Type: "line", Start: &start, End: &end}
	case outline.Arc:
		center := v.Center
		return entityRecord{
			Type:       "arc",
			Center:     &center,
			Radius:     v.Radius,
			StartAngle: v.StartAngle,
			EndAngle:   v.EndAngle,
		}
	case outline.Circle:
		center := v.Center
		return entityRecord{Type: "circle", Center: &center, Radius: v.Radius}
	case outline.Polyline:
		return entityRecord{Type: "polyline", Points: v.Points, Closed: v.Closed}
	default:
		return entityRecord{Type: "unknown"}
	}
}
