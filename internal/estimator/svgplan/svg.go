package svgplan

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// XML Structures
// ============================================================

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	group
}

type group struct {
	Rects    []rect    `xml:"rect"`
	Paths    []path    `xml:"path"`
	Polygons []polygon `xml:"polygon"`
	Groups   []group   `xml:"g"`
}

type rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

type polygon struct {
	ID     string `xml:"id,attr"`
	Points string `xml:"points,attr"`
}

// ============================================================
// Plan
// ============================================================

// Outline is one room-shaped element of an SVG floor plan.
type Outline struct {
	ID         string
	Name       string
	Category   models.Category
	Carpetable bool
	Points     []models.Point
}

type Plan struct {
	Canvas   models.Canvas
	Outlines []Outline
	Skipped  []string
}

const AnalysisMethod = "SVG Import"

// ParsePlan reads room outlines from an SVG floor plan. Elements are
// recognised by id (Room_3, Kitchen_room, Balcony_1, Master_Bedroom);
// walls, doors and windows are ignored.
func ParsePlan(r io.Reader) (*Plan, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	plan := &Plan{Canvas: canvasOf(doc)}
	plan.collect(doc.group)
	return plan, nil
}

func (p *Plan) collect(g group) {
	for _, r := range g.Rects {
		p.add(r.ID, []models.Point{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, nil)
	}
	for _, pa := range g.Paths {
		points, err := ParsePath(pa.D)
		p.add(pa.ID, points, err)
	}
	for _, pg := range g.Polygons {
		p.add(pg.ID, ParsePoints(pg.Points), nil)
	}
	for _, child := range g.Groups {
		p.collect(child)
	}
}

func (p *Plan) add(id string, points []models.Point, err error) {
	kind, ok := classify(id)
	if !ok {
		return
	}
	if err != nil || len(points) < 3 {
		p.Skipped = append(p.Skipped, id)
		return
	}

	p.Outlines = append(p.Outlines, Outline{
		ID:         id,
		Name:       displayName(id),
		Category:   kind.category,
		Carpetable: kind.carpetable,
		Points:     points,
	})
}

// RoomSet finalizes every outline as a drawn room.
func (p *Plan) RoomSet(s engine.Settings) models.RoomSet {
	set := models.RoomSet{
		AnalysisMethod: AnalysisMethod,
		Canvas:         p.Canvas,
		ExtractionStats: models.ExtractionStats{
			QualityScore:     100,
			ProcessingMethod: AnalysisMethod,
		},
	}

	for _, o := range p.Outlines {
		draft := models.Room{
			ID:         o.ID,
			Name:       o.Name,
			Category:   o.Category,
			Carpetable: o.Carpetable,
		}
		room, err := engine.FinalizeBoundary(draft, o.Points, s)
		if err != nil {
			set.Warnings = append(set.Warnings, fmt.Sprintf("%s: %v", o.ID, err))
			continue
		}
		set.Rooms = append(set.Rooms, room)
	}
	for _, id := range p.Skipped {
		set.Warnings = append(set.Warnings, fmt.Sprintf("%s: outline could not be read", id))
	}
	return set
}

func canvasOf(doc svgDoc) models.Canvas {
	if box := parseNumbers(doc.ViewBox); len(box) == 4 && box[2] > 0 && box[3] > 0 {
		return models.Canvas{Width: box[2], Height: box[3]}
	}

	w := parseNumbers(strings.TrimSuffix(doc.Width, "px"))
	h := parseNumbers(strings.TrimSuffix(doc.Height, "px"))
	if len(w) == 1 && len(h) == 1 {
		return models.Canvas{Width: w[0], Height: h[0]}
	}
	return models.Canvas{}
}
