package export

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// SVG renderer
// ============================================================

const (
	defaultCanvas = 1000
	gridMargin    = 20
	gridColumns   = 3
)

type Renderer struct {
	// Scale is metres per canvas unit, used to lay out rooms that only have
	// dimensions.
	Scale float64
}

func NewRenderer(scale float64) *Renderer {
	if scale <= 0 {
		scale = geometry.DefaultScale
	}
	return &Renderer{Scale: scale}
}

// Render draws the room set as an SVG document. Rooms with a boundary are
// drawn as polygons; the rest are laid out as proportional rectangles on a
// grid below the drawn rooms. Every room is labelled at its centroid.
func (r *Renderer) Render(set models.RoomSet) string {
	width, height := r.canvasSize(set)

	var elements []string
	var loose []int
	for i, room := range set.Rooms {
		if room.HasBoundary() {
			elements = append(elements, r.renderOutline(room.ID, room.Boundary, room.Carpetable))
			elements = append(elements, r.renderLabel(room, i, geometry.Centroid(room.Boundary)))
			continue
		}
		loose = append(loose, i)
	}

	gridElems, gridHeight := r.renderGrid(set.Rooms, loose, width, height)
	elements = append(elements, gridElems...)
	height += gridHeight

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) canvasSize(set models.RoomSet) (float64, float64) {
	if !set.Canvas.IsZero() {
		return set.Canvas.Width, set.Canvas.Height
	}

	var all []models.Point
	for _, room := range set.Rooms {
		if room.HasBoundary() {
			all = append(all, room.Boundary...)
		}
	}
	if len(all) == 0 {
		return defaultCanvas, 0
	}

	_, hi := geometry.Bounds(all)
	width, height := hi.X, hi.Y
	if width <= 0 {
		width = defaultCanvas
	}
	if height <= 0 {
		height = defaultCanvas
	}
	return width, height
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderOutline(id string, points []models.Point, carpetable bool) string {
	fill := "#f2f2f2"
	if carpetable {
		fill = "#e3f0d8"
	}

	var path strings.Builder
	path.WriteString(`<path id="`)
	path.WriteString(html.EscapeString(id))
	path.WriteString(`" d="M `)
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	path.WriteString(` Z" fill="`)
	path.WriteString(fill)
	path.WriteString(`" stroke="#444" />`)
	return path.String()
}

func (r *Renderer) renderLabel(room models.Room, index int, at models.Point) string {
	text := fmt.Sprintf("%s %.1fm²", room.DisplayName(index), room.CarpetableArea)
	if !room.Carpetable {
		text = fmt.Sprintf("%s (no carpet)", room.DisplayName(index))
	}
	return fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-size="14">%s</text>`,
		formatFloat(at.X), formatFloat(at.Y), html.EscapeString(text))
}

// renderGrid lays out rooms without an outline as rectangles sized from
// their dimensions, in rows starting below top.
func (r *Renderer) renderGrid(rooms []models.Room, indexes []int, width, top float64) ([]string, float64) {
	if len(indexes) == 0 {
		return nil, 0
	}

	cell := (width - gridMargin*float64(gridColumns+1)) / gridColumns
	if cell <= 0 {
		cell = defaultCanvas / gridColumns
	}

	var out []string
	y := top + gridMargin
	rowHeight := 0.0

	for n, i := range indexes {
		room := rooms[i]
		col := n % gridColumns
		if col == 0 && n > 0 {
			y += rowHeight + gridMargin
			rowHeight = 0
		}

		w := room.Dimensions.Width / r.Scale
		h := room.Dimensions.Length / r.Scale
		if w <= 0 || h <= 0 {
			w, h = cell, cell/2
		}
		// shrink to the cell, keeping the aspect ratio
		if fit := math.Min(cell/w, 1); fit < 1 {
			w *= fit
			h *= fit
		}

		x := gridMargin + float64(col)*(cell+gridMargin)
		points := []models.Point{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		}
		out = append(out, r.renderOutline(room.ID, points, room.Carpetable))
		out = append(out, r.renderLabel(room, i, geometry.Centroid(points)))
		rowHeight = math.Max(rowHeight, h)
	}

	return out, y + rowHeight + gridMargin - top
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
