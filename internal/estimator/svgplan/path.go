package svgplan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath reads the straight-line subset of SVG path data (M, L, H, V, Z
// in absolute and relative form) into outline points. Repeated coordinate
// pairs after M/L are treated as implicit line-tos.
func ParsePath(d string) ([]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points []models.Point
	var x, y float64

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords := parseNumbers(match[2])
		relative := cmd == strings.ToLower(cmd)

		switch strings.ToUpper(cmd) {
		case "M", "L":
			for i := 0; i+1 < len(coords); i += 2 {
				if relative {
					x += coords[i]
					y += coords[i+1]
				} else {
					x, y = coords[i], coords[i+1]
				}
				points = append(points, models.Point{X: x, Y: y})
			}

		case "H":
			for _, c := range coords {
				if relative {
					x += c
				} else {
					x = c
				}
				points = append(points, models.Point{X: x, Y: y})
			}

		case "V":
			for _, c := range coords {
				if relative {
					y += c
				} else {
					y = c
				}
				points = append(points, models.Point{X: x, Y: y})
			}

		case "Z":
			if len(points) > 0 {
				x, y = points[0].X, points[0].Y
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("path has no drawable points")
	}
	return dropClosingPoint(points), nil
}

// ParsePoints reads a polygon "points" attribute.
func ParsePoints(s string) []models.Point {
	coords := parseNumbers(s)
	var points []models.Point
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, models.Point{X: coords[i], Y: coords[i+1]})
	}
	return dropClosingPoint(points)
}

func parseNumbers(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// separators: comma or whitespace
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	var out []float64
	for _, part := range parts {
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// dropClosingPoint removes an explicit repeat of the first point; the
// outline is closed implicitly.
func dropClosingPoint(points []models.Point) []models.Point {
	if len(points) > 1 && points[0] == points[len(points)-1] {
		return points[:len(points)-1]
	}
	return points
}
