package geometry

import (
	"errors"
	"math"

	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Polygon helpers
// ============================================================

// DefaultScale converts drawing units to metres (100 units = 1 m).
const DefaultScale = 0.01

// PolygonArea returns the absolute shoelace area in drawing units².
// The loop is closed implicitly; fewer than 3 points yield 0.
func PolygonArea(points []models.Point) float64 {
	if len(points) < MinPolygonPoints {
		return 0
	}

	var sum float64
	for i := range points {
		j := (i + 1) % len(points)
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// Bounds returns the bounding box corners. Empty input yields two zero points.
func Bounds(points []models.Point) (models.Point, models.Point) {
	if len(points) == 0 {
		return models.Point{}, models.Point{}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return models.Point{X: minX, Y: minY}, models.Point{X: maxX, Y: maxY}
}

// BoundingDimensions measures the bounding box in metres.
// Width runs along X, length along Y.
func BoundingDimensions(points []models.Point, scale float64) models.Dimensions {
	lo, hi := Bounds(points)
	return models.Dimensions{
		Length: (hi.Y - lo.Y) * scale,
		Width:  (hi.X - lo.X) * scale,
	}
}

// MetricArea is the shoelace area converted with scale².
func MetricArea(points []models.Point, scale float64) float64 {
	return PolygonArea(points) * scale * scale
}

// Centroid is the arithmetic mean of the points, used for label placement.
func Centroid(points []models.Point) models.Point {
	if len(points) == 0 {
		return models.Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return models.Point{X: sumX / n, Y: sumY / n}
}

// Rescale returns a copy of points stretched by sx and sy independently.
func Rescale(points []models.Point, sx, sy float64) []models.Point {
	if points == nil {
		return nil
	}

	out := make([]models.Point, len(points))
	for i, p := range points {
		out[i] = models.Point{X: p.X * sx, Y: p.Y * sy}
	}
	return out
}

// MinPolygonPoints is the smallest point count that encloses an area.
const MinPolygonPoints = 3

var ErrTooFewPoints = errors.New("a room needs at least 3 points")
