package engine

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/yield"
)

// ============================================================
// Derivation rules
// ============================================================

const maxObstacleReduction = 0.99

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseMeasurement reads the leading number of raw ("3.2", "3.2m", " 4 ").
// Empty, malformed, negative or non-finite input reads as 0.
func ParseMeasurement(raw string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return nonNegative(v)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampUnit(v float64) float64 {
	v = nonNegative(v)
	return math.Min(v, 1)
}

func clampObstacle(v float64) float64 {
	v = nonNegative(v)
	return math.Min(v, maxObstacleReduction)
}

// deriveCarpet recomputes the carpet fields from area, the carpetable flag
// and the obstacle term. It is the only place carpetableArea is written.
func deriveCarpet(r *models.Room, rollWidth float64) {
	r.ObstacleReduction = clampObstacle(r.ObstacleReduction)
	if r.Carpetable {
		r.CarpetableArea = r.Area * (1 - r.ObstacleReduction)
	} else {
		r.CarpetableArea = 0
	}
	r.LinearMetres = yield.ForRoom(*r, rollWidth)
}

// applyDimensions makes length×width authoritative for area.
func applyDimensions(r *models.Room, rollWidth float64) {
	r.Dimensions.Length = nonNegative(r.Dimensions.Length)
	r.Dimensions.Width = nonNegative(r.Dimensions.Width)
	r.Area = r.Dimensions.Length * r.Dimensions.Width
	r.OriginalArea = r.Area
	deriveCarpet(r, rollWidth)
}

// applyCategory switches the category and its default carpet policy.
func applyCategory(r *models.Room, c models.Category, rollWidth float64) {
	r.Category = c
	r.Carpetable = c.Carpetable()
	deriveCarpet(r, rollWidth)
}

// FinalizeBoundary materializes a manually drawn outline into a room. The
// draft supplies name, category and the carpetable choice.
func FinalizeBoundary(draft models.Room, points []models.Point, s Settings) (models.Room, error) {
	if len(points) < geometry.MinPolygonPoints {
		return models.Room{}, geometry.ErrTooFewPoints
	}

	room := draft
	room.Boundary = slices.Clone(points)
	room.Dimensions = geometry.BoundingDimensions(points, s.Scale)
	room.Area = geometry.MetricArea(points, s.Scale)
	room.OriginalArea = room.Area
	room.Confidence = 1
	room.IdentificationMethod = models.MethodManual
	deriveCarpet(&room, s.RollWidth)
	return room, nil
}

// normalizeRoom brings an externally supplied room in line with the numeric
// invariants and recomputes every derived field.
func normalizeRoom(r *models.Room, s Settings) {
	r.Dimensions.Length = nonNegative(r.Dimensions.Length)
	r.Dimensions.Width = nonNegative(r.Dimensions.Width)

	if r.HasBoundary() && r.Dimensions.Length == 0 && r.Dimensions.Width == 0 {
		r.Dimensions = geometry.BoundingDimensions(r.Boundary, s.Scale)
	}

	r.Area = nonNegative(r.Area)
	if r.Area == 0 {
		if r.HasBoundary() {
			r.Area = geometry.MetricArea(r.Boundary, s.Scale)
		} else {
			r.Area = r.Dimensions.Length * r.Dimensions.Width
		}
	}

	r.OriginalArea = nonNegative(r.OriginalArea)
	if r.OriginalArea == 0 {
		r.OriginalArea = r.Area
	}

	if r.IdentificationMethod == "" {
		r.IdentificationMethod = models.MethodDetected
	}
	if r.IdentificationMethod == models.MethodManual {
		r.Confidence = 1
	}
	r.Confidence = clampUnit(r.Confidence)

	deriveCarpet(r, s.RollWidth)
}

// summarize recomputes the aggregate fields of a room set.
func summarize(set *models.RoomSet) {
	var total, metres float64
	carpetable := 0
	for _, r := range set.Rooms {
		if !r.Carpetable {
			continue
		}
		carpetable++
		total += r.CarpetableArea
		metres += r.LinearMetres
	}

	set.TotalCarpetableArea = total
	set.TotalLinearMetres = metres
	set.ExtractionStats.RoomsFound = len(set.Rooms)
	set.ExtractionStats.CarpetableRooms = carpetable
}
