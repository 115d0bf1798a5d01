package yield

import (
	"math"

	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Carpet roll yield
// ============================================================

// RollWidth is the width of standard broadloom stock in metres.
const RollWidth = 3.66

// LinearMetres returns the length of roll needed to cover a rectangular room
// laid in one direction, ignoring seams. A zero dimension yields 0.
func LinearMetres(d models.Dimensions, rollWidth float64) float64 {
	if rollWidth <= 0 {
		rollWidth = RollWidth
	}
	length, width := d.Length, d.Width
	if !(length > 0) || !(width > 0) {
		return 0
	}

	switch {
	case width <= rollWidth:
		return length
	case length <= rollWidth:
		return width
	default:
		alongLength := math.Ceil(width/rollWidth) * length
		alongWidth := math.Ceil(length/rollWidth) * width
		return math.Min(alongLength, alongWidth)
	}
}

// ForRoom is LinearMetres for carpetable rooms and 0 otherwise.
func ForRoom(room models.Room, rollWidth float64) float64 {
	if !room.Carpetable {
		return 0
	}
	return LinearMetres(room.Dimensions, rollWidth)
}
