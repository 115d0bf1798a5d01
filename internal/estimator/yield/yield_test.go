package yield

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carpet-estimator/internal/estimator/models"
)

func TestLinearMetres(t *testing.T) {
	tests := []struct {
		name string
		dims models.Dimensions
		want float64
	}{
		{"fits across roll", models.Dimensions{Length: 4, Width: 3}, 4},
		{"width equals roll", models.Dimensions{Length: 5.2, Width: 3.66}, 5.2},
		{"fits other orientation", models.Dimensions{Length: 3, Width: 6}, 6},
		{"both exceed square", models.Dimensions{Length: 5, Width: 5}, 10},
		// ceil(8/3.66)*4.5 = 13.5 vs ceil(4.5/3.66)*8 = 16
		{"both exceed picks cheaper", models.Dimensions{Length: 4.5, Width: 8}, 13.5},
		{"zero length", models.Dimensions{Length: 0, Width: 3}, 0},
		{"zero width", models.Dimensions{Length: 3, Width: 0}, 0},
		{"negative", models.Dimensions{Length: -2, Width: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LinearMetres(tt.dims, RollWidth), 1e-9)
		})
	}
}

func TestLinearMetres_DefaultsRollWidth(t *testing.T) {
	assert.InDelta(t, 10, LinearMetres(models.Dimensions{Length: 5, Width: 5}, 0), 1e-9)
}

func TestForRoom_NonCarpetable(t *testing.T) {
	room := models.Room{Carpetable: false, Dimensions: models.Dimensions{Length: 4, Width: 3}}
	assert.Zero(t, ForRoom(room, RollWidth))

	room.Carpetable = true
	assert.InDelta(t, 4, ForRoom(room, RollWidth), 1e-9)
}
