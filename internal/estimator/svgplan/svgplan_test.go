package svgplan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/models"
)

const samplePlan = `<svg xmlns="http://www.w3.org/2000/svg" width="800px" height="600px" viewBox="0 0 1000 700">
  <rect id="Wall_1" x="0" y="0" width="1000" height="10"/>
  <rect id="Master_Bedroom_room" x="0" y="0" width="400" height="300"/>
  <g id="wet-areas">
    <path id="Bathroom_1" d="M 400 0 h 200 v 150 h -200 Z"/>
    <g>
      <polygon id="Room_7" points="0,300 300,300 300,500 0,500 0,300"/>
    </g>
  </g>
  <path id="Balcony_1" d="M600,0 L700,0 L700,100 L600,100 Z"/>
  <path id="Kitchen_room" d="M 0 0 L 10 10"/>
  <path id="Door_2" d="M 1 1 L 2 2 L 3 3"/>
</svg>`

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []models.Point
	}{
		{
			name: "absolute with explicit close",
			d:    "M0,0 L100,0 L100,50 L0,50 L0,0 Z",
			want: []models.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50}},
		},
		{
			name: "relative and implicit line-to",
			d:    "m10 10 20 0 0 20 -20 0 z",
			want: []models.Point{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}},
		},
		{
			name: "horizontal and vertical",
			d:    "M 5 5 H 15 V 25 H 5 Z",
			want: []models.Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 25}, {X: 5, Y: 25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	_, err := ParsePath("  ")
	assert.Error(t, err)

	_, err = ParsePath("Z")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		category   models.Category
		carpetable bool
		ok         bool
	}{
		"Master_Bedroom_room": {models.CategoryBedroom, true, true},
		"Bedroom_Ensuite":     {models.CategoryBathroom, false, true},
		"Kitchen_room":        {models.CategoryKitchen, false, true},
		"Family_Lounge":       {models.CategoryLiving, true, true},
		"Entry_Hall":          {models.CategoryHallway, true, true},
		"Room_12":             {models.CategoryOther, true, true},
		"Balcony_2":           {models.CategoryOther, false, true},
		"Wall_1":              {ok: false},
		"":                    {ok: false},
	}

	for id, want := range tests {
		t.Run(id, func(t *testing.T) {
			kind, ok := classify(id)
			require.Equal(t, want.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, want.category, kind.category)
			assert.Equal(t, want.carpetable, kind.carpetable)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Master Bedroom", displayName("Master_Bedroom_room"))
	assert.Equal(t, "Room 7", displayName("Room_7"))
	assert.Equal(t, "walk in robe", displayName("walk-in-robe"))
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan(strings.NewReader(samplePlan))
	require.NoError(t, err)

	assert.Equal(t, models.Canvas{Width: 1000, Height: 700}, plan.Canvas, "viewBox wins over width/height")

	var ids []string
	for _, o := range plan.Outlines {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"Master_Bedroom_room", "Balcony_1", "Bathroom_1", "Room_7"}, ids)
	assert.Equal(t, []string{"Kitchen_room"}, plan.Skipped)

	assert.Len(t, plan.Outlines[3].Points, 4, "closing point dropped")
}

func TestParsePlan_CanvasFromSize(t *testing.T) {
	plan, err := ParsePlan(strings.NewReader(`<svg width="640px" height="480"></svg>`))
	require.NoError(t, err)
	assert.Equal(t, models.Canvas{Width: 640, Height: 480}, plan.Canvas)
	assert.Empty(t, plan.Outlines)
}

func TestParsePlan_Invalid(t *testing.T) {
	_, err := ParsePlan(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestPlan_RoomSet(t *testing.T) {
	plan, err := ParsePlan(strings.NewReader(samplePlan))
	require.NoError(t, err)

	set := plan.RoomSet(engine.DefaultSettings())
	require.Len(t, set.Rooms, 4)
	assert.Equal(t, AnalysisMethod, set.AnalysisMethod)
	assert.Equal(t, plan.Canvas, set.Canvas)
	require.Len(t, set.Warnings, 1)
	assert.Contains(t, set.Warnings[0], "Kitchen_room")

	bedroom := set.Rooms[0]
	assert.Equal(t, "Master Bedroom", bedroom.Name)
	assert.Equal(t, models.Dimensions{Length: 3, Width: 4}, bedroom.Dimensions)
	assert.InDelta(t, 12.0, bedroom.Area, 1e-9)
	assert.InDelta(t, 12.0, bedroom.CarpetableArea, 1e-9)
	assert.Equal(t, models.MethodManual, bedroom.IdentificationMethod)

	balcony := set.Rooms[1]
	assert.False(t, balcony.Carpetable)
	assert.Zero(t, balcony.CarpetableArea)
	assert.Zero(t, balcony.LinearMetres)

	bathroom := set.Rooms[2]
	assert.InDelta(t, 3.0, bathroom.Area, 1e-9)
	assert.False(t, bathroom.Carpetable)

	w := engine.New(engine.DefaultSettings())
	w.Load(set)
	loaded := w.RoomSet()
	assert.InDelta(t, 12.0+6.0, loaded.TotalCarpetableArea, 1e-9)
	assert.Equal(t, 2, loaded.ExtractionStats.CarpetableRooms)
}
