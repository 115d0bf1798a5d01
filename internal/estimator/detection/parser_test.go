package detection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-estimator/internal/estimator/models"
)

func TestParseAnalysis_Direct(t *testing.T) {
	input := `{"success":true,"rooms":[{"id":1,"name":"Master Bedroom","category":"bedroom","dimensions":{"length":4.2,"width":3.6},"area":15.12,"confidence":0.92}],"analysisMethod":"Vision","extractionStats":{"qualityScore":87}}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	require.Len(t, set.Rooms, 1)

	room := set.Rooms[0]
	assert.Equal(t, "1", room.ID)
	assert.Equal(t, "Master Bedroom", room.Name)
	assert.Equal(t, models.CategoryBedroom, room.Category)
	assert.True(t, room.Carpetable, "carpetable defaults from the category policy")
	assert.Equal(t, models.Dimensions{Length: 4.2, Width: 3.6}, room.Dimensions)
	assert.Equal(t, 0.92, room.Confidence)
	assert.Equal(t, "Vision", set.AnalysisMethod)
	assert.Equal(t, 87.0, set.ExtractionStats.QualityScore)
}

func TestParseAnalysis_WithPreamble(t *testing.T) {
	input := `Analyzing the plan now...
{"rooms":[{"id":"k1","category":"kitchen","dimensions":{"length":"3.1","width":2.4}}]}
Done.`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	require.Len(t, set.Rooms, 1)
	assert.Equal(t, "k1", set.Rooms[0].ID)
	assert.False(t, set.Rooms[0].Carpetable)
	assert.Equal(t, 3.1, set.Rooms[0].Dimensions.Length, "numeric strings are accepted")
	assert.Equal(t, defaultAnalysisMethod, set.AnalysisMethod)
}

func TestParseAnalysis_CodeBlock(t *testing.T) {
	input := "Result:\n```json\n{\"rooms\":[]}\n```\n{not json}"

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	assert.Empty(t, set.Rooms)
}

func TestParseAnalysis_ExplicitCarpetableOverride(t *testing.T) {
	input := `{"rooms":[{"id":2,"category":"garage","carpetable":true,"dimensions":{"length":6,"width":3}}]}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	assert.True(t, set.Rooms[0].Carpetable)
}

func TestParseAnalysis_UnknownCategory(t *testing.T) {
	input := `{"rooms":[{"name":"Rumpus","category":"rumpus","dimensions":{"length":5,"width":4}}]}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, set.Rooms[0].Category)
	assert.True(t, set.Rooms[0].Carpetable)
	require.Len(t, set.Warnings, 1)
	assert.Contains(t, set.Warnings[0], "rumpus")
}

func TestParseAnalysis_BoundaryFormats(t *testing.T) {
	input := `{"rooms":[
		{"id":1,"roomBoundary":{"coordinates":[{"x":0,"y":0},{"x":0,"y":200},{"x":300,"y":200}]}},
		{"id":2,"boundary":[{"x":"10","y":5}]}
	]}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	require.Len(t, set.Rooms, 2)
	assert.Len(t, set.Rooms[0].Boundary, 3)
	assert.Equal(t, []models.Point{{X: 10, Y: 5}}, set.Rooms[1].Boundary)
}

func TestParseAnalysis_LooseFields(t *testing.T) {
	input := `{"rooms":[{"id":null,"area":"n/a","obstacles":["bath",{"type":"vanity"},{"size":3}]}],"warnings":[{"message":"low contrast"},"blurry"]}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	room := set.Rooms[0]
	assert.Empty(t, room.ID)
	assert.Zero(t, room.Area)
	assert.Equal(t, []string{"bath", "vanity"}, room.Obstacles)
	assert.Equal(t, []string{"low contrast", "blurry"}, set.Warnings)
}

func TestParseAnalysis_BadRoomSkipped(t *testing.T) {
	input := `{"rooms":[{"name":["not","a","string"]},{"id":"ok"}]}`

	set, err := ParseAnalysis(input)
	require.NoError(t, err)
	require.Len(t, set.Rooms, 1)
	assert.Equal(t, "ok", set.Rooms[0].ID)
	require.Len(t, set.Warnings, 1)
	assert.Contains(t, set.Warnings[0], "room 1 skipped")
}

func TestParseAnalysis_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":         "   ",
		"not json":      "I could not read this floor plan",
		"missing rooms": `{"analysisMethod":"x"}`,
		"rooms object":  `{"rooms":{"a":1}}`,
		"failure":       `{"success":false,"error":"image too blurry"}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAnalysis(input)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
		})
	}

	_, err := ParseAnalysis(`{"success":false,"error":"image too blurry"}`)
	assert.Contains(t, err.Error(), "image too blurry")
}
