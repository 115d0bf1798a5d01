package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/svgplan"
)

func TestLoadRoomSet_JSON(t *testing.T) {
	data := []byte(`{"rooms":[{"id":"a","category":"bedroom","dimensions":{"length":4.5,"width":8}}]}`)

	set, err := loadRoomSet("result.json", data, engine.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, set.Rooms, 1)
	assert.InDelta(t, 36.0, set.TotalCarpetableArea, 1e-9)
	assert.InDelta(t, 13.5, set.TotalLinearMetres, 1e-9)
}

func TestLoadRoomSet_SVG(t *testing.T) {
	data := []byte(`<svg viewBox="0 0 500 500"><rect id="Room_1" x="0" y="0" width="300" height="200"/></svg>`)

	set, err := loadRoomSet("plan.svg", data, engine.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, svgplan.AnalysisMethod, set.AnalysisMethod)
	require.Len(t, set.Rooms, 1)
	assert.InDelta(t, 6.0, set.TotalCarpetableArea, 1e-9)
}

func TestPrintQuote(t *testing.T) {
	set, err := loadRoomSet("x.json", []byte(`{"rooms":[{"name":"Den","category":"study","dimensions":{"length":3,"width":3}}],"warnings":["blurry"]}`), engine.DefaultSettings())
	require.NoError(t, err)

	var out bytes.Buffer
	printQuote(&out, set, 3.66)
	assert.Contains(t, out.String(), "Den")
	assert.Contains(t, out.String(), "Total carpet area: 9.00 m2")
	assert.Contains(t, out.String(), "warning: blurry")
}
