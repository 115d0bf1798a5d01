package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Policies(t *testing.T) {
	carpetable := map[Category]bool{
		CategoryBedroom:  true,
		CategoryLiving:   true,
		CategoryDining:   true,
		CategoryKitchen:  false,
		CategoryBathroom: false,
		CategoryHallway:  true,
		CategoryStudy:    true,
		CategoryLaundry:  false,
		CategoryGarage:   false,
		CategoryOther:    true,
	}
	require.Len(t, Categories(), len(carpetable))
	for c, want := range carpetable {
		assert.Equal(t, want, c.Carpetable(), c.String())
	}
}

func TestParseCategory_Known(t *testing.T) {
	c, ok := ParseCategory(" Kitchen ")
	assert.True(t, ok)
	assert.Equal(t, CategoryKitchen, c)
}

func TestParseCategory_UnknownFallsBackToOther(t *testing.T) {
	c, ok := ParseCategory("sauna")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, c)
	assert.True(t, c.Carpetable())
}

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Category `json:"c"`
	}{C: CategoryLaundry})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"laundry"}`, string(data))

	var room Room
	require.NoError(t, json.Unmarshal([]byte(`{"category":"walk-in robe"}`), &room))
	assert.Equal(t, CategoryOther, room.Category)
}

func TestCategory_OutOfRange(t *testing.T) {
	c := Category(200)
	assert.Equal(t, "other", c.String())
	assert.True(t, c.Carpetable())
}

func TestRoom_DisplayName(t *testing.T) {
	assert.Equal(t, "Room 3", Room{}.DisplayName(2))
	assert.Equal(t, "Lounge", Room{Name: "Lounge"}.DisplayName(0))
}
