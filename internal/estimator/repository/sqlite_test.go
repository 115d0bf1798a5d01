package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-estimator/internal/estimator/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func sampleSet() models.RoomSet {
	return models.RoomSet{
		Rooms: []models.Room{{
			ID:                   "r1",
			Name:                 "Bedroom 1",
			Category:             models.CategoryBedroom,
			Carpetable:           true,
			Dimensions:           models.Dimensions{Length: 4, Width: 3},
			Area:                 12,
			OriginalArea:         12,
			CarpetableArea:       12,
			LinearMetres:         8,
			Confidence:           1,
			IdentificationMethod: models.MethodManual,
			Boundary:             []models.Point{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 400}},
		}},
		TotalCarpetableArea: 12,
		TotalLinearMetres:   8,
		AnalysisMethod:      "Manual Input",
		Canvas:              models.Canvas{Width: 800, Height: 600},
	}
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	customer := models.Customer{Name: "A. Buyer", Email: "a@example.com"}

	saved, err := repo.Save(ctx, customer, sampleSet())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, customer, got.Customer)
	if diff := cmp.Diff(sampleSet(), got.RoomSet); diff != "" {
		t.Errorf("room set mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i, name := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		repo.now = func() time.Time { return at }
		q, err := repo.Save(ctx, models.Customer{Name: name}, sampleSet())
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "third", list[0].CustomerName)
	assert.Equal(t, 1, list[0].RoomCount)
	assert.Equal(t, 12.0, list[0].TotalCarpetableArea)
	assert.Equal(t, base.Add(2*time.Hour), list[0].CreatedAt)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepository_ListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	list, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
