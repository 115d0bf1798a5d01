package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-estimator/internal/estimator/capture"
	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/models"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	m := NewSessionManager(engine.DefaultSettings())

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	assert.True(t, m.Remove(s.ID))
	assert.False(t, m.Remove(s.ID))
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
}

func TestSession_ViewOfFreshSession(t *testing.T) {
	s := NewSessionManager(engine.DefaultSettings()).Create()

	v := s.View()
	assert.Equal(t, s.ID, v.ID)
	assert.Equal(t, capture.Idle, v.Capture.State)
	assert.NotNil(t, v.Capture.Points)
	assert.Nil(t, v.Capture.Draft)
	assert.Zero(t, v.UndoDepth)
}

func TestSession_DoCaptureAndResize(t *testing.T) {
	s := NewSessionManager(engine.DefaultSettings()).Create()

	err := s.Do(func(st State) error {
		st.Workspace.Load(models.RoomSet{Canvas: models.Canvas{Width: 400, Height: 400}})
		st.Customer.Name = "Pat"
		require.NoError(t, st.Capture.StartRoom())
		require.NoError(t, st.Capture.AddPoint(models.Point{X: 100, Y: 100}))
		return nil
	})
	require.NoError(t, err)

	v := s.Resize(models.Canvas{Width: 800, Height: 200})
	assert.Equal(t, "Pat", v.Customer.Name)
	assert.Equal(t, capture.Drawing, v.Capture.State)
	require.NotNil(t, v.Capture.Draft)
	assert.Equal(t, []models.Point{{X: 200, Y: 50}}, v.Capture.Points)
	assert.Equal(t, models.Canvas{Width: 800, Height: 200}, v.RoomSet.Canvas)
}

func TestSession_DoSerializes(t *testing.T) {
	s := NewSessionManager(engine.DefaultSettings()).Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(st State) error {
				_, err := st.Workspace.AddBoundaryRoom(models.Room{Category: models.CategoryStudy, Carpetable: true},
					[]models.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}})
				return err
			})
		}()
	}
	wg.Wait()

	v := s.View()
	assert.Len(t, v.RoomSet.Rooms, 20)
	assert.Equal(t, 10, v.UndoDepth)
}
