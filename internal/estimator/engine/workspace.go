package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"

	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/history"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/yield"
)

// ============================================================
// Workspace
// ============================================================

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrUnknownDimension = errors.New("unknown dimension field")
)

type DimensionField string

const (
	FieldLength DimensionField = "length"
	FieldWidth  DimensionField = "width"
)

type Settings struct {
	Scale        float64
	RollWidth    float64
	HistoryDepth int
}

func DefaultSettings() Settings {
	return Settings{
		Scale:        geometry.DefaultScale,
		RollWidth:    yield.RollWidth,
		HistoryDepth: history.DefaultDepth,
	}
}

// Workspace holds one live room set and its undo history. It is not safe for
// concurrent use; callers serialize operations.
type Workspace struct {
	settings Settings
	set      models.RoomSet
	history  *history.Manager[models.RoomSet]
	newID    func() string
}

type Option func(*Workspace)

// WithIDGenerator replaces the UUID generator used for new rooms.
func WithIDGenerator(fn func() string) Option {
	return func(w *Workspace) {
		w.newID = fn
	}
}

func New(settings Settings, opts ...Option) *Workspace {
	defaults := DefaultSettings()
	if settings.Scale <= 0 {
		settings.Scale = defaults.Scale
	}
	if settings.RollWidth <= 0 {
		settings.RollWidth = defaults.RollWidth
	}
	if settings.HistoryDepth <= 0 {
		settings.HistoryDepth = defaults.HistoryDepth
	}

	w := &Workspace{
		settings: settings,
		history:  history.New[models.RoomSet](settings.HistoryDepth),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func clone[T any](v T) T {
	return deepcopy.Copy(v).(T)
}

func (w *Workspace) Settings() Settings {
	return w.settings
}

// RoomSet returns an independent copy of the live room set.
func (w *Workspace) RoomSet() models.RoomSet {
	return clone(w.set)
}

func (w *Workspace) Room(id string) (models.Room, error) {
	i := w.set.IndexOf(id)
	if i < 0 {
		return models.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return clone(w.set.Rooms[i]), nil
}

// UndoDepth is the number of edits that can currently be undone.
func (w *Workspace) UndoDepth() int {
	return w.history.Len()
}

// ============================================================
// Whole-set operations
// ============================================================

// Load installs a new analysis result. Every room is normalized, duplicate or
// missing ids are replaced, and the undo history is discarded.
func (w *Workspace) Load(set models.RoomSet) {
	next := clone(set)
	if next.Canvas.IsZero() {
		next.Canvas = w.set.Canvas
	}

	seen := make(map[string]bool, len(next.Rooms))
	for i := range next.Rooms {
		r := &next.Rooms[i]
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" || seen[r.ID] {
			r.ID = w.newID()
		}
		seen[r.ID] = true
		normalizeRoom(r, w.settings)
	}
	summarize(&next)

	w.set = next
	w.history.Clear()
}

// SaveManual turns the rooms captured so far into a manual analysis result.
func (w *Workspace) SaveManual() models.RoomSet {
	w.Load(ManualResult(w.set.Rooms, w.set.Canvas))
	return w.RoomSet()
}

// Undo restores the set as it was before the latest edit. It reports false
// when there is nothing to undo.
func (w *Workspace) Undo() bool {
	prev, ok := w.history.Undo()
	if !ok {
		return false
	}

	current := w.set.Canvas
	w.set = prev
	if !current.IsZero() {
		w.rescaleTo(current)
	}
	return true
}

// Resize stretches every boundary to a new drawing-surface extent. Metric
// fields are left alone. The scale factors are returned so in-progress
// captures can follow; ok is false when nothing was rescaled.
func (w *Workspace) Resize(canvas models.Canvas) (sx, sy float64, ok bool) {
	if canvas.IsZero() {
		return 1, 1, false
	}
	old := w.set.Canvas
	if old.IsZero() {
		w.set.Canvas = canvas
		return 1, 1, false
	}
	if old == canvas {
		return 1, 1, false
	}

	sx, sy = canvas.Width/old.Width, canvas.Height/old.Height
	w.rescaleTo(canvas)
	return sx, sy, true
}

func (w *Workspace) rescaleTo(canvas models.Canvas) {
	old := w.set.Canvas
	w.set.Canvas = canvas
	if old.IsZero() || old == canvas {
		return
	}

	sx, sy := canvas.Width/old.Width, canvas.Height/old.Height
	for i := range w.set.Rooms {
		w.set.Rooms[i].Boundary = geometry.Rescale(w.set.Rooms[i].Boundary, sx, sy)
	}
}

// ============================================================
// Room edits
// ============================================================

// mutate snapshots the current set, applies op to one room and refreshes the
// aggregates.
func (w *Workspace) mutate(id string, op func(r *models.Room)) (models.Room, error) {
	i := w.set.IndexOf(id)
	if i < 0 {
		return models.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}

	w.history.Snapshot(w.set)
	op(&w.set.Rooms[i])
	summarize(&w.set)
	return clone(w.set.Rooms[i]), nil
}

// EditDimension applies a raw numeric entry to length or width. Malformed
// input reads as 0.
func (w *Workspace) EditDimension(id string, field DimensionField, raw string) (models.Room, error) {
	if field != FieldLength && field != FieldWidth {
		return models.Room{}, fmt.Errorf("%w: %q", ErrUnknownDimension, field)
	}
	value := ParseMeasurement(raw)

	return w.mutate(id, func(r *models.Room) {
		if field == FieldLength {
			r.Dimensions.Length = value
		} else {
			r.Dimensions.Width = value
		}
		r.ManuallyAdjusted = true
		applyDimensions(r, w.settings.RollWidth)
	})
}

func (w *Workspace) SetCategory(id string, c models.Category) (models.Room, error) {
	return w.mutate(id, func(r *models.Room) {
		applyCategory(r, c, w.settings.RollWidth)
	})
}

// SetCarpetable overrides the category policy for one room.
func (w *Workspace) SetCarpetable(id string, carpetable bool) (models.Room, error) {
	return w.mutate(id, func(r *models.Room) {
		r.Carpetable = carpetable
		deriveCarpet(r, w.settings.RollWidth)
	})
}

func (w *Workspace) SetObstacleReduction(id string, fraction float64) (models.Room, error) {
	return w.mutate(id, func(r *models.Room) {
		r.ObstacleReduction = fraction
		deriveCarpet(r, w.settings.RollWidth)
	})
}

func (w *Workspace) Rename(id, name string) (models.Room, error) {
	return w.mutate(id, func(r *models.Room) {
		r.Name = strings.TrimSpace(name)
	})
}

func (w *Workspace) DeleteRoom(id string) error {
	i := w.set.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}

	w.history.Snapshot(w.set)
	w.set.Rooms = append(w.set.Rooms[:i], w.set.Rooms[i+1:]...)
	summarize(&w.set)
	return nil
}

// AddBoundaryRoom finalizes a drawn outline and appends it with a fresh id.
func (w *Workspace) AddBoundaryRoom(draft models.Room, points []models.Point) (models.Room, error) {
	room, err := FinalizeBoundary(draft, points, w.settings)
	if err != nil {
		return models.Room{}, err
	}
	room.ID = w.newID()

	w.history.Snapshot(w.set)
	w.set.Rooms = append(w.set.Rooms, room)
	summarize(&w.set)
	return clone(room), nil
}
