package capture

import (
	"errors"
	"slices"

	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Manual room capture
// ============================================================

type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrAlreadyDrawing = errors.New("a room is already being drawn")
	ErrNotDrawing     = errors.New("no room is being drawn")
)

// Finalizer turns a finished outline into a stored room.
type Finalizer interface {
	AddBoundaryRoom(draft models.Room, points []models.Point) (models.Room, error)
}

// Capture collects outline points for one room at a time. Between rooms it
// sits in Idle and can be restarted indefinitely.
type Capture struct {
	state  State
	points []models.Point
	draft  models.Room
}

func New() *Capture {
	return &Capture{}
}

func (c *Capture) State() State {
	return c.state
}

// Points returns a copy of the in-progress outline.
func (c *Capture) Points() []models.Point {
	return slices.Clone(c.points)
}

// Draft returns the room being drawn; ok is false when Idle.
func (c *Capture) Draft() (models.Room, bool) {
	if c.state != Drawing {
		return models.Room{}, false
	}
	return c.draft, true
}

// StartRoom begins a new outline with a carpetable bedroom draft.
func (c *Capture) StartRoom() error {
	if c.state == Drawing {
		return ErrAlreadyDrawing
	}

	c.points = nil
	c.draft = models.Room{
		Category:   models.CategoryBedroom,
		Carpetable: models.CategoryBedroom.Carpetable(),
	}
	c.state = Drawing
	return nil
}

func (c *Capture) AddPoint(p models.Point) error {
	if c.state != Drawing {
		return ErrNotDrawing
	}
	c.points = append(c.points, p)
	return nil
}

func (c *Capture) SetName(name string) error {
	if c.state != Drawing {
		return ErrNotDrawing
	}
	c.draft.Name = name
	return nil
}

// SetCategory changes the draft category and resets carpetable to its policy.
func (c *Capture) SetCategory(cat models.Category) error {
	if c.state != Drawing {
		return ErrNotDrawing
	}
	c.draft.Category = cat
	c.draft.Carpetable = cat.Carpetable()
	return nil
}

func (c *Capture) SetCarpetable(carpetable bool) error {
	if c.state != Drawing {
		return ErrNotDrawing
	}
	c.draft.Carpetable = carpetable
	return nil
}

// Finish hands the outline to f. With fewer than 3 points it fails with
// geometry.ErrTooFewPoints and stays in Drawing.
func (c *Capture) Finish(f Finalizer) (models.Room, error) {
	if c.state != Drawing {
		return models.Room{}, ErrNotDrawing
	}
	if len(c.points) < geometry.MinPolygonPoints {
		return models.Room{}, geometry.ErrTooFewPoints
	}

	room, err := f.AddBoundaryRoom(c.draft, c.Points())
	if err != nil {
		return models.Room{}, err
	}
	c.reset()
	return room, nil
}

// Cancel drops the outline and draft without touching any room set.
func (c *Capture) Cancel() {
	c.reset()
}

// Rescale follows a canvas resize for the in-progress outline.
func (c *Capture) Rescale(sx, sy float64) {
	c.points = geometry.Rescale(c.points, sx, sy)
}

func (c *Capture) reset() {
	c.state = Idle
	c.points = nil
	c.draft = models.Room{}
}
