package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/service"
)

// measurement accepts a JSON number or string; strings keep whatever the
// user typed ("3.2m") for ParseMeasurement.
type measurement string

func (m *measurement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = measurement(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("measurement must be a number or string")
	}
	*m = measurement(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

type patchRoomRequest struct {
	Name              *string      `json:"name"`
	Category          *string      `json:"category"`
	Carpetable        *bool        `json:"carpetable"`
	ObstacleReduction *float64     `json:"obstacleReduction"`
	Length            *measurement `json:"length"`
	Width             *measurement `json:"width"`
}

type roomEdit struct {
	op    string
	apply func(w *engine.Workspace, id string) error
}

func (req patchRoomRequest) edits() ([]roomEdit, error) {
	var out []roomEdit

	if req.Name != nil {
		name := *req.Name
		out = append(out, roomEdit{"rename", func(w *engine.Workspace, id string) error {
			_, err := w.Rename(id, name)
			return err
		}})
	}
	if req.Category != nil {
		cat, ok := models.ParseCategory(*req.Category)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", *req.Category)
		}
		out = append(out, roomEdit{"category", func(w *engine.Workspace, id string) error {
			_, err := w.SetCategory(id, cat)
			return err
		}})
	}
	if req.Carpetable != nil {
		carpetable := *req.Carpetable
		out = append(out, roomEdit{"carpetable", func(w *engine.Workspace, id string) error {
			_, err := w.SetCarpetable(id, carpetable)
			return err
		}})
	}
	if req.ObstacleReduction != nil {
		fraction := *req.ObstacleReduction
		out = append(out, roomEdit{"obstacle", func(w *engine.Workspace, id string) error {
			_, err := w.SetObstacleReduction(id, fraction)
			return err
		}})
	}
	if req.Length != nil {
		raw := string(*req.Length)
		out = append(out, roomEdit{"length", func(w *engine.Workspace, id string) error {
			_, err := w.EditDimension(id, engine.FieldLength, raw)
			return err
		}})
	}
	if req.Width != nil {
		raw := string(*req.Width)
		out = append(out, roomEdit{"width", func(w *engine.Workspace, id string) error {
			_, err := w.EditDimension(id, engine.FieldWidth, raw)
			return err
		}})
	}

	if len(out) == 0 {
		return nil, errors.New("no editable fields given")
	}
	return out, nil
}

// ============================================================
// Room edits
// ============================================================

// PatchRoom applies each given field as its own undoable edit, in the order
// name, category, carpetable, obstacleReduction, length, width.
func (h *EstimatorHandler) PatchRoom(c fiber.Ctx, s *service.Session) error {
	var req patchRoomRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	edits, err := req.edits()
	if err != nil {
		return badRequest(c, err)
	}

	roomID := c.Params("room")
	var applied []string
	err = s.Do(func(st service.State) error {
		if _, err := st.Workspace.Room(roomID); err != nil {
			return err
		}
		done, err := applyEdits(st.Workspace, roomID, edits)
		applied = done
		return err
	})
	if err != nil {
		return editFailure(c, s, err, applied)
	}

	view := s.View()
	room, _ := lookupRoom(view.RoomSet, roomID)
	return c.JSON(fiber.Map{"room": room, "session": view})
}

// applyEdits runs edits in order and stops at the first failure. It returns
// the ops that went through.
func applyEdits(w *engine.Workspace, roomID string, edits []roomEdit) ([]string, error) {
	var applied []string
	for _, e := range edits {
		err := e.apply(w, roomID)
		metrics.IncEdit(e.op, err)
		if err != nil {
			return applied, fmt.Errorf("%s: %w", e.op, err)
		}
		applied = append(applied, e.op)
	}
	return applied, nil
}

// editFailure reports a PATCH that stopped partway. When some fields were
// already applied the body carries them with the current session so the
// client can see what changed; each applied field is still undoable.
func editFailure(c fiber.Ctx, s *service.Session, err error, applied []string) error {
	if len(applied) == 0 {
		return writeError(c, err)
	}
	return c.Status(errorStatus(c, err)).JSON(fiber.Map{
		"error":   err.Error(),
		"applied": applied,
		"session": s.View(),
	})
}

func (h *EstimatorHandler) DeleteRoom(c fiber.Ctx, s *service.Session) error {
	roomID := c.Params("room")
	err := s.Do(func(st service.State) error {
		err := st.Workspace.DeleteRoom(roomID)
		metrics.IncEdit("delete", err)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// Resize records the new drawing-surface size; stored outlines and the
// capture in progress are stretched to match.
func (h *EstimatorHandler) Resize(c fiber.Ctx, s *service.Session) error {
	var canvas models.Canvas
	if err := decodeBody(c, &canvas); err != nil {
		return badRequest(c, err)
	}
	if canvas.IsZero() {
		return badRequest(c, errors.New("width and height must be positive"))
	}
	return c.JSON(s.Resize(canvas))
}

func (h *EstimatorHandler) Undo(c fiber.Ctx, s *service.Session) error {
	var undone bool
	_ = s.Do(func(st service.State) error {
		undone = st.Workspace.Undo()
		return nil
	})
	metrics.IncUndo(undone)
	return c.JSON(fiber.Map{"undone": undone, "session": s.View()})
}

var errNoRooms = errors.New("no rooms to save")

// SaveManual promotes the current rooms to a manual analysis result.
func (h *EstimatorHandler) SaveManual(c fiber.Ctx, s *service.Session) error {
	err := s.Do(func(st service.State) error {
		if len(st.Workspace.RoomSet().Rooms) == 0 {
			return errNoRooms
		}
		st.Workspace.SaveManual()
		return nil
	})
	if err != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(s.View())
}

func lookupRoom(set models.RoomSet, id string) (models.Room, bool) {
	if i := set.IndexOf(id); i >= 0 {
		return set.Rooms[i], true
	}
	return models.Room{}, false
}
