package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"carpet-estimator/internal/estimator/capture"
	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/service"
)

type draftRequest struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	Carpetable *bool   `json:"carpetable"`
}

// validate rejects draft values before any capture state changes.
func (req draftRequest) validate() error {
	if req.Category != nil {
		if _, ok := models.ParseCategory(*req.Category); !ok {
			return fmt.Errorf("unknown category %q", *req.Category)
		}
	}
	return nil
}

// apply sets the draft fields that are present; category goes before
// carpetable so an explicit carpetable choice wins.
func (req draftRequest) apply(c *capture.Capture) error {
	if req.Name != nil {
		if err := c.SetName(*req.Name); err != nil {
			return err
		}
	}
	if req.Category != nil {
		cat, ok := models.ParseCategory(*req.Category)
		if !ok {
			return fmt.Errorf("unknown category %q", *req.Category)
		}
		if err := c.SetCategory(cat); err != nil {
			return err
		}
	}
	if req.Carpetable != nil {
		if err := c.SetCarpetable(*req.Carpetable); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================
// Manual capture
// ============================================================

// StartCapture begins a new outline. The body is optional and may carry the
// initial draft name and category.
func (h *EstimatorHandler) StartCapture(c fiber.Ctx, s *service.Session) error {
	var req draftRequest
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, err)
		}
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err)
	}

	err := s.Do(func(st service.State) error {
		if err := st.Capture.StartRoom(); err != nil {
			return err
		}
		if err := req.apply(st.Capture); err != nil {
			st.Capture.Cancel()
			return err
		}
		return nil
	})
	if err != nil {
		return captureError(c, err)
	}
	return c.JSON(s.View())
}

func (h *EstimatorHandler) AddCapturePoint(c fiber.Ctx, s *service.Session) error {
	var p models.Point
	if err := decodeBody(c, &p); err != nil {
		return badRequest(c, err)
	}

	err := s.Do(func(st service.State) error {
		return st.Capture.AddPoint(p)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// PatchCapture edits the draft of the room being drawn.
func (h *EstimatorHandler) PatchCapture(c fiber.Ctx, s *service.Session) error {
	var req draftRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := req.validate(); err != nil {
		return badRequest(c, err)
	}

	err := s.Do(func(st service.State) error {
		if st.Capture.State() != capture.Drawing {
			return capture.ErrNotDrawing
		}
		return req.apply(st.Capture)
	})
	if err != nil {
		return captureError(c, err)
	}
	return c.JSON(s.View())
}

// FinishCapture turns the outline into a room. With too few points the
// capture stays open so more points can be added.
func (h *EstimatorHandler) FinishCapture(c fiber.Ctx, s *service.Session) error {
	var room models.Room
	err := s.Do(func(st service.State) error {
		var err error
		room, err = st.Capture.Finish(st.Workspace)
		return err
	})

	switch {
	case err == nil:
		metrics.IncCapture("finished")
	case errors.Is(err, geometry.ErrTooFewPoints):
		metrics.IncCapture("rejected")
		return writeError(c, err)
	default:
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"room": room, "session": s.View()})
}

func (h *EstimatorHandler) CancelCapture(c fiber.Ctx, s *service.Session) error {
	_ = s.Do(func(st service.State) error {
		if st.Capture.State() == capture.Drawing {
			metrics.IncCapture("cancelled")
		}
		st.Capture.Cancel()
		return nil
	})
	return c.JSON(s.View())
}

// captureError reports draft validation problems as bad requests and state
// errors through writeError.
func captureError(c fiber.Ctx, err error) error {
	if errors.Is(err, capture.ErrAlreadyDrawing) || errors.Is(err, capture.ErrNotDrawing) {
		return writeError(c, err)
	}
	return badRequest(c, err)
}
