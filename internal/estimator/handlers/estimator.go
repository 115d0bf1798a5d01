package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"carpet-estimator/internal/estimator/capture"
	"carpet-estimator/internal/estimator/detection"
	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/export"
	"carpet-estimator/internal/estimator/geometry"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/repository"
	"carpet-estimator/internal/estimator/service"
)

// ============================================================
// Dependencies
// ============================================================

// Analyzer sends a floor-plan image for room detection and returns the raw
// streamed reply.
type Analyzer interface {
	Analyze(ctx context.Context, filename string, image io.Reader, onProgress func(detection.Progress)) (string, error)
}

// QuoteStore persists finished quotes.
type QuoteStore interface {
	Save(ctx context.Context, customer models.Customer, set models.RoomSet) (*repository.Quote, error)
	Get(ctx context.Context, id string) (*repository.Quote, error)
	List(ctx context.Context, limit int) ([]repository.Summary, error)
}

// ============================================================
// Estimator Handler
// ============================================================

type EstimatorHandler struct {
	sessions *service.SessionManager
	analyzer Analyzer
	quotes   QuoteStore
	renderer *export.Renderer
	now      func() time.Time
}

func NewEstimatorHandler(sessions *service.SessionManager, analyzer Analyzer, quotes QuoteStore) *EstimatorHandler {
	return &EstimatorHandler{
		sessions: sessions,
		analyzer: analyzer,
		quotes:   quotes,
		renderer: export.NewRenderer(sessions.Settings().Scale),
		now:      time.Now,
	}
}

// Register mounts the session and quote routes on r.
func (h *EstimatorHandler) Register(r fiber.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/:id", h.session(h.GetSession))
	r.Delete("/sessions/:id", h.DeleteSession)
	r.Put("/sessions/:id/customer", h.session(h.SetCustomer))

	r.Post("/sessions/:id/analyze", h.session(h.Analyze))
	r.Post("/sessions/:id/import", h.session(h.Import))

	r.Patch("/sessions/:id/rooms/:room", h.session(h.PatchRoom))
	r.Delete("/sessions/:id/rooms/:room", h.session(h.DeleteRoom))
	r.Post("/sessions/:id/resize", h.session(h.Resize))
	r.Post("/sessions/:id/undo", h.session(h.Undo))
	r.Post("/sessions/:id/manual-save", h.session(h.SaveManual))

	r.Post("/sessions/:id/capture/start", h.session(h.StartCapture))
	r.Post("/sessions/:id/capture/point", h.session(h.AddCapturePoint))
	r.Patch("/sessions/:id/capture", h.session(h.PatchCapture))
	r.Post("/sessions/:id/capture/finish", h.session(h.FinishCapture))
	r.Post("/sessions/:id/capture/cancel", h.session(h.CancelCapture))

	r.Get("/sessions/:id/export.pdf", h.session(h.ExportPDF))
	r.Get("/sessions/:id/export.xlsx", h.session(h.ExportXLSX))
	r.Get("/sessions/:id/export.svg", h.session(h.ExportSVG))

	r.Post("/sessions/:id/quotes", h.session(h.SaveQuote))
	r.Get("/quotes", h.ListQuotes)
	r.Get("/quotes/:id", h.GetQuote)
}

type sessionHandler func(c fiber.Ctx, s *service.Session) error

// session resolves the :id route parameter to a live session.
func (h *EstimatorHandler) session(next sessionHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		s, ok := h.sessions.Get(c.Params("id"))
		if !ok {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return next(c, s)
	}
}

// ============================================================
// Sessions
// ============================================================

// CreateSession starts an empty estimating session.
func (h *EstimatorHandler) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create()
	log.Printf("[ESTIMATOR] Session %s created", s.ID)
	return c.Status(http.StatusCreated).JSON(s.View())
}

func (h *EstimatorHandler) GetSession(c fiber.Ctx, s *service.Session) error {
	return c.JSON(s.View())
}

func (h *EstimatorHandler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Remove(c.Params("id")) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetCustomer replaces the customer details printed on quotes.
func (h *EstimatorHandler) SetCustomer(c fiber.Ctx, s *service.Session) error {
	var customer models.Customer
	if err := decodeBody(c, &customer); err != nil {
		return badRequest(c, err)
	}

	_ = s.Do(func(st service.State) error {
		*st.Customer = customer
		return nil
	})
	return c.JSON(s.View())
}

// ============================================================
// Errors & helpers
// ============================================================

var errEmptyBody = errors.New("empty body")

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// writeError maps domain errors to HTTP statuses.
func writeError(c fiber.Ctx, err error) error {
	return c.Status(errorStatus(c, err)).JSON(fiber.Map{"error": err.Error()})
}

// errorStatus picks the status for err and logs anything unexpected.
func errorStatus(c fiber.Ctx, err error) int {
	status := http.StatusInternalServerError
	var parseErr *detection.ParseError

	switch {
	case errors.Is(err, engine.ErrRoomNotFound), errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrUnknownDimension):
		status = http.StatusBadRequest
	case errors.Is(err, capture.ErrAlreadyDrawing), errors.Is(err, capture.ErrNotDrawing):
		status = http.StatusConflict
	case errors.Is(err, geometry.ErrTooFewPoints), errors.As(err, &parseErr):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Printf("[ESTIMATOR] %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return status
}

func queryInt(c fiber.Ctx, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}
