package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"carpet-estimator/internal/estimator/detection"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/service"
	"carpet-estimator/internal/estimator/svgplan"
)

const (
	sourceDetected = "ai"
	sourceJSON     = "json"
	sourceSVG      = "svg"
)

// ============================================================
// Analysis
// ============================================================

// Analyze uploads the floorPlan image to the analyzer and installs the
// detected rooms. Optional width/height query parameters give the canvas the
// detected boundaries are drawn on.
func (h *EstimatorHandler) Analyze(c fiber.Ctx, s *service.Session) error {
	if h.analyzer == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "analyzer not configured"})
	}

	fileHeader, err := c.FormFile("floorPlan")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "floorPlan file required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	log.Printf("[ESTIMATOR] Session %s: analyzing %s", s.ID, fileHeader.Filename)
	start := time.Now()

	lastLogged := -1
	text, err := h.analyzer.Analyze(c.Context(), fileHeader.Filename, file, func(p detection.Progress) {
		if step := p.Percent / 25; step > lastLogged {
			lastLogged = step
			log.Printf("[ANALYZE] Session %s: %d%%", s.ID, p.Percent)
		}
	})
	if err != nil {
		metrics.ObserveAnalysis(sourceDetected, err, time.Since(start))
		log.Printf("[ANALYZE] Session %s: analyzer error: %v", s.ID, err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	set, err := detection.ParseAnalysis(text)
	metrics.ObserveAnalysis(sourceDetected, err, time.Since(start))
	if err != nil {
		return writeError(c, err)
	}
	if canvas := canvasFromQuery(c); !canvas.IsZero() {
		set.Canvas = canvas
	}

	return h.install(c, s, set)
}

// Import installs a room set from a request body: either analyzer-style JSON
// or an SVG floor plan.
func (h *EstimatorHandler) Import(c fiber.Ctx, s *service.Session) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return badRequest(c, errEmptyBody)
	}

	start := time.Now()
	var set models.RoomSet

	if isSVG(c.Get("Content-Type"), body) {
		plan, err := svgplan.ParsePlan(bytes.NewReader(body))
		metrics.ObserveAnalysis(sourceSVG, err, time.Since(start))
		if err != nil {
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		set = plan.RoomSet(h.sessions.Settings())
	} else {
		parsed, err := detection.ParseAnalysis(string(body))
		metrics.ObserveAnalysis(sourceJSON, err, time.Since(start))
		if err != nil {
			return writeError(c, err)
		}
		set = parsed
	}

	if canvas := canvasFromQuery(c); !canvas.IsZero() {
		set.Canvas = canvas
	}
	return h.install(c, s, set)
}

func (h *EstimatorHandler) install(c fiber.Ctx, s *service.Session, set models.RoomSet) error {
	_ = s.Do(func(st service.State) error {
		st.Workspace.Load(set)
		return nil
	})

	view := s.View()
	log.Printf("[ESTIMATOR] Session %s: loaded %d rooms (%s), %.2f m2 carpetable",
		s.ID, len(view.RoomSet.Rooms), view.RoomSet.AnalysisMethod, view.RoomSet.TotalCarpetableArea)
	return c.JSON(view)
}

func isSVG(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "svg") || strings.Contains(ct, "xml") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

func canvasFromQuery(c fiber.Ctx) models.Canvas {
	w, errW := strconv.ParseFloat(c.Query("width"), 64)
	hgt, errH := strconv.ParseFloat(c.Query("height"), 64)
	if errors.Join(errW, errH) != nil {
		return models.Canvas{}
	}
	return models.Canvas{Width: w, Height: hgt}
}
