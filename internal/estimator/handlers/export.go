package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"carpet-estimator/internal/estimator/export"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/service"
)

// ============================================================
// Exports
// ============================================================

func (h *EstimatorHandler) quoteOf(s *service.Session) export.Quote {
	view := s.View()
	return export.Quote{
		Customer:  view.Customer,
		Rooms:     view.RoomSet,
		Created:   h.now(),
		RollWidth: h.sessions.Settings().RollWidth,
	}
}

func (h *EstimatorHandler) ExportPDF(c fiber.Ctx, s *service.Session) error {
	data, err := export.BuildQuotePDF(h.quoteOf(s))
	return h.sendExport(c, s, "pdf", "application/pdf", data, err)
}

func (h *EstimatorHandler) ExportXLSX(c fiber.Ctx, s *service.Session) error {
	data, err := export.BuildQuoteXLSX(h.quoteOf(s))
	return h.sendExport(c, s, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data, err)
}

func (h *EstimatorHandler) ExportSVG(c fiber.Ctx, s *service.Session) error {
	svg := h.renderer.Render(s.View().RoomSet)
	return h.sendExport(c, s, "svg", "image/svg+xml", []byte(svg), nil)
}

func (h *EstimatorHandler) sendExport(c fiber.Ctx, s *service.Session, format, contentType string, data []byte, err error) error {
	metrics.IncExport(format, err)
	if err != nil {
		log.Printf("[EXPORT] Session %s: %s export failed: %v", s.ID, format, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	log.Printf("[EXPORT] Session %s: %s (%d bytes)", s.ID, format, len(data))
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.%s"`, s.ID, format))
	return c.Send(data)
}

// ============================================================
// Saved quotes
// ============================================================

// SaveQuote stores the session's customer and current room set.
func (h *EstimatorHandler) SaveQuote(c fiber.Ctx, s *service.Session) error {
	if h.quotes == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "quote store not configured"})
	}

	view := s.View()
	q, err := h.quotes.Save(c.Context(), view.Customer, view.RoomSet)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(q)
}

func (h *EstimatorHandler) ListQuotes(c fiber.Ctx) error {
	if h.quotes == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "quote store not configured"})
	}

	list, err := h.quotes.List(c.Context(), queryInt(c, "limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

func (h *EstimatorHandler) GetQuote(c fiber.Ctx) error {
	if h.quotes == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "quote store not configured"})
	}

	q, err := h.quotes.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(q)
}
