package handlers

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/auth"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/service"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// ReportsHandler exposes admin dashboards.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Summary GET /admin/reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var from, to time.Time
	if parsed := parseTime(c.Query("from")); parsed != nil {
		from = *parsed
	}
	if parsed := parseTime(c.Query("to")); parsed != nil {
		to = *parsed
	}
	summary, err := h.reports.GetSummary(c.Context(), actor, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// ExportTickets GET /admin/reports/tickets/export.
func (h *ReportsHandler) ExportTickets(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseTicketQuery(c)
	var buf bytes.Buffer
	if err := h.reports.ExportTickets(c.Context(), actor, filter, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(buf.Bytes())
}
