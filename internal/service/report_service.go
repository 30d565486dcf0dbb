package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/authz"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// ReportService serves admin dashboards: aggregate counts and CSV export of
// ticket listings.
type ReportService struct {
	reports repository.ReportRepository
	tickets repository.TicketRepository
}

// NewReportService creates the service.
func NewReportService(reports repository.ReportRepository, tickets repository.TicketRepository) *ReportService {
	return &ReportService{reports: reports, tickets: tickets}
}

// Summary aggregates ticket counts for the dashboard.
type Summary struct {
	ByStatus   []repository.StatusCount `json:"by_status"`
	ByGroup    []repository.StatusCount `json:"by_group"`
	ByPriority []repository.StatusCount `json:"by_priority"`
	Opened     int64                    `json:"opened"`
	Resolved   int64                    `json:"resolved"`
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
}

// GetSummary builds the dashboard aggregates over [from, to]. Admin only.
func (s *ReportService) GetSummary(ctx context.Context, actor *domain.User, from, to time.Time) (*Summary, error) {
	if !authz.Can(actor, authz.RelNone, authz.ActionViewReports) {
		return nil, apperrors.NewForbidden("admin access required")
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	if from.After(to) {
		return nil, apperrors.NewValidationError("from must not be after to", nil)
	}

	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byGroup, err := s.reports.CountByGroup(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byPriority, err := s.reports.CountByPriority(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	opened, resolved, err := s.reports.OpenedResolvedBetween(ctx, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Summary{
		ByStatus:   byStatus,
		ByGroup:    byGroup,
		ByPriority: byPriority,
		Opened:     opened,
		Resolved:   resolved,
		From:       from,
		To:         to,
	}, nil
}

var ticketExportHeader = []string{
	"ticket_key", "title", "type", "status", "priority",
	"created_by", "assigned_to", "spoc_id", "group_id",
	"estimated_duration", "created_at", "resolved_at",
}

// ExportTickets streams the filtered ticket listing as CSV. Admin only.
func (s *ReportService) ExportTickets(ctx context.Context, actor *domain.User, filter repository.TicketFilter, w io.Writer) error {
	if !authz.Can(actor, authz.RelNone, authz.ActionViewReports) {
		return apperrors.NewForbidden("admin access required")
	}
	if filter.Limit <= 0 {
		filter.Limit = 10000
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return apperrors.MapError(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ticketExportHeader); err != nil {
		return apperrors.NewInternalError(err)
	}
	for i := range tickets {
		if err := writer.Write(ticketExportRow(&tickets[i])); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func ticketExportRow(ticket *domain.Ticket) []string {
	return []string{
		ticket.TicketKey,
		ticket.Title,
		string(ticket.Type),
		string(ticket.Status),
		string(ticket.Priority),
		strconv.FormatInt(ticket.CreatedBy, 10),
		formatOptionalID(ticket.AssignedTo),
		formatOptionalID(ticket.SpocID),
		strconv.FormatInt(ticket.GroupID, 10),
		ticket.EstimatedDuration,
		ticket.CreatedAt.Format(time.RFC3339),
		formatOptionalTime(ticket.ResolvedAt),
	}
}

func formatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
