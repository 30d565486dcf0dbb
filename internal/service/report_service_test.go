package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
)

type mockReportRepo struct {
	countByStatusFunc   func(ctx context.Context) ([]repository.StatusCount, error)
	countByGroupFunc    func(ctx context.Context) ([]repository.StatusCount, error)
	countByPriorityFunc func(ctx context.Context) ([]repository.StatusCount, error)
	openedResolvedFunc  func(ctx context.Context, from, to time.Time) (int64, int64, error)
}

func (m *mockReportRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return nil, nil
}

func (m *mockReportRepo) CountByGroup(ctx context.Context) ([]repository.StatusCount, error) {
	if m.countByGroupFunc != nil {
		return m.countByGroupFunc(ctx)
	}
	return nil, nil
}

func (m *mockReportRepo) CountByPriority(ctx context.Context) ([]repository.StatusCount, error) {
	if m.countByPriorityFunc != nil {
		return m.countByPriorityFunc(ctx)
	}
	return nil, nil
}

func (m *mockReportRepo) OpenedResolvedBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	if m.openedResolvedFunc != nil {
		return m.openedResolvedFunc(ctx, from, to)
	}
	return 0, 0, nil
}

func TestGetSummaryAdminOnly(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, &mockTicketRepo{})

	_, err := svc.GetSummary(context.Background(), activeUser(9, domain.RoleManager), time.Time{}, time.Time{})
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestGetSummaryDefaultsWindowToLastMonth(t *testing.T) {
	var gotFrom, gotTo time.Time
	reports := &mockReportRepo{
		countByStatusFunc: func(ctx context.Context) ([]repository.StatusCount, error) {
			return []repository.StatusCount{{Key: "open", Count: 5}}, nil
		},
		openedResolvedFunc: func(ctx context.Context, from, to time.Time) (int64, int64, error) {
			gotFrom, gotTo = from, to
			return 12, 8, nil
		},
	}
	svc := NewReportService(reports, &mockTicketRepo{})

	summary, err := svc.GetSummary(context.Background(), activeUser(1, domain.RoleAdmin), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.Opened)
	assert.Equal(t, int64(8), summary.Resolved)
	require.Len(t, summary.ByStatus, 1)
	assert.Equal(t, "open", summary.ByStatus[0].Key)
	assert.WithinDuration(t, time.Now(), gotTo, time.Minute)
	assert.WithinDuration(t, gotTo.AddDate(0, -1, 0), gotFrom, time.Minute)
}

func TestGetSummaryRejectsInvertedWindow(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, &mockTicketRepo{})
	now := time.Now()

	_, err := svc.GetSummary(context.Background(), activeUser(1, domain.RoleAdmin), now, now.Add(-time.Hour))
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestExportTicketsWritesCSV(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	resolved := created.Add(3 * time.Hour)
	tickets := &mockTicketRepo{
		listFunc: func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
			assert.Equal(t, 10000, filter.Limit)
			return []domain.Ticket{{
				TicketKey:         "TKT-AB12CD34",
				Title:             "VPN not connecting",
				Type:              domain.TicketTypeSupport,
				Status:            domain.TicketStatusResolved,
				Priority:          domain.TicketPriorityHigh,
				CreatedBy:         9,
				AssignedTo:        int64Ptr(7),
				SpocID:            int64Ptr(3),
				GroupID:           5,
				EstimatedDuration: "120 minutes",
				CreatedAt:         created,
				ResolvedAt:        &resolved,
			}}, nil
		},
	}
	svc := NewReportService(&mockReportRepo{}, tickets)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportTickets(context.Background(), activeUser(1, domain.RoleAdmin), repository.TicketFilter{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(ticketExportHeader, ","), lines[0])
	assert.Contains(t, lines[1], "TKT-AB12CD34")
	assert.Contains(t, lines[1], "2026-08-01T10:00:00Z")
	assert.Contains(t, lines[1], "2026-08-01T13:00:00Z")
}

func TestExportTicketsAdminOnly(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, &mockTicketRepo{})

	var buf bytes.Buffer
	err := svc.ExportTickets(context.Background(), activeUser(9, domain.RoleDeveloper), repository.TicketFilter{}, &buf)
	assertDomainCode(t, err, "FORBIDDEN")
}
