package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
)

func newAssignmentService(tickets *mockTicketRepo, users *mockUserRepo, groups *mockGroupRepo, redirects *mockRedirectRepo, dispatcher events.Dispatcher) *AssignmentService {
	if users == nil {
		users = &mockUserRepo{}
	}
	if groups == nil {
		groups = &mockGroupRepo{}
	}
	if redirects == nil {
		redirects = &mockRedirectRepo{}
	}
	return NewAssignmentService(AssignmentDependencies{
		TicketRepo:   tickets,
		UserRepo:     users,
		GroupRepo:    groups,
		RedirectRepo: redirects,
		Dispatcher:   dispatcher,
	})
}

func openTicketWithSpoc(spocID int64) func(ctx context.Context, id int64) (*domain.Ticket, error) {
	return func(ctx context.Context, id int64) (*domain.Ticket, error) {
		return &domain.Ticket{
			ID:        id,
			TicketKey: "TKT-AB12CD34",
			Title:     "VPN not connecting",
			Status:    domain.TicketStatusOpen,
			CreatedBy: 2,
			SpocID:    int64Ptr(spocID),
			GroupID:   5,
		}, nil
	}
}

func TestAssignBySpocPublishesEvent(t *testing.T) {
	tickets := &mockTicketRepo{getByIDFunc: openTicketWithSpoc(3)}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Email: "dev@example.com", Role: domain.RoleDeveloper, IsActive: true}, nil
		},
	}
	dispatcher := &recordingDispatcher{}
	svc := newAssignmentService(tickets, users, nil, nil, dispatcher)

	ticket, err := svc.Assign(context.Background(), activeUser(3, domain.RoleTeamLead), 1, 7, "picking this up")
	require.NoError(t, err)
	require.NotNil(t, ticket.AssignedTo)
	assert.Equal(t, int64(7), *ticket.AssignedTo)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventTicketAssigned, event.Type)
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(7), payload.AssigneeID)
	assert.Equal(t, "VPN not connecting", payload.Title)
}

func TestAssignForbiddenForNonSpoc(t *testing.T) {
	tickets := &mockTicketRepo{getByIDFunc: openTicketWithSpoc(3)}
	svc := newAssignmentService(tickets, nil, nil, nil, nil)

	_, err := svc.Assign(context.Background(), activeUser(99, domain.RoleDeveloper), 1, 7, "")
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestAssignRejectsDeactivatedAssignee(t *testing.T) {
	tickets := &mockTicketRepo{getByIDFunc: openTicketWithSpoc(3)}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleDeveloper, IsActive: false}, nil
		},
	}
	svc := newAssignmentService(tickets, users, nil, nil, nil)

	_, err := svc.Assign(context.Background(), activeUser(1, domain.RoleAdmin), 1, 7, "")
	assertDomainCode(t, err, "CONFLICT")
}

func TestAssignUnknownAssigneeNotFound(t *testing.T) {
	tickets := &mockTicketRepo{getByIDFunc: openTicketWithSpoc(3)}
	svc := newAssignmentService(tickets, &mockUserRepo{}, nil, nil, nil)

	_, err := svc.Assign(context.Background(), activeUser(1, domain.RoleAdmin), 1, 404, "")
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestRedirectRequiresRemark(t *testing.T) {
	svc := newAssignmentService(&mockTicketRepo{}, nil, nil, nil, nil)

	_, err := svc.Redirect(context.Background(), activeUser(1, domain.RoleAdmin), 1, 6, 8, "")
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRedirectMovesTicketAndWritesAuditRow(t *testing.T) {
	tickets := &mockTicketRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Ticket, error) {
			ticket, _ := openTicketWithSpoc(3)(ctx, id)
			ticket.AssignedTo = int64Ptr(7)
			return ticket, nil
		},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Email: "spoc@example.com", Role: domain.RoleTeamLead, IsActive: true}, nil
		},
	}
	redirects := &mockRedirectRepo{}
	var audit *domain.Redirect
	redirects.createFunc = func(ctx context.Context, redirect *domain.Redirect) error {
		redirect.ID = 1
		audit = redirect
		return nil
	}
	dispatcher := &recordingDispatcher{}
	svc := newAssignmentService(tickets, users, nil, redirects, dispatcher)

	ticket, err := svc.Redirect(context.Background(), activeUser(3, domain.RoleTeamLead), 1, 6, 8, "belongs to network team")
	require.NoError(t, err)

	assert.Equal(t, int64(6), ticket.GroupID)
	require.NotNil(t, ticket.SpocID)
	assert.Equal(t, int64(8), *ticket.SpocID)
	assert.Nil(t, ticket.AssignedTo, "redirect clears the assignee")

	require.NotNil(t, audit)
	assert.Equal(t, int64(5), audit.FromGroupID)
	assert.Equal(t, int64(6), audit.ToGroupID)
	require.NotNil(t, audit.FromSpocID)
	assert.Equal(t, int64(3), *audit.FromSpocID)
	assert.Equal(t, int64(8), audit.ToSpocID)
	assert.Equal(t, "belongs to network team", audit.Remark)
	assert.Equal(t, int64(3), audit.RedirectedBy)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTicketRedirected, dispatcher.published[0].Type)
}

func TestRedirectRejectsInactiveTargetGroup(t *testing.T) {
	tickets := &mockTicketRepo{getByIDFunc: openTicketWithSpoc(3)}
	groups := &mockGroupRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.BusinessUnitGroup, error) {
			return &domain.BusinessUnitGroup{ID: id, Name: "Decommissioned", IsActive: false}, nil
		},
	}
	svc := newAssignmentService(tickets, nil, groups, nil, nil)

	_, err := svc.Redirect(context.Background(), activeUser(1, domain.RoleAdmin), 1, 6, 8, "moving over")
	assertDomainCode(t, err, "CONFLICT")
}

func TestRedirectOnDeletedTicketConflicts(t *testing.T) {
	tickets := &mockTicketRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Status: domain.TicketStatusDeleted, IsDeleted: true, GroupID: 5}, nil
		},
	}
	svc := newAssignmentService(tickets, nil, nil, nil, nil)

	_, err := svc.Redirect(context.Background(), activeUser(1, domain.RoleAdmin), 1, 6, 8, "moving over")
	assertDomainCode(t, err, "CONFLICT")
}
