package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/authz"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// AssignmentService handles ticket assignment and redirect operations.
type AssignmentService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	groups     repository.GroupRepository
	redirects  repository.RedirectRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo   repository.TicketRepository
	UserRepo     repository.UserRepository
	GroupRepo    repository.GroupRepository
	RedirectRepo repository.RedirectRepository
	Dispatcher   events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		groups:     deps.GroupRepo,
		redirects:  deps.RedirectRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Assign sets the ticket assignee. Restricted to the current SPOC or an
// admin. The new assignee is notified best-effort; a failed email never
// rolls back the assignment.
func (s *AssignmentService) Assign(ctx context.Context, actor *domain.User, ticketID, assigneeID int64, remark string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted {
		return nil, apperrors.NewConflict("ticket is deleted", nil)
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionAssign) {
		return nil, apperrors.NewForbidden("only the SPOC or an admin may assign this ticket")
	}
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	if !assignee.IsActive {
		return nil, apperrors.NewConflict("assignee is deactivated", map[string]any{"user_id": assigneeID})
	}

	ticket.AssignedTo = &assignee.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketAssignedPayload{
			TicketKey:  ticket.TicketKey,
			Title:      ticket.Title,
			AssigneeID: assignee.ID,
			Remark:     strings.TrimSpace(remark),
		},
	})
	return ticket, nil
}

// Redirect moves a ticket to another business unit group and SPOC, writing
// an append-only audit row. Target group, target SPOC and a non-empty remark
// are all mandatory.
func (s *AssignmentService) Redirect(ctx context.Context, actor *domain.User, ticketID, toGroupID, toSpocID int64, remark string) (*domain.Ticket, error) {
	if strings.TrimSpace(remark) == "" {
		return nil, apperrors.NewValidationError("remark required for redirect", nil)
	}
	if toGroupID == 0 || toSpocID == 0 {
		return nil, apperrors.NewValidationError("target group and target SPOC required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted {
		return nil, apperrors.NewConflict("ticket is deleted", nil)
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionRedirect) {
		return nil, apperrors.NewForbidden("only the SPOC or an admin may redirect this ticket")
	}

	group, err := s.groups.GetByID(ctx, toGroupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("business unit group", map[string]any{"group_id": toGroupID})
		}
		return nil, apperrors.MapError(err)
	}
	if !group.IsActive {
		return nil, apperrors.NewConflict("target group inactive", map[string]any{"group_id": toGroupID})
	}
	spoc, err := s.users.GetByID(ctx, toSpocID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": toSpocID})
		}
		return nil, apperrors.MapError(err)
	}
	if !spoc.IsActive {
		return nil, apperrors.NewConflict("target SPOC is deactivated", map[string]any{"user_id": toSpocID})
	}

	redirect := &domain.Redirect{
		TicketID:     ticket.ID,
		FromGroupID:  ticket.GroupID,
		ToGroupID:    group.ID,
		FromSpocID:   ticket.SpocID,
		ToSpocID:     spoc.ID,
		Remark:       strings.TrimSpace(remark),
		RedirectedBy: actor.ID,
	}

	ticket.GroupID = group.ID
	ticket.SpocID = &spoc.ID
	ticket.AssignedTo = nil
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.redirects.Create(ctx, redirect); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRedirected,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketRedirectedPayload{
			TicketKey:   ticket.TicketKey,
			FromGroupID: redirect.FromGroupID,
			ToGroupID:   redirect.ToGroupID,
			NewSpocID:   redirect.ToSpocID,
			Remark:      redirect.Remark,
		},
	})
	return ticket, nil
}

func (s *AssignmentService) loadTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *AssignmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
