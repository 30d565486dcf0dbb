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

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets        repository.TicketRepository
	comments       repository.CommentRepository
	attachments    repository.AttachmentRepository
	groups         repository.GroupRepository
	users          repository.UserRepository
	statusChanges  repository.StatusChangeRepository
	redirects      repository.RedirectRepository
	classification *ClassificationService
	dispatcher     events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	CommentRepo      repository.CommentRepository
	AttachmentRepo   repository.AttachmentRepository
	GroupRepo        repository.GroupRepository
	UserRepo         repository.UserRepository
	StatusChangeRepo repository.StatusChangeRepository
	RedirectRepo     repository.RedirectRepository
	Classification   *ClassificationService
	Dispatcher       events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:        deps.TicketRepo,
		comments:       deps.CommentRepo,
		attachments:    deps.AttachmentRepo,
		groups:         deps.GroupRepo,
		users:          deps.UserRepo,
		statusChanges:  deps.StatusChangeRepo,
		redirects:      deps.RedirectRepo,
		classification: deps.Classification,
		dispatcher:     deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title             string
	Description       string
	Type              domain.TicketType
	Priority          domain.TicketPriority
	GroupID           int64
	CategoryID        *int64
	SubcategoryID     *int64
	ProjectID         *int64
	EstimatedDuration string
	SpocID            *int64
	ParentTicketID    *int64
}

// TicketUpdateInput describes editable ticket fields. Nil pointers leave the
// current value untouched.
type TicketUpdateInput struct {
	Title             *string
	Description       *string
	Priority          *domain.TicketPriority
	CategoryID        *int64
	SubcategoryID     *int64
	ProjectID         *int64
	EstimatedDuration *string
}

// TicketDetail aggregates a ticket with its related rows.
type TicketDetail struct {
	Ticket        *domain.Ticket
	Comments      []domain.Comment
	Attachments   []domain.Attachment
	Redirects     []domain.Redirect
	StatusChanges []domain.StatusChange
}

// CreateTicket creates a ticket, applying classification auto-fill and
// sub-ticket inheritance. User-supplied values always win over defaults.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Type != domain.TicketTypeSupport && input.Type != domain.TicketTypeRequirement {
		return nil, apperrors.NewValidationError("type must be support or requirement", nil)
	}
	if input.Type == domain.TicketTypeSupport && input.CategoryID == nil {
		return nil, apperrors.NewValidationError("category required for support tickets", nil)
	}

	ticket := &domain.Ticket{
		TicketKey:         generateTicketKey(),
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Type:              input.Type,
		Status:            domain.TicketStatusOpen,
		Priority:          input.Priority,
		CreatedBy:         actor.ID,
		SpocID:            input.SpocID,
		GroupID:           input.GroupID,
		CategoryID:        input.CategoryID,
		SubcategoryID:     input.SubcategoryID,
		ProjectID:         input.ProjectID,
		EstimatedDuration: input.EstimatedDuration,
		ParentTicketID:    input.ParentTicketID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if input.ParentTicketID != nil {
		parent, err := s.tickets.GetByID(ctx, *input.ParentTicketID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("parent ticket", map[string]any{"parent_ticket_id": *input.ParentTicketID})
			}
			return nil, apperrors.MapError(err)
		}
		if parent.IsDeleted {
			return nil, apperrors.NewConflict("parent ticket is deleted", nil)
		}
		// Inherit routing defaults from the parent; explicit values win.
		if ticket.GroupID == 0 {
			ticket.GroupID = parent.GroupID
		}
		if ticket.SpocID == nil {
			ticket.SpocID = parent.SpocID
		}
	}

	if ticket.GroupID == 0 {
		return nil, apperrors.NewValidationError("group required", nil)
	}
	group, err := s.groups.GetByID(ctx, ticket.GroupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("business unit group", map[string]any{"group_id": ticket.GroupID})
		}
		return nil, apperrors.MapError(err)
	}
	if !group.IsActive {
		return nil, apperrors.NewConflict("business unit group inactive", map[string]any{"group_id": group.ID})
	}

	if ticket.CategoryID != nil && s.classification != nil {
		fill, err := s.classification.Lookup(ctx, ticket.GroupID, *ticket.CategoryID, ticket.SubcategoryID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if fill != nil {
			if ticket.Description == "" && fill.Description != "" {
				ticket.Description = fill.Description
			}
			if ticket.EstimatedDuration == "" && fill.EstimatedDuration != "" {
				ticket.EstimatedDuration = fill.EstimatedDuration
			}
			if ticket.SpocID == nil && fill.SpocID != nil {
				ticket.SpocID = fill.SpocID
			}
		}
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			TicketKey: ticket.TicketKey,
			Title:     ticket.Title,
			GroupID:   ticket.GroupID,
			SpocID:    ticket.SpocID,
			ParentID:  ticket.ParentTicketID,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket with comments, attachments and audit rows.
// Soft-deleted tickets remain retrievable directly by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID int64) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	redirects, err := s.redirects.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	changes, err := s.statusChanges.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TicketDetail{
		Ticket:        ticket,
		Comments:      comments,
		Attachments:   attachments,
		Redirects:     redirects,
		StatusChanges: changes,
	}, nil
}

// GetTicketByKey resolves the human-facing ticket key to the full detail.
func (s *TicketService) GetTicketByKey(ctx context.Context, key string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByKey(ctx, strings.ToUpper(strings.TrimSpace(key)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_key": key})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetTicket(ctx, ticket.ID)
}

// ListTickets returns tickets matching the filter. Soft-deleted rows are
// excluded unless an admin explicitly asks for them.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if filter.IncludeDeleted && !actor.IsAdmin() {
		filter.IncludeDeleted = false
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateTicket edits ticket fields. Last write wins; no conflict detection.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.User, ticketID int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionEditTicket) {
		return nil, apperrors.NewForbidden("only the creator, SPOC or an admin may edit this ticket")
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("unknown priority", nil)
		}
		ticket.Priority = *input.Priority
	}
	if input.CategoryID != nil {
		ticket.CategoryID = input.CategoryID
	}
	if input.SubcategoryID != nil {
		ticket.SubcategoryID = input.SubcategoryID
	}
	if input.ProjectID != nil {
		ticket.ProjectID = input.ProjectID
	}
	if input.EstimatedDuration != nil {
		ticket.EstimatedDuration = *input.EstimatedDuration
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ChangeStatus applies a lifecycle transition. The remark is mandatory and
// every transition is recorded with actor and timestamp.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.User, ticketID int64, newStatus domain.TicketStatus, remark string) (*domain.Ticket, error) {
	if strings.TrimSpace(remark) == "" {
		return nil, apperrors.NewValidationError("remark required for status change", nil)
	}
	if !domain.ValidStatus(newStatus) || newStatus == domain.TicketStatusDeleted {
		return nil, apperrors.NewValidationError("unknown target status", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted {
		return nil, apperrors.NewConflict("ticket is deleted", nil)
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionChangeStatus) {
		return nil, apperrors.NewForbidden("only the SPOC, assignee or an admin may change ticket status")
	}
	if ticket.Status == domain.TicketStatusClosed && !authz.CanOnTicket(actor, ticket, authz.ActionReopenClosed) {
		return nil, apperrors.NewForbidden("only an admin may reopen a closed ticket")
	}
	if !domain.CanTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}

	oldStatus := ticket.Status
	now := time.Now()
	ticket.Status = newStatus
	switch newStatus {
	case domain.TicketStatusResolved:
		ticket.ResolvedAt = &now
		ticket.ResolvedBy = &actor.ID
	case domain.TicketStatusClosed:
		ticket.ClosedAt = &now
		ticket.ClosedBy = &actor.ID
	case domain.TicketStatusOnHold:
		ticket.HeldAt = &now
		ticket.HeldBy = &actor.ID
	}
	if oldStatus == domain.TicketStatusClosed && newStatus != domain.TicketStatusClosed {
		ticket.ClosedAt = nil
		ticket.ClosedBy = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	change := &domain.StatusChange{
		TicketID:   ticket.ID,
		FromStatus: oldStatus,
		ToStatus:   newStatus,
		Remark:     strings.TrimSpace(remark),
		ChangedBy:  actor.ID,
	}
	if err := s.statusChanges.Create(ctx, change); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketStatusChangedPayload{
			TicketKey: ticket.TicketKey,
			CreatedBy: ticket.CreatedBy,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Remark:    change.Remark,
		},
	})
	return ticket, nil
}

// SoftDelete marks a ticket deleted. The row stays in storage and is
// excluded from default listings.
func (s *TicketService) SoftDelete(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionSoftDelete) {
		return nil, apperrors.NewForbidden("only the creator or an admin may delete this ticket")
	}
	if ticket.IsDeleted {
		return ticket, nil
	}
	now := time.Now()
	ticket.IsDeleted = true
	ticket.DeletedAt = &now
	ticket.Status = domain.TicketStatusDeleted
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Restore clears the soft-delete flag, returning the ticket to open.
func (s *TicketService) Restore(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionRestore) {
		return nil, apperrors.NewForbidden("admin access required")
	}
	if !ticket.IsDeleted {
		return ticket, nil
	}
	ticket.IsDeleted = false
	ticket.DeletedAt = nil
	ticket.Status = domain.TicketStatusOpen
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// HardDelete permanently removes a ticket and everything referencing it.
// Irreversible; the confirmation step lives in the UI.
func (s *TicketService) HardDelete(ctx context.Context, actor *domain.User, ticketID int64) error {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionHardDelete) {
		return apperrors.NewForbidden("admin access required")
	}
	if err := s.tickets.HardDelete(ctx, ticket.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// AddComment appends an immutable comment to a ticket.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, ticketID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionComment) {
		return nil, apperrors.NewForbidden("access denied")
	}
	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Body:     strings.TrimSpace(body),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCommentAddedPayload{
			TicketKey:   ticket.TicketKey,
			CommentID:   comment.ID,
			AuthorID:    actor.ID,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// AttachmentInput describes uploaded file metadata.
type AttachmentInput struct {
	FileName   string
	SizeBytes  int64
	StorageURL string
}

// AddAttachment registers attachment metadata against a ticket.
func (s *TicketService) AddAttachment(ctx context.Context, actor *domain.User, ticketID int64, input AttachmentInput) (*domain.Attachment, error) {
	if input.FileName == "" || input.StorageURL == "" {
		return nil, apperrors.NewValidationError("file_name and storage_url required", nil)
	}
	if input.SizeBytes > domain.MaxAttachmentSizeBytes {
		return nil, apperrors.NewValidationError("file exceeds 5 MB limit", map[string]any{"size_bytes": input.SizeBytes})
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanOnTicket(actor, ticket, authz.ActionComment) {
		return nil, apperrors.NewForbidden("access denied")
	}
	attachment := &domain.Attachment{
		TicketID:   ticket.ID,
		UploadedBy: actor.ID,
		FileName:   input.FileName,
		SizeBytes:  input.SizeBytes,
		StorageURL: input.StorageURL,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachment, nil
}

// DeleteAttachment removes attachment metadata, independent of the ticket.
func (s *TicketService) DeleteAttachment(ctx context.Context, actor *domain.User, attachmentID int64) error {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment", map[string]any{"attachment_id": attachmentID})
		}
		return apperrors.MapError(err)
	}
	rel := authz.RelNone
	if actor != nil && attachment.UploadedBy == actor.ID {
		rel = authz.RelUploader
	}
	if !authz.Can(actor, rel, authz.ActionDeleteAttachment) {
		return apperrors.NewForbidden("only the uploader or an admin may delete an attachment")
	}
	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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

func generateTicketKey() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
