package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/mail"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	apperrors "github.com/weebHarsh/ticketing-portal-sub000/pkg/util"
)

// NotificationService turns domain events into inbox rows and best-effort
// emails, and serves the per-user inbox. Delivery failures are logged and
// never surface to the operation that triggered them.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
	mailer        mail.Mailer
	cache         *cache.Cache
	logger        *zap.Logger
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
	Mailer           mail.Mailer
	Cache            *cache.Cache
	Logger           *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
		mailer:        deps.Mailer,
		cache:         deps.Cache,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketRedirected, n.handleTicketRedirected)
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleTicketCommentAdded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	if payload.SpocID == nil {
		return nil
	}
	message := fmt.Sprintf("New ticket %s in your queue: %s", payload.TicketKey, payload.Title)
	n.deliver(ctx, *payload.SpocID, event.TicketID, message, func(to string) error {
		return n.mailer.SendSpocNewTicketEmail(to, payload.TicketKey, payload.Title)
	})
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	if payload.CreatedBy == event.ActorID {
		return nil
	}
	message := fmt.Sprintf("Ticket %s moved from %s to %s: %s",
		payload.TicketKey, payload.OldStatus, payload.NewStatus, payload.Remark)
	n.deliver(ctx, payload.CreatedBy, event.TicketID, message, func(to string) error {
		return n.mailer.SendStatusChangeEmail(to, payload.TicketKey,
			string(payload.OldStatus), string(payload.NewStatus), payload.Remark)
	})
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	if payload.AssigneeID == event.ActorID {
		return nil
	}
	message := fmt.Sprintf("Ticket %s assigned to you: %s", payload.TicketKey, payload.Title)
	n.deliver(ctx, payload.AssigneeID, event.TicketID, message, func(to string) error {
		return n.mailer.SendAssignmentEmail(to, payload.TicketKey, payload.Title)
	})
	return nil
}

func (n *NotificationService) handleTicketRedirected(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketRedirectedPayload)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("Ticket %s redirected to your group: %s", payload.TicketKey, payload.Remark)
	n.deliver(ctx, payload.NewSpocID, event.TicketID, message, func(to string) error {
		return n.mailer.SendSpocNewTicketEmail(to, payload.TicketKey, payload.Remark)
	})
	return nil
}

func (n *NotificationService) handleTicketCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("comment added",
		zap.String("ticket_key", payload.TicketKey),
		zap.Int64("author_id", payload.AuthorID))
	return nil
}

// deliver writes the inbox row and, when the recipient has an email, sends
// the message. Either failure is logged and swallowed.
func (n *NotificationService) deliver(ctx context.Context, userID, ticketID int64, message string, sendEmail func(to string) error) {
	notification := &domain.Notification{
		UserID:   userID,
		TicketID: &ticketID,
		Message:  message,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("notification insert failed",
			zap.Int64("user_id", userID),
			zap.Int64("ticket_id", ticketID),
			zap.Error(err))
	} else {
		n.cache.BumpUnreadCount(ctx, userID)
	}

	if n.mailer == nil || sendEmail == nil {
		return
	}
	recipient, err := n.users.GetByID(ctx, userID)
	if err != nil || recipient.Email == "" {
		return
	}
	if err := sendEmail(recipient.Email); err != nil {
		n.logger.Warn("notification email failed",
			zap.Int64("user_id", userID),
			zap.Int64("ticket_id", ticketID),
			zap.Error(err))
	}
}

// Inbox returns the caller's notifications, unread first.
func (n *NotificationService) Inbox(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.Notification, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	rows, err := n.notifications.ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// MarkRead marks one of the caller's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, actor *domain.User, notificationID int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := n.notifications.MarkRead(ctx, actor.ID, notificationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": notificationID})
		}
		return apperrors.MapError(err)
	}
	n.cache.InvalidateUnreadCount(ctx, actor.ID)
	return nil
}

// MarkAllRead marks the caller's whole inbox as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, actor *domain.User) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := n.notifications.MarkAllRead(ctx, actor.ID); err != nil {
		return apperrors.MapError(err)
	}
	n.cache.SetUnreadCount(ctx, actor.ID, 0)
	return nil
}

// UnreadCount returns the caller's unread counter, served from Redis when
// warm.
func (n *NotificationService) UnreadCount(ctx context.Context, actor *domain.User) (int64, error) {
	if actor == nil {
		return 0, apperrors.NewUnauthorized("authentication required")
	}
	if count, ok := n.cache.GetUnreadCount(ctx, actor.ID); ok {
		return count, nil
	}
	count, err := n.notifications.CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	n.cache.SetUnreadCount(ctx, actor.ID, count)
	return count, nil
}
