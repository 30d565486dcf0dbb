package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
)

func newNotificationService(notifications *mockNotificationRepo, users *mockUserRepo, mailer *mockMailer) (*NotificationService, events.Dispatcher) {
	if notifications == nil {
		notifications = &mockNotificationRepo{}
	}
	if users == nil {
		users = &mockUserRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
				return &domain.User{ID: id, Email: "user@example.com", IsActive: true}, nil
			},
		}
	}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(NotificationDependencies{
		NotificationRepo: notifications,
		UserRepo:         users,
		Dispatcher:       dispatcher,
		Mailer:           mailer,
		Cache:            cache.New(nil),
	})
	svc.RegisterHandlers()
	return svc, dispatcher
}

func TestAssignedEventWritesInboxRowAndSendsEmail(t *testing.T) {
	var inserted *domain.Notification
	notifications := &mockNotificationRepo{
		createFunc: func(ctx context.Context, notification *domain.Notification) error {
			notification.ID = 1
			inserted = notification
			return nil
		},
	}
	var emailedTo string
	mailer := &mockMailer{
		assignmentFunc: func(to, ticketKey, title string) error {
			emailedTo = to
			return nil
		},
	}
	_, dispatcher := newNotificationService(notifications, nil, mailer)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: 10,
		ActorID:  3,
		Payload: events.TicketAssignedPayload{
			TicketKey:  "TKT-AB12CD34",
			Title:      "VPN not connecting",
			AssigneeID: 7,
		},
	})
	require.NoError(t, err)

	require.NotNil(t, inserted)
	assert.Equal(t, int64(7), inserted.UserID)
	require.NotNil(t, inserted.TicketID)
	assert.Equal(t, int64(10), *inserted.TicketID)
	assert.Contains(t, inserted.Message, "TKT-AB12CD34")
	assert.Contains(t, inserted.Message, "assigned to you")
	assert.Equal(t, "user@example.com", emailedTo)
}

func TestSelfAssignmentIsNotNotified(t *testing.T) {
	inserts := 0
	notifications := &mockNotificationRepo{
		createFunc: func(ctx context.Context, notification *domain.Notification) error {
			inserts++
			return nil
		},
	}
	_, dispatcher := newNotificationService(notifications, nil, nil)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: 10,
		ActorID:  7,
		Payload: events.TicketAssignedPayload{
			TicketKey:  "TKT-AB12CD34",
			AssigneeID: 7,
		},
	})
	require.NoError(t, err)
	assert.Zero(t, inserts)
}

func TestStatusChangeByCreatorIsNotNotified(t *testing.T) {
	inserts := 0
	notifications := &mockNotificationRepo{
		createFunc: func(ctx context.Context, notification *domain.Notification) error {
			inserts++
			return nil
		},
	}
	_, dispatcher := newNotificationService(notifications, nil, nil)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: 10,
		ActorID:  2,
		Payload: events.TicketStatusChangedPayload{
			TicketKey: "TKT-AB12CD34",
			CreatedBy: 2,
			OldStatus: domain.TicketStatusOpen,
			NewStatus: domain.TicketStatusResolved,
			Remark:    "fixed",
		},
	})
	require.NoError(t, err)
	assert.Zero(t, inserts)
}

func TestCreatedEventWithoutSpocIsSkipped(t *testing.T) {
	inserts := 0
	notifications := &mockNotificationRepo{
		createFunc: func(ctx context.Context, notification *domain.Notification) error {
			inserts++
			return nil
		},
	}
	_, dispatcher := newNotificationService(notifications, nil, nil)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: 10,
		ActorID:  9,
		Payload: events.TicketCreatedPayload{
			TicketKey: "TKT-AB12CD34",
			Title:     "VPN not connecting",
			GroupID:   5,
		},
	})
	require.NoError(t, err)
	assert.Zero(t, inserts)
}

func TestEmailFailureDoesNotFailDelivery(t *testing.T) {
	inserted := false
	notifications := &mockNotificationRepo{
		createFunc: func(ctx context.Context, notification *domain.Notification) error {
			notification.ID = 1
			inserted = true
			return nil
		},
	}
	mailer := &mockMailer{
		spocFunc: func(to, ticketKey, title string) error {
			return errors.New("smtp connection refused")
		},
	}
	_, dispatcher := newNotificationService(notifications, nil, mailer)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketRedirected,
		TicketID: 10,
		ActorID:  3,
		Payload: events.TicketRedirectedPayload{
			TicketKey:   "TKT-AB12CD34",
			FromGroupID: 5,
			ToGroupID:   6,
			NewSpocID:   8,
			Remark:      "belongs to network team",
		},
	})
	require.NoError(t, err)
	assert.True(t, inserted, "inbox row written even when the email fails")
}

func TestUnreadCountFallsBackToRepository(t *testing.T) {
	notifications := &mockNotificationRepo{
		countUnreadFunc: func(ctx context.Context, userID int64) (int64, error) {
			return 3, nil
		},
	}
	svc, _ := newNotificationService(notifications, nil, nil)

	count, err := svc.UnreadCount(context.Background(), activeUser(7, domain.RoleDeveloper))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMarkReadUnknownRowNotFound(t *testing.T) {
	notifications := &mockNotificationRepo{
		markReadFunc: func(ctx context.Context, userID, notificationID int64) error {
			return pgx.ErrNoRows
		},
	}
	svc, _ := newNotificationService(notifications, nil, nil)

	err := svc.MarkRead(context.Background(), activeUser(7, domain.RoleDeveloper), 404)
	assertDomainCode(t, err, "NOT_FOUND")
}
