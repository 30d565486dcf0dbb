package events

import (
	"time"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketRedirected    EventType = "ticket_redirected"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketKey string `json:"ticket_key"`
	Title     string `json:"title"`
	GroupID   int64  `json:"group_id"`
	SpocID    *int64 `json:"spoc_id,omitempty"`
	ParentID  *int64 `json:"parent_ticket_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketKey string              `json:"ticket_key"`
	CreatedBy int64               `json:"created_by"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Remark    string              `json:"remark"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketKey  string `json:"ticket_key"`
	Title      string `json:"title"`
	AssigneeID int64  `json:"assignee_id"`
	Remark     string `json:"remark,omitempty"`
}

// TicketRedirectedPayload payload.
type TicketRedirectedPayload struct {
	TicketKey   string `json:"ticket_key"`
	FromGroupID int64  `json:"from_group_id"`
	ToGroupID   int64  `json:"to_group_id"`
	NewSpocID   int64  `json:"new_spoc_id"`
	Remark      string `json:"remark"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	TicketKey   string `json:"ticket_key"`
	CommentID   int64  `json:"comment_id"`
	AuthorID    int64  `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}
