package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusOnHold   TicketStatus = "on-hold"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
	TicketStatusReturned TicketStatus = "returned"
	TicketStatusDeleted  TicketStatus = "deleted"
)

// TicketType distinguishes support requests from requirements.
type TicketType string

const (
	TicketTypeSupport     TicketType = "support"
	TicketTypeRequirement TicketType = "requirement"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the aggregate for support requests and requirements.
type Ticket struct {
	ID                int64
	TicketKey         string
	Title             string
	Description       string
	Type              TicketType
	Status            TicketStatus
	Priority          TicketPriority
	CreatedBy         int64
	AssignedTo        *int64
	SpocID            *int64
	GroupID           int64
	CategoryID        *int64
	SubcategoryID     *int64
	ProjectID         *int64
	EstimatedDuration string
	ParentTicketID    *int64
	IsDeleted         bool
	DeletedAt         *time.Time
	ResolvedAt        *time.Time
	ResolvedBy        *int64
	ClosedAt          *time.Time
	ClosedBy          *int64
	HeldAt            *time.Time
	HeldBy            *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// allowedTransitions is the closed status transition table. The deleted
// status is reachable only through soft delete, never through a transition.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:     {TicketStatusOnHold, TicketStatusResolved, TicketStatusReturned},
	TicketStatusOnHold:   {TicketStatusOpen, TicketStatusResolved, TicketStatusReturned},
	TicketStatusResolved: {TicketStatusClosed, TicketStatusReturned, TicketStatusOpen},
	TicketStatusReturned: {TicketStatusOpen, TicketStatusResolved},
	TicketStatusClosed:   {TicketStatusOpen},
	TicketStatusDeleted:  {},
}

// CanTransition reports whether moving from current to next is permitted.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusOnHold, TicketStatusResolved,
		TicketStatusClosed, TicketStatusReturned, TicketStatusDeleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}
