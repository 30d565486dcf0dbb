package domain

import "time"

// Redirect records a ticket's move between business unit groups. Rows are
// append-only and form the escalation audit trail.
type Redirect struct {
	ID           int64
	TicketID     int64
	FromGroupID  int64
	ToGroupID    int64
	FromSpocID   *int64
	ToSpocID     int64
	Remark       string
	RedirectedBy int64
	CreatedAt    time.Time
}

// StatusChange records one status transition with its mandatory remark.
type StatusChange struct {
	ID         int64
	TicketID   int64
	FromStatus TicketStatus
	ToStatus   TicketStatus
	Remark     string
	ChangedBy  int64
	CreatedAt  time.Time
}
