package domain

import "time"

// Notification is a per-user inbox row, optionally referencing a ticket.
type Notification struct {
	ID        int64
	UserID    int64
	TicketID  *int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
