package domain

import "time"

// Comment is a free-text note on a ticket. Comments are immutable once
// created; there is no edit or delete path.
type Comment struct {
	ID        int64
	TicketID  int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
}
