package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{TicketStatusOpen, TicketStatusOnHold, true},
		{TicketStatusOpen, TicketStatusResolved, true},
		{TicketStatusOpen, TicketStatusReturned, true},
		{TicketStatusOpen, TicketStatusClosed, false},
		{TicketStatusOnHold, TicketStatusOpen, true},
		{TicketStatusOnHold, TicketStatusClosed, false},
		{TicketStatusResolved, TicketStatusClosed, true},
		{TicketStatusResolved, TicketStatusReturned, true},
		{TicketStatusResolved, TicketStatusOpen, true},
		{TicketStatusReturned, TicketStatusOpen, true},
		{TicketStatusReturned, TicketStatusResolved, true},
		{TicketStatusReturned, TicketStatusClosed, false},
		{TicketStatusClosed, TicketStatusOpen, true},
		{TicketStatusClosed, TicketStatusResolved, false},
		{TicketStatusDeleted, TicketStatusOpen, false},
		{TicketStatusOpen, TicketStatusDeleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(TicketStatusOnHold))
	assert.False(t, ValidStatus("archived"))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(TicketPriorityUrgent))
	assert.False(t, ValidPriority("critical"))
}
