package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketTransitions(t *testing.T) {
	cases := []struct {
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{TicketStatusOpen, TicketStatusInProgress, true},
		{TicketStatusOpen, TicketStatusClosed, true},
		{TicketStatusOpen, TicketStatusResolved, false},
		{TicketStatusInProgress, TicketStatusResolved, true},
		{TicketStatusInProgress, TicketStatusOpen, true},
		{TicketStatusInProgress, TicketStatusClosed, false},
		{TicketStatusResolved, TicketStatusClosed, true},
		{TicketStatusResolved, TicketStatusOpen, true},
		{TicketStatusResolved, TicketStatusInProgress, false},
		{TicketStatusClosed, TicketStatusOpen, false},
		{TicketStatusClosed, TicketStatusInProgress, false},
	}

	for _, tc := range cases {
		ticket := MaintenanceTicket{Status: tc.from}
		assert.Equal(t, tc.allowed, ticket.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
