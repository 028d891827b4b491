// Package testhelpers provides data builders for testing
package testhelpers

import (
	"time"

	"github.com/ticketdup/ticketdup/internal/tickets"
)

// ========================================
// Ticket Builder
// ========================================

// TicketBuilder builds Ticket instances for testing
type TicketBuilder struct {
	ticket tickets.Ticket
}

// NewTicketBuilder creates a new ticket builder with defaults
func NewTicketBuilder() *TicketBuilder {
	return &TicketBuilder{
		ticket: tickets.Ticket{
			Site:        "SITE001",
			Number:      "INC0001",
			Description: "test ticket",
			CreatedAt:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}
}

// WithSite sets the site
func (b *TicketBuilder) WithSite(site string) *TicketBuilder {
	b.ticket.Site = site
	return b
}

// WithNumber sets the ticket number
func (b *TicketBuilder) WithNumber(number string) *TicketBuilder {
	b.ticket.Number = number
	return b
}

// WithDescription sets the description
func (b *TicketBuilder) WithDescription(desc string) *TicketBuilder {
	b.ticket.Description = desc
	return b
}

// WithCreatedAt sets the creation time
func (b *TicketBuilder) WithCreatedAt(t time.Time) *TicketBuilder {
	b.ticket.CreatedAt = t
	return b
}

// CreatedAfter shifts the creation time relative to the current value
func (b *TicketBuilder) CreatedAfter(d time.Duration) *TicketBuilder {
	b.ticket.CreatedAt = b.ticket.CreatedAt.Add(d)
	return b
}

// WithResolvedAt marks the ticket resolved at the given time
func (b *TicketBuilder) WithResolvedAt(t time.Time) *TicketBuilder {
	b.ticket.ResolvedAt = &t
	return b
}

// Build returns the constructed ticket
func (b *TicketBuilder) Build() tickets.Ticket {
	return b.ticket
}
