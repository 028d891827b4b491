package detect

import (
	"time"

	"github.com/ticketdup/ticketdup/internal/tickets"
)

// CandidatePair is two same-site tickets whose creation times fall within
// one configured window of each other. A is always the earlier ticket.
type CandidatePair struct {
	A           tickets.Ticket `json:"ticket_a"`
	B           tickets.Ticket `json:"ticket_b"`
	WindowHours int            `json:"window_hours"`
}

// TimeDiff is the gap between the two creation times, never negative.
func (p CandidatePair) TimeDiff() time.Duration {
	return p.B.CreatedAt.Sub(p.A.CreatedAt)
}

// TimeCategory buckets the pair's creation-time gap for reporting.
func (p CandidatePair) TimeCategory() string {
	h := p.TimeDiff().Hours()
	switch {
	case h <= 1:
		return "0-1h"
	case h <= 4:
		return "1-4h"
	case h <= 8:
		return "4-8h"
	case h <= 24:
		return "8-24h"
	case h <= 72:
		return "1-3d"
	case h <= 168:
		return "3-7d"
	default:
		return ">7d"
	}
}

// ScoredPair is a candidate pair with its similarity score attached.
type ScoredPair struct {
	CandidatePair
	Score int `json:"score"`
}
