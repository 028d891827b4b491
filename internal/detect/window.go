package detect

import (
	"time"

	"github.com/ticketdup/ticketdup/internal/tickets"
)

// candidatePairs sweeps one site's creation-sorted tickets and emits every
// pair whose gap is at most windowHours, each exactly once. The inner loop
// breaks as soon as the gap exceeds the window, so the cost is the number of
// pairs actually inside it rather than the full cross product.
func candidatePairs(sorted []tickets.Ticket, windowHours int) []CandidatePair {
	window := time.Duration(windowHours) * time.Hour
	var pairs []CandidatePair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].CreatedAt.Sub(sorted[i].CreatedAt) > window {
				break
			}
			pairs = append(pairs, CandidatePair{
				A:           sorted[i],
				B:           sorted[j],
				WindowHours: windowHours,
			})
		}
	}
	return pairs
}
