package detect

import (
	"sort"

	"github.com/ticketdup/ticketdup/internal/tickets"
)

// partitionBySite splits tickets into independent per-site collections,
// each sorted by creation time. The split is exact and case sensitive; no
// pair is ever produced across two site values.
func partitionBySite(ts []tickets.Ticket) map[string][]tickets.Ticket {
	sites := make(map[string][]tickets.Ticket)
	for _, t := range ts {
		sites[t.Site] = append(sites[t.Site], t)
	}
	for site := range sites {
		bucket := sites[site]
		sort.Slice(bucket, func(i, j int) bool {
			if !bucket[i].CreatedAt.Equal(bucket[j].CreatedAt) {
				return bucket[i].CreatedAt.Before(bucket[j].CreatedAt)
			}
			return bucket[i].Number < bucket[j].Number
		})
	}
	return sites
}
