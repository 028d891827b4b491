package detect

import (
	"sort"
	"time"

	"github.com/ticketdup/ticketdup/internal/tickets"
)

// DuplicateGroup is a maximal set of tickets transitively linked by
// threshold-passing pairs within one site and one window. Membership is a
// partition: a ticket belongs to at most one group per window.
type DuplicateGroup struct {
	WindowHours int    `json:"window_hours"`
	Site        string `json:"site"`
	// TicketNumbers is ordered by creation time, ties by number.
	TicketNumbers []string `json:"ticket_numbers"`
	// RepresentativeScore is the maximum pairwise score observed among the
	// members: the worst-case alarm level, not a diluted average.
	RepresentativeScore int       `json:"representative_score"`
	EarliestCreatedAt   time.Time `json:"earliest_created_at"`
}

// unionFind tracks connected components of ticket numbers with path halving.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	if _, exists := u.parent[x]; !exists {
		u.parent[x] = x
	}
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// buildGroups merges scored pairs into connected components and orders the
// result: representative score descending, ties by earliest creation time
// ascending. The returned slice is never nil so an empty window is emitted,
// not omitted.
func buildGroups(pairs []ScoredPair, windowHours int) []DuplicateGroup {
	uf := newUnionFind()
	byNumber := make(map[string]tickets.Ticket)
	for _, p := range pairs {
		byNumber[p.A.Number] = p.A
		byNumber[p.B.Number] = p.B
		uf.union(p.A.Number, p.B.Number)
	}

	maxScore := make(map[string]int)
	for _, p := range pairs {
		root := uf.find(p.A.Number)
		if p.Score > maxScore[root] {
			maxScore[root] = p.Score
		}
	}

	members := make(map[string][]tickets.Ticket)
	for number, t := range byNumber {
		root := uf.find(number)
		members[root] = append(members[root], t)
	}

	groups := make([]DuplicateGroup, 0, len(members))
	for root, ts := range members {
		if len(ts) < 2 {
			continue
		}
		sort.Slice(ts, func(i, j int) bool {
			if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
				return ts[i].CreatedAt.Before(ts[j].CreatedAt)
			}
			return ts[i].Number < ts[j].Number
		})
		numbers := make([]string, len(ts))
		for i, t := range ts {
			numbers[i] = t.Number
		}
		groups = append(groups, DuplicateGroup{
			WindowHours:         windowHours,
			Site:                ts[0].Site,
			TicketNumbers:       numbers,
			RepresentativeScore: maxScore[root],
			EarliestCreatedAt:   ts[0].CreatedAt,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].RepresentativeScore != groups[j].RepresentativeScore {
			return groups[i].RepresentativeScore > groups[j].RepresentativeScore
		}
		if !groups[i].EarliestCreatedAt.Equal(groups[j].EarliestCreatedAt) {
			return groups[i].EarliestCreatedAt.Before(groups[j].EarliestCreatedAt)
		}
		return groups[i].TicketNumbers[0] < groups[j].TicketNumbers[0]
	})
	return groups
}
