package detect

// WindowSummary rolls one window's results up for reporting.
type WindowSummary struct {
	WindowHours   int     `json:"window_hours"`
	TotalPairs    int     `json:"total_pairs"`
	GroupCount    int     `json:"group_count"`
	AffectedSites int     `json:"affected_sites"`
	UniqueTickets int     `json:"unique_tickets"`
	AvgSimilarity float64 `json:"avg_similarity"`
}

func summarize(windowHours int, pairs []ScoredPair, groups []DuplicateGroup) WindowSummary {
	sites := make(map[string]bool)
	ticketSet := make(map[string]bool)
	scoreSum := 0
	for _, p := range pairs {
		sites[p.A.Site] = true
		ticketSet[p.A.Number] = true
		ticketSet[p.B.Number] = true
		scoreSum += p.Score
	}

	sum := WindowSummary{
		WindowHours:   windowHours,
		TotalPairs:    len(pairs),
		GroupCount:    len(groups),
		AffectedSites: len(sites),
		UniqueTickets: len(ticketSet),
	}
	if len(pairs) > 0 {
		sum.AvgSimilarity = float64(scoreSum) / float64(len(pairs))
	}
	return sum
}
