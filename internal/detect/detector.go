// Package detect runs the duplicate analysis over normalized tickets: site
// partitioning, time-window candidate generation, similarity scoring and
// group aggregation.
package detect

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/ticketdup/ticketdup/internal/detect/similarity"
	"github.com/ticketdup/ticketdup/internal/tickets"
)

// Detector holds the analysis parameters for one run. Construct it once and
// treat it as immutable; Analyze never mutates it.
type Detector struct {
	windows   []int
	threshold int
	engine    similarity.Engine
}

// New creates a detector. The caller validates windows and threshold before
// construction (see config.Validate); the engine has been selected already.
func New(windows []int, threshold int, engine similarity.Engine) *Detector {
	return &Detector{windows: windows, threshold: threshold, engine: engine}
}

// Result maps each configured window to its ordered groups, retained pairs
// and summary. Every configured window is present even when empty.
type Result struct {
	Groups      map[int][]DuplicateGroup `json:"groups"`
	Pairs       map[int][]ScoredPair     `json:"pairs"`
	Summaries   map[int]WindowSummary    `json:"summaries"`
	TicketCount int                      `json:"ticket_count"`
	SiteCount   int                      `json:"site_count"`
	Engine      string                   `json:"engine"`
}

// Analyze partitions, windows, scores and aggregates the ticket set. Sites
// are scored across a bounded worker pool since partitions share no mutable
// state; per-window lists are sorted deterministically before returning so
// execution order never leaks into observable output. ctx is checked at
// stage boundaries only; a cancelled run returns ctx.Err() and no partial
// result.
func (d *Detector) Analyze(ctx context.Context, ts []tickets.Ticket) (*Result, error) {
	sites := partitionBySite(ts)
	siteNames := make([]string, 0, len(sites))
	for site := range sites {
		siteNames = append(siteNames, site)
	}
	sort.Strings(siteNames)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perWindow := make(map[int][]ScoredPair, len(d.windows))
	for _, w := range d.windows {
		perWindow[w] = []ScoredPair{}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan string)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(siteNames) {
		workers = len(siteNames)
	}
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for site := range jobs {
				local := d.scoreSite(sites[site])
				mu.Lock()
				for w, ps := range local {
					perWindow[w] = append(perWindow[w], ps...)
				}
				mu.Unlock()
			}
		}()
	}
	for _, site := range siteNames {
		jobs <- site
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Groups:      make(map[int][]DuplicateGroup, len(d.windows)),
		Pairs:       make(map[int][]ScoredPair, len(d.windows)),
		Summaries:   make(map[int]WindowSummary, len(d.windows)),
		TicketCount: len(ts),
		SiteCount:   len(sites),
		Engine:      d.engine.Name(),
	}
	for _, w := range d.windows {
		pairs := perWindow[w]
		sortPairs(pairs)
		groups := buildGroups(pairs, w)
		res.Pairs[w] = pairs
		res.Groups[w] = groups
		res.Summaries[w] = summarize(w, pairs, groups)
	}
	return res, nil
}

// scoreSite generates and scores candidate pairs for one site across all
// windows, keeping only pairs at or above the threshold.
func (d *Detector) scoreSite(sorted []tickets.Ticket) map[int][]ScoredPair {
	out := make(map[int][]ScoredPair, len(d.windows))
	for _, w := range d.windows {
		for _, cand := range candidatePairs(sorted, w) {
			score := d.engine.Score(cand.A.Description, cand.B.Description)
			if score < d.threshold {
				continue
			}
			out[w] = append(out[w], ScoredPair{CandidatePair: cand, Score: score})
		}
	}
	return out
}

func sortPairs(pairs []ScoredPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].A.Site != pairs[j].A.Site {
			return pairs[i].A.Site < pairs[j].A.Site
		}
		if pairs[i].A.Number != pairs[j].A.Number {
			return pairs[i].A.Number < pairs[j].A.Number
		}
		return pairs[i].B.Number < pairs[j].B.Number
	})
}
