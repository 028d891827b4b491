package tickets

import (
	"strings"
	"time"

	"github.com/ticketdup/ticketdup/internal/ingest"
)

// NormalizeResult is the typed record set plus the counts of rows that did
// not make it into the comparison population.
type NormalizeResult struct {
	Tickets []Ticket
	// SkippedRows counts rows dropped because a date field failed to parse
	// or the site was empty. Recoverable: recorded, never fatal.
	SkippedRows int
	// ResolvedDropped counts tickets removed by the exclude-resolved filter.
	ResolvedDropped int
}

// Normalize converts table rows into Tickets. Rows with an unparsable
// Created timestamp are skipped and counted, never fabricated. When
// excludeResolved is set, tickets with a non-empty Resolved field are
// removed here so downstream counts reflect the true comparison population.
func Normalize(table *ingest.Table, excludeResolved bool) *NormalizeResult {
	siteIdx := table.ColumnIndex(ingest.ColumnSite)
	numberIdx := table.ColumnIndex(ingest.ColumnNumber)
	descIdx := table.ColumnIndex(ingest.ColumnDescription)
	createdIdx := table.ColumnIndex(ingest.ColumnCreated)
	resolvedIdx := table.ColumnIndex(ingest.ColumnResolved)

	res := &NormalizeResult{Tickets: make([]Ticket, 0, len(table.Rows))}
	for _, row := range table.Rows {
		site := strings.TrimSpace(row[siteIdx])
		if site == "" {
			res.SkippedRows++
			continue
		}

		createdAt, err := time.Parse(CreatedLayout, strings.TrimSpace(row[createdIdx]))
		if err != nil {
			res.SkippedRows++
			continue
		}

		var resolvedAt *time.Time
		if resolvedIdx >= 0 {
			if raw := strings.TrimSpace(row[resolvedIdx]); raw != "" {
				ts, err := time.Parse(CreatedLayout, raw)
				if err != nil {
					res.SkippedRows++
					continue
				}
				resolvedAt = &ts
			}
		}

		if excludeResolved && resolvedAt != nil {
			res.ResolvedDropped++
			continue
		}

		res.Tickets = append(res.Tickets, Ticket{
			Site:        site,
			Number:      strings.TrimSpace(row[numberIdx]),
			Description: row[descIdx],
			CreatedAt:   createdAt,
			ResolvedAt:  resolvedAt,
		})
	}
	return res
}
