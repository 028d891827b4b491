// Package tickets converts repaired tabular rows into typed ticket records.
package tickets

import "time"

// CreatedLayout is the fixed timestamp format of ticket exports
// (DD-Mon-YYYY HH:MM:SS, e.g. "03-Feb-2025 14:07:21").
const CreatedLayout = "02-Jan-2006 15:04:05"

// Ticket is one normalized support ticket. Site partitions the analysis,
// Number identifies the ticket, CreatedAt orders it within its site.
type Ticket struct {
	Site        string     `json:"site"`
	Number      string     `json:"number"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// Resolved reports whether the ticket carries a resolution timestamp.
func (t Ticket) Resolved() bool {
	return t.ResolvedAt != nil
}
