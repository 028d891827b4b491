package database

import (
	"time"
)

// AnalysisRun records one completed pipeline run.
type AnalysisRun struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RunID           string    `gorm:"uniqueIndex;size:64;not null" json:"run_id"`
	InputPath       string    `gorm:"type:text" json:"input_path"`
	Engine          string    `gorm:"size:32" json:"engine"`
	EngineFallback  bool      `gorm:"default:false" json:"engine_fallback"`
	Threshold       int       `json:"threshold"`
	TicketCount     int       `json:"ticket_count"`
	SiteCount       int       `json:"site_count"`
	SkippedRows     int       `json:"skipped_rows"`
	ResolvedDropped int       `json:"resolved_dropped"`
	RowsRemoved     int       `json:"rows_removed"`
	RowsFixed       int       `json:"rows_fixed"`
	Encoding        string    `gorm:"size:32" json:"encoding"`
	StartedAt       time.Time `json:"started_at"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Windows []RunWindow   `gorm:"foreignKey:AnalysisRunID" json:"windows,omitempty"`
	Groups  []GroupRecord `gorm:"foreignKey:AnalysisRunID" json:"groups,omitempty"`
}

// TableName specifies the table name for AnalysisRun
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

// RunWindow stores the per-window summary of a run.
type RunWindow struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AnalysisRunID uint      `gorm:"not null;index" json:"analysis_run_id"`
	WindowHours   int       `gorm:"not null" json:"window_hours"`
	TotalPairs    int       `json:"total_pairs"`
	GroupCount    int       `json:"group_count"`
	AffectedSites int       `json:"affected_sites"`
	UniqueTickets int       `json:"unique_tickets"`
	AvgSimilarity float64   `json:"avg_similarity"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for RunWindow
func (RunWindow) TableName() string {
	return "run_windows"
}

// GroupRecord stores one duplicate group found during a run. Ticket numbers
// are kept as a comma-joined string so the row stays portable across the
// sqlite and postgres drivers.
type GroupRecord struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	AnalysisRunID       uint      `gorm:"not null;index" json:"analysis_run_id"`
	WindowHours         int       `gorm:"not null;index" json:"window_hours"`
	Site                string    `gorm:"size:255;index" json:"site"`
	TicketNumbers       string    `gorm:"type:text" json:"ticket_numbers"`
	TicketCount         int       `json:"ticket_count"`
	RepresentativeScore int       `json:"representative_score"`
	EarliestCreatedAt   time.Time `json:"earliest_created_at"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName specifies the table name for GroupRecord
func (GroupRecord) TableName() string {
	return "duplicate_groups"
}
