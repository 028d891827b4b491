package database

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/ticketdup/ticketdup/internal/detect"
)

// Store wraps a gorm handle with run persistence operations. It accepts the
// db explicitly to support transaction contexts and testing against SQLite.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// BuildRunRecord flattens a pipeline result into its persistent form.
func BuildRunRecord(res *detect.RunResult, inputPath string, threshold int) *AnalysisRun {
	run := &AnalysisRun{
		RunID:           res.RunID,
		InputPath:       inputPath,
		Engine:          res.Engine,
		EngineFallback:  res.EngineFallback,
		Threshold:       threshold,
		TicketCount:     res.TicketCount,
		SiteCount:       res.SiteCount,
		SkippedRows:     res.SkippedRows,
		ResolvedDropped: res.ResolvedDropped,
		StartedAt:       res.StartedAt,
		DurationMs:      res.Duration.Milliseconds(),
	}
	if res.Repair != nil {
		run.RowsRemoved = res.Repair.RowsRemoved
		run.RowsFixed = res.Repair.RowsFixed
		run.Encoding = res.Repair.EncodingDetected
	}

	windows := make([]int, 0, len(res.Summaries))
	for w := range res.Summaries {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	for _, w := range windows {
		sum := res.Summaries[w]
		run.Windows = append(run.Windows, RunWindow{
			WindowHours:   sum.WindowHours,
			TotalPairs:    sum.TotalPairs,
			GroupCount:    sum.GroupCount,
			AffectedSites: sum.AffectedSites,
			UniqueTickets: sum.UniqueTickets,
			AvgSimilarity: sum.AvgSimilarity,
		})
		for _, g := range res.Groups[w] {
			run.Groups = append(run.Groups, GroupRecord{
				WindowHours:         g.WindowHours,
				Site:                g.Site,
				TicketNumbers:       strings.Join(g.TicketNumbers, ","),
				TicketCount:         len(g.TicketNumbers),
				RepresentativeScore: g.RepresentativeScore,
				EarliestCreatedAt:   g.EarliestCreatedAt,
			})
		}
	}
	return run
}

// SaveRun persists a run with its windows and groups in one transaction.
func (s *Store) SaveRun(run *AnalysisRun) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		windows := run.Windows
		groups := run.Groups
		run.Windows = nil
		run.Groups = nil

		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for i := range windows {
			windows[i].AnalysisRunID = run.ID
		}
		for i := range groups {
			groups[i].AnalysisRunID = run.ID
		}
		if len(windows) > 0 {
			if err := tx.Create(&windows).Error; err != nil {
				return err
			}
		}
		if len(groups) > 0 {
			if err := tx.Create(&groups).Error; err != nil {
				return err
			}
		}
		run.Windows = windows
		run.Groups = groups
		return nil
	})
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]AnalysisRun, error) {
	var runs []AnalysisRun
	err := s.db.Order("created_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// GroupsForRun returns the stored groups of one run ordered the same way the
// analysis emitted them.
func (s *Store) GroupsForRun(runID string) ([]GroupRecord, error) {
	var run AnalysisRun
	if err := s.db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	var groups []GroupRecord
	err := s.db.Where("analysis_run_id = ?", run.ID).
		Order("window_hours asc, representative_score desc, earliest_created_at asc").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
