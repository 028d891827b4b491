package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ticketdup/ticketdup/internal/config"
	"github.com/ticketdup/ticketdup/internal/detect/similarity"
	"github.com/ticketdup/ticketdup/internal/ingest"
	"github.com/ticketdup/ticketdup/internal/tickets"
)

// RunOptions carries everything one end-to-end run needs. Built from a
// validated Config in cmd/ticketdup; tests construct it directly.
type RunOptions struct {
	InputPath       string
	Ingest          ingest.Options
	ExcludeResolved bool
	Windows         []int
	Threshold       int
	Engine          similarity.Engine
	// EngineFallback records that the configured engine name was unknown and
	// the sequence engine was substituted.
	EngineFallback bool
}

// RunResult is the full outcome of one run: the analysis plus everything the
// ingest and normalize stages reported along the way.
type RunResult struct {
	RunID string `json:"run_id"`
	*Result
	SkippedRows     int                  `json:"skipped_rows"`
	ResolvedDropped int                  `json:"resolved_dropped"`
	Repair          *ingest.RepairReport `json:"repair,omitempty"`
	EngineFallback  bool                 `json:"engine_fallback"`
	StartedAt       time.Time            `json:"started_at"`
	Duration        time.Duration        `json:"duration"`
}

// Run executes the whole pipeline: load and repair the export, normalize the
// rows, then analyze. Cancellation is honored between stages; a cancelled
// run returns ctx.Err() and nothing is persisted by the caller.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := config.ValidateAnalysis(opts.Windows, opts.Threshold); err != nil {
		return nil, err
	}
	if opts.Engine == nil {
		return nil, &config.ConfigurationError{Option: "similarity_engine", Reason: "no engine selected"}
	}

	started := time.Now()
	res := &RunResult{
		RunID:          uuid.NewString(),
		EngineFallback: opts.EngineFallback,
		StartedAt:      started,
	}

	table, repair, err := ingest.Load(opts.InputPath, opts.Ingest)
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", opts.InputPath, err)
	}
	res.Repair = repair

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	norm := tickets.Normalize(table, opts.ExcludeResolved)
	res.SkippedRows = norm.SkippedRows
	res.ResolvedDropped = norm.ResolvedDropped

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis, err := New(opts.Windows, opts.Threshold, opts.Engine).Analyze(ctx, norm.Tickets)
	if err != nil {
		return nil, err
	}
	res.Result = analysis
	res.Duration = time.Since(started)
	return res, nil
}
