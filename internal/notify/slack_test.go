package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/ticketdup/ticketdup/internal/detect"
	"github.com/ticketdup/ticketdup/internal/ingest"
)

func TestNewRequiresTokenAndChannel(t *testing.T) {
	if New("", "#dups") != nil {
		t.Error("missing token should disable the notifier")
	}
	if New("xoxb-token", "") != nil {
		t.Error("missing channel should disable the notifier")
	}
	if New("xoxb-token", "#dups") == nil {
		t.Error("expected a notifier when both are set")
	}
}

func summaryFixture() *detect.RunResult {
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return &detect.RunResult{
		RunID: "run-test-0001",
		Result: &detect.Result{
			Groups: map[int][]detect.DuplicateGroup{
				4: {},
				24: {
					{
						WindowHours:         24,
						Site:                "SITE001",
						TicketNumbers:       []string{"INC0001", "INC0002"},
						RepresentativeScore: 90,
						EarliestCreatedAt:   created,
					},
				},
			},
			Summaries: map[int]detect.WindowSummary{
				4: {WindowHours: 4},
				24: {
					WindowHours:   24,
					TotalPairs:    1,
					GroupCount:    1,
					AffectedSites: 1,
					UniqueTickets: 2,
					AvgSimilarity: 90,
				},
			},
			TicketCount: 1234,
			SiteCount:   12,
			Engine:      "token",
		},
		Repair:   &ingest.RepairReport{EncodingDetected: "windows-1252", RowsRemoved: 3, RowsFixed: 1},
		Duration: 1500 * time.Millisecond,
	}
}

func TestFormatSummary(t *testing.T) {
	msg := FormatSummary(summaryFixture())

	for _, want := range []string{
		"1,234",
		"12 sites",
		"token",
		"1.5s",
		"3 rows removed",
		"windows-1252",
		"*24h window*: 1 groups, 1 pairs",
		"SITE001: INC0001, INC0002 (score 90)",
		"*4h window*: 0 groups, 0 pairs",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSummaryCapsGroupList(t *testing.T) {
	res := summaryFixture()
	var groups []detect.DuplicateGroup
	for i := 0; i < maxGroupsPerWindow+3; i++ {
		groups = append(groups, detect.DuplicateGroup{
			WindowHours:         24,
			Site:                "SITE001",
			TicketNumbers:       []string{"INC0001", "INC0002"},
			RepresentativeScore: 90 - i,
		})
	}
	res.Groups[24] = groups

	msg := FormatSummary(res)
	if !strings.Contains(msg, "… and 3 more") {
		t.Errorf("expected collapsed tail, got:\n%s", msg)
	}
	if strings.Count(msg, "(score") != maxGroupsPerWindow {
		t.Errorf("expected %d listed groups, got %d", maxGroupsPerWindow, strings.Count(msg, "(score"))
	}
}

func TestFormatSummaryEngineFallback(t *testing.T) {
	res := summaryFixture()
	res.EngineFallback = true
	if !strings.Contains(FormatSummary(res), "(fallback)") {
		t.Error("fallback must be visible in the summary")
	}
}
