package tickets

import (
	"testing"
	"time"

	"github.com/ticketdup/ticketdup/internal/ingest"
)

func testTable(rows ...[]string) *ingest.Table {
	return &ingest.Table{
		Header: []string{
			ingest.ColumnSite,
			ingest.ColumnNumber,
			ingest.ColumnDescription,
			ingest.ColumnCreated,
			ingest.ColumnResolved,
		},
		Rows: rows,
	}
}

func TestNormalize(t *testing.T) {
	table := testTable(
		[]string{"SITE001", "INC0001", "printer broken", "15-Jan-2024 09:00:00", ""},
		[]string{"SITE001", "INC0002", "printer is broken", "15-Jan-2024 09:30:00", "16-Jan-2024 10:00:00"},
	)

	res := Normalize(table, false)
	if len(res.Tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(res.Tickets))
	}
	if res.SkippedRows != 0 {
		t.Errorf("expected no skipped rows, got %d", res.SkippedRows)
	}

	first := res.Tickets[0]
	if first.Site != "SITE001" || first.Number != "INC0001" {
		t.Errorf("unexpected ticket: %+v", first)
	}
	want := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	if !first.CreatedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, first.CreatedAt)
	}
	if first.Resolved() {
		t.Error("first ticket should be unresolved")
	}
	if !res.Tickets[1].Resolved() {
		t.Error("second ticket should be resolved")
	}
}

func TestNormalizeSkipsBadRows(t *testing.T) {
	table := testTable(
		[]string{"", "INC0001", "no site", "15-Jan-2024 09:00:00", ""},
		[]string{"SITE001", "INC0002", "bad created", "2024-01-15 09:00:00", ""},
		[]string{"SITE001", "INC0003", "bad resolved", "15-Jan-2024 09:00:00", "not a date"},
		[]string{"SITE001", "INC0004", "ok", "15-Jan-2024 09:00:00", ""},
	)

	res := Normalize(table, false)
	if len(res.Tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(res.Tickets))
	}
	if res.SkippedRows != 3 {
		t.Errorf("expected 3 skipped rows, got %d", res.SkippedRows)
	}
	if res.Tickets[0].Number != "INC0004" {
		t.Errorf("wrong ticket kept: %+v", res.Tickets[0])
	}
}

func TestNormalizeExcludeResolved(t *testing.T) {
	table := testTable(
		[]string{"SITE001", "INC0001", "open", "15-Jan-2024 09:00:00", ""},
		[]string{"SITE001", "INC0002", "closed", "15-Jan-2024 09:30:00", "16-Jan-2024 10:00:00"},
	)

	res := Normalize(table, true)
	if len(res.Tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(res.Tickets))
	}
	if res.ResolvedDropped != 1 {
		t.Errorf("expected 1 resolved dropped, got %d", res.ResolvedDropped)
	}
	if res.Tickets[0].Number != "INC0001" {
		t.Errorf("wrong ticket kept: %+v", res.Tickets[0])
	}
}
