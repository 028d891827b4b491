// Package ingest reads raw ticket export files, detects their encoding,
// repairs structural damage and validates the schema before any row reaches
// the rest of the pipeline.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header columns of a ticket export. Resolved is the only optional one.
const (
	ColumnSite        = "Site"
	ColumnNumber      = "Number"
	ColumnDescription = "Short description"
	ColumnCreated     = "Created"
	ColumnResolved    = "Resolved"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{ColumnSite, ColumnNumber, ColumnDescription, ColumnCreated}

// Table is the clean tabular record set handed to normalization. Produced
// once by Load and read-only afterwards.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named header column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Options control ingestion behavior for one file.
type Options struct {
	// AutoRepair runs the structural repair pass instead of failing on
	// malformed rows.
	AutoRepair bool
	// CreateBackup copies the original bytes aside before the repaired file
	// overwrites them. Ignored when nothing needed repair.
	CreateBackup bool
	// TargetEncoding names the encoding used when rewriting a repaired file.
	// Empty means UTF-8.
	TargetEncoding string
}

// RepairReport summarizes the corrective actions taken on one file.
// Produced once per ingestion and immutable after Load returns.
type RepairReport struct {
	EncodingDetected string `json:"encoding_detected"`
	RowsRemoved      int    `json:"rows_removed"`
	RowsFixed        int    `json:"rows_fixed"`
	BackupPath       string `json:"backup_path,omitempty"`
}

// Changed reports whether repair altered the record set at all.
func (r *RepairReport) Changed() bool {
	return r.RowsRemoved > 0 || r.RowsFixed > 0
}

// Load reads, decodes and (when opts.AutoRepair is set) repairs one export
// file. The returned report is nil when the repair pass did not run. A
// repaired file that actually changed is rewritten in place in the target
// encoding, with the original backed up first when opts.CreateBackup is set.
func Load(path string, opts Options) (*Table, *RepairReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, encodingName, err := DetectEncoding(path, data)
	if err != nil {
		return nil, nil, err
	}

	records, err := parseRecords(text, opts.AutoRepair)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: file is empty", path)
	}

	header := records[0]
	body := records[1:]

	var table *Table
	var report *RepairReport
	if opts.AutoRepair {
		rows, rep := repairRows(header, body)
		rep.EncodingDetected = encodingName
		table = &Table{Header: header, Rows: rows}
		if rep.Changed() {
			if err := rewrite(path, data, table, opts, rep); err != nil {
				return nil, nil, err
			}
		}
		report = rep
	} else {
		for i, rec := range body {
			if len(rec) != len(header) {
				return nil, nil, fmt.Errorf("%s: row %d has %d fields, want %d (auto repair disabled)",
					path, i+2, len(rec), len(header))
			}
		}
		table = &Table{Header: header, Rows: body}
	}

	if missing := missingColumns(table.Header); len(missing) > 0 {
		return nil, nil, &MissingColumnError{Path: path, Columns: missing}
	}
	return table, report, nil
}

func parseRecords(text string, lenient bool) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = lenient

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func missingColumns(header []string) []string {
	var missing []string
	for _, want := range RequiredColumns {
		found := false
		for _, col := range header {
			if col == want {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}
