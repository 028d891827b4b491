package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// repairRows turns a ragged record set into well-formed rows of the header's
// width. Short rows are rejoined with the following fragment when an
// accidental line break split them; long rows are repaired by folding the
// surplus fields back into the free-text description column. Rows that stay
// malformed, fully empty rows and exact duplicate rows are dropped.
func repairRows(header []string, body [][]string) ([][]string, *RepairReport) {
	width := len(header)
	descIdx := -1
	for i, col := range header {
		if col == ColumnDescription {
			descIdx = i
		}
	}

	rep := &RepairReport{}
	rows := make([][]string, 0, len(body))
	seen := make(map[string]bool, len(body))

	i := 0
	for i < len(body) {
		rec := body[i]
		if emptyRow(rec) {
			rep.RowsRemoved++
			i++
			continue
		}

		switch {
		case len(rec) == width:
			i++
		case len(rec) < width:
			merged := rec
			consumed := 1
			for len(merged) < width && i+consumed < len(body) && !emptyRow(body[i+consumed]) {
				merged = joinSplitRow(merged, body[i+consumed])
				consumed++
			}
			if len(merged) != width {
				// Not a clean split; drop this fragment and retry from the
				// next physical row.
				rep.RowsRemoved++
				i++
				continue
			}
			rec = merged
			rep.RowsFixed++
			i += consumed
		default: // len(rec) > width
			fixed, ok := foldExtraFields(rec, width, descIdx)
			if !ok {
				rep.RowsRemoved++
				i++
				continue
			}
			rec = fixed
			rep.RowsFixed++
			i++
		}

		key := strings.Join(rec, "\x1f")
		if seen[key] {
			rep.RowsRemoved++
			continue
		}
		seen[key] = true
		rows = append(rows, rec)
	}

	return rows, rep
}

func emptyRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// joinSplitRow glues a row fragment to its continuation: the broken field is
// the last of a and the first of b.
func joinSplitRow(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	last, first := a[len(a)-1], b[0]
	switch {
	case last == "":
		out = append(out, first)
	case first == "":
		out = append(out, last)
	default:
		out = append(out, last+" "+first)
	}
	out = append(out, b[1:]...)
	return out
}

// foldExtraFields repairs a row that an unescaped separator split too wide:
// the surplus fields are rejoined into the description column. Folding is
// only unambiguous when a description column exists and the surplus fits
// before the trailing columns.
func foldExtraFields(rec []string, width, descIdx int) ([]string, bool) {
	surplus := len(rec) - width
	if descIdx < 0 || descIdx+surplus >= len(rec) {
		return nil, false
	}
	out := make([]string, 0, width)
	out = append(out, rec[:descIdx]...)
	out = append(out, strings.Join(rec[descIdx:descIdx+surplus+1], ", "))
	out = append(out, rec[descIdx+surplus+1:]...)
	return out, true
}

// rewrite persists the repaired table over the original file in the target
// encoding. The backup, when requested, is written before the first mutating
// write and a backup failure aborts the rewrite.
func rewrite(path string, original []byte, table *Table, opts Options, rep *RepairReport) error {
	if opts.CreateBackup {
		backupPath := fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
		if err := os.WriteFile(backupPath, original, 0o644); err != nil {
			return fmt.Errorf("writing backup %s: %w", backupPath, err)
		}
		rep.BackupPath = backupPath
	}

	encoded, err := EncodeTable(table, opts.TargetEncoding)
	if err != nil {
		return fmt.Errorf("encoding repaired %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing repaired %s: %w", path, err)
	}
	return nil
}

// EncodeTable renders a table as CSV bytes in the named encoding. The CSV
// form is canonical (LF line endings, minimal quoting) so repairing an
// already-repaired file is a byte-identical no-op.
func EncodeTable(table *Table, encodingName string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Header); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return EncodeText(buf.String(), encodingName)
}
