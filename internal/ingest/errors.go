package ingest

import (
	"fmt"
	"strings"
)

// EncodingError reports that no candidate encoding decodes the input file.
// It is fatal: the pipeline aborts before any row is produced.
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: no candidate encoding decodes the file", e.Path)
}

// MissingColumnError reports required header columns absent from the input.
// It is fatal: the pipeline aborts before normalization.
type MissingColumnError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Columns, ", "))
}
