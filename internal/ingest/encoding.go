package ingest

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Candidate encoding names, tried in this order during detection. The first
// candidate that decodes the entire byte stream without invalid sequences is
// selected; there is no best-effort lossy decode.
const (
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF8    = "utf-8"
	EncodingWin1252 = "windows-1252"
	EncodingLatin1  = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Windows-1252 leaves these five code points undefined; a file containing
// them cannot have been written in that encoding.
var win1252Undefined = [5]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// DetectEncoding decodes data using the first candidate encoding that
// accepts every byte. It returns the decoded UTF-8 text and the name of the
// encoding that was selected, or an *EncodingError when no candidate fits.
func DetectEncoding(path string, data []byte) (string, string, error) {
	// Non-whitespace C0 control bytes mark binary data; no text candidate
	// accepts them.
	if hasBinaryControls(data) {
		return "", "", &EncodingError{Path: path}
	}

	if bytes.HasPrefix(data, utf8BOM) && utf8.Valid(data[len(utf8BOM):]) {
		return string(data[len(utf8BOM):]), EncodingUTF8BOM, nil
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	if !hasWin1252Undefined(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded), EncodingWin1252, nil
		}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err == nil {
		return string(decoded), EncodingLatin1, nil
	}
	return "", "", &EncodingError{Path: path}
}

// EncodeText converts UTF-8 text into the named target encoding for the
// repaired-file rewrite. Unknown names and unrepresentable characters are
// errors; the rewrite never silently drops data.
func EncodeText(text, encodingName string) ([]byte, error) {
	switch encodingName {
	case EncodingUTF8, "":
		return []byte(text), nil
	case EncodingUTF8BOM:
		return append(append([]byte{}, utf8BOM...), text...), nil
	case EncodingWin1252:
		return charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	case EncodingLatin1:
		return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	default:
		return nil, fmt.Errorf("unknown target encoding %q", encodingName)
	}
}

// KnownEncoding reports whether name is a supported target encoding.
func KnownEncoding(name string) bool {
	switch name {
	case EncodingUTF8, EncodingUTF8BOM, EncodingWin1252, EncodingLatin1:
		return true
	}
	return false
}

func hasBinaryControls(data []byte) bool {
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return true
		}
	}
	return false
}

func hasWin1252Undefined(data []byte) bool {
	for _, b := range data {
		for _, u := range win1252Undefined {
			if b == u {
				return true
			}
		}
	}
	return false
}
