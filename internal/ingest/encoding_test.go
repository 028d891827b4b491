package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestDetectEncodingUTF8(t *testing.T) {
	text, name, err := DetectEncoding("test.csv", []byte("Site,Number\nA,1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != EncodingUTF8 {
		t.Errorf("expected %s, got %s", EncodingUTF8, name)
	}
	if !strings.HasPrefix(text, "Site,Number") {
		t.Errorf("unexpected decoded text: %q", text)
	}
}

func TestDetectEncodingUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Site,Number\n")...)
	text, name, err := DetectEncoding("test.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != EncodingUTF8BOM {
		t.Errorf("expected %s, got %s", EncodingUTF8BOM, name)
	}
	if strings.Contains(text, "\uFEFF") {
		t.Error("BOM should be stripped from decoded text")
	}
}

func TestDetectEncodingWindows1252(t *testing.T) {
	// 0xE9 is é in Windows-1252 but invalid as a standalone UTF-8 byte.
	data := []byte("Site,Number\nCaf\xE9,1\n")
	text, name, err := DetectEncoding("test.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != EncodingWin1252 {
		t.Errorf("expected %s, got %s", EncodingWin1252, name)
	}
	if !strings.Contains(text, "Café") {
		t.Errorf("expected é to decode, got %q", text)
	}
}

func TestDetectEncodingLatin1Fallback(t *testing.T) {
	// 0x8D is undefined in Windows-1252, so detection falls through to
	// ISO-8859-1 which accepts every byte value.
	data := []byte("Site,Number\nA\x8DB,1\n")
	_, name, err := DetectEncoding("test.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != EncodingLatin1 {
		t.Errorf("expected %s, got %s", EncodingLatin1, name)
	}
}

func TestDetectEncodingBinaryFails(t *testing.T) {
	data := []byte("Site,Number\x00\x01\x02")
	_, _, err := DetectEncoding("test.csv", data)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if encErr.Path != "test.csv" {
		t.Errorf("expected path in error, got %q", encErr.Path)
	}
}

func TestEncodeTextRoundTrip(t *testing.T) {
	encoded, err := EncodeText("Café", EncodingWin1252)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, name, err := DetectEncoding("test.csv", encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != EncodingWin1252 {
		t.Errorf("expected %s, got %s", EncodingWin1252, name)
	}
	if decoded != "Café" {
		t.Errorf("round trip mismatch: %q", decoded)
	}
}

func TestEncodeTextUnknownEncoding(t *testing.T) {
	if _, err := EncodeText("x", "ebcdic"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestKnownEncoding(t *testing.T) {
	for _, name := range []string{EncodingUTF8, EncodingUTF8BOM, EncodingWin1252, EncodingLatin1} {
		if !KnownEncoding(name) {
			t.Errorf("expected %s to be known", name)
		}
	}
	if KnownEncoding("utf-16") {
		t.Error("utf-16 should not be known")
	}
}
