// Package testhelpers provides reusable testing utilities:
// - Ticket and CSV fixture builders
// - Assertion helpers
package testhelpers

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// ========================================
// Fixture Helpers
// ========================================

// WriteTempCSV writes content to a file in a temp directory and returns its
// path. The directory is cleaned up with the test.
func WriteTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// WriteTempFile writes raw bytes to a file in a temp directory, for fixtures
// that are not valid UTF-8.
func WriteTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// ========================================
// Assertion Helpers
// ========================================

// AssertEqual checks that two values are deeply equal
func AssertEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("expected %v, got %v %v", expected, actual, msgAndArgs)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v %v", err, msgAndArgs)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil %v", msgAndArgs)
	}
}
