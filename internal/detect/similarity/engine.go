// Package similarity scores how alike two ticket descriptions are on a
// 0-100 scale. The engine is selected once at configuration time so the hot
// comparison loop never branches on engine choice.
package similarity

import "strings"

// Engine scores two descriptions, 0 (unrelated) to 100 (identical).
type Engine interface {
	Name() string
	Score(a, b string) int
}

// Registered engine names.
const (
	EngineToken    = "token"
	EngineSequence = "sequence"
)

// Select returns the engine registered under name. An unknown name falls
// back to the sequence engine and ok is false, so the caller can record the
// fallback; selection failure is never fatal.
func Select(name string) (eng Engine, ok bool) {
	switch name {
	case EngineToken:
		return NewTokenEngine(), true
	case EngineSequence:
		return NewSequenceEngine(), true
	default:
		return NewSequenceEngine(), false
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
