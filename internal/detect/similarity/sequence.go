package similarity

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SequenceEngine is the fallback scorer: a character-sequence alignment
// ratio (2*matches/total) over lowercased descriptions.
type SequenceEngine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func NewSequenceEngine() *SequenceEngine {
	return &SequenceEngine{dmp: diffmatchpatch.New()}
}

func (e *SequenceEngine) Name() string {
	return EngineSequence
}

func (e *SequenceEngine) Score(a, b string) int {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	matched := 0
	for _, d := range e.dmp.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return clamp(int(float64(2*matched) / float64(total) * 100))
}
