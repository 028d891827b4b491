package similarity

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// TokenEngine is the primary scorer: a fuzzy token match over lowercased
// descriptions. It takes the higher of the full ratio and the partial ratio
// so a short description embedded in a longer one still scores high.
type TokenEngine struct{}

func NewTokenEngine() *TokenEngine {
	return &TokenEngine{}
}

func (e *TokenEngine) Name() string {
	return EngineToken
}

func (e *TokenEngine) Score(a, b string) int {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	score := fuzzy.Ratio(a, b)
	if partial := fuzzy.PartialRatio(a, b); partial > score {
		score = partial
	}
	return clamp(score)
}
