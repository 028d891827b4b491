package similarity

import "testing"

func TestSelect(t *testing.T) {
	eng, ok := Select(EngineToken)
	if !ok || eng.Name() != EngineToken {
		t.Errorf("expected token engine, got %s (ok=%v)", eng.Name(), ok)
	}

	eng, ok = Select(EngineSequence)
	if !ok || eng.Name() != EngineSequence {
		t.Errorf("expected sequence engine, got %s (ok=%v)", eng.Name(), ok)
	}
}

func TestSelectFallsBackOnUnknownName(t *testing.T) {
	eng, ok := Select("levenshtein-9000")
	if ok {
		t.Error("unknown engine name must report ok=false")
	}
	if eng == nil {
		t.Fatal("fallback engine must not be nil")
	}
	if eng.Name() != EngineSequence {
		t.Errorf("expected sequence fallback, got %s", eng.Name())
	}
}

func TestEnginesAgreeOnBoundaries(t *testing.T) {
	engines := []Engine{NewTokenEngine(), NewSequenceEngine()}
	for _, eng := range engines {
		if got := eng.Score("printer broken", "printer broken"); got != 100 {
			t.Errorf("%s: identical descriptions should score 100, got %d", eng.Name(), got)
		}
		if got := eng.Score("PRINTER BROKEN", "printer broken"); got != 100 {
			t.Errorf("%s: case must not matter, got %d", eng.Name(), got)
		}
		if got := eng.Score("", "printer broken"); got != 0 {
			t.Errorf("%s: empty description should score 0, got %d", eng.Name(), got)
		}
		if got := eng.Score("", ""); got != 0 {
			t.Errorf("%s: two empty descriptions should score 0, got %d", eng.Name(), got)
		}
	}
}

func TestScoreStaysInRange(t *testing.T) {
	cases := [][2]string{
		{"printer broken", "printer is broken"},
		{"vpn connection drops", "email not syncing"},
		{"a", "zzzzzzzzzzzzzzzzzzzzzz"},
		{"café kiosk down", "cafe kiosk down"},
	}
	for _, eng := range []Engine{NewTokenEngine(), NewSequenceEngine()} {
		for _, c := range cases {
			got := eng.Score(c[0], c[1])
			if got < 0 || got > 100 {
				t.Errorf("%s: Score(%q, %q) = %d out of range", eng.Name(), c[0], c[1], got)
			}
		}
	}
}

func TestTokenEngineNearDuplicates(t *testing.T) {
	eng := NewTokenEngine()
	score := eng.Score("printer broken", "printer is broken")
	if score < 85 {
		t.Errorf("near-duplicate descriptions should score high, got %d", score)
	}
	unrelated := eng.Score("printer broken", "vpn connection drops hourly")
	if unrelated >= score {
		t.Errorf("unrelated (%d) should score below near-duplicate (%d)", unrelated, score)
	}
}

func TestTokenEnginePartialMatch(t *testing.T) {
	eng := NewTokenEngine()
	// The short description is contained in the long one, so the partial
	// ratio dominates.
	score := eng.Score("printer broken", "printer broken in building 4, third floor")
	if score < 90 {
		t.Errorf("contained description should score high, got %d", score)
	}
}

func TestSequenceEngineOrderInsensitiveResult(t *testing.T) {
	eng := NewSequenceEngine()
	ab := eng.Score("printer broken", "printer is broken")
	ba := eng.Score("printer is broken", "printer broken")
	if ab != ba {
		t.Errorf("score must be symmetric: %d vs %d", ab, ba)
	}
	if ab < 80 {
		t.Errorf("near-duplicate descriptions should score high, got %d", ab)
	}
}
