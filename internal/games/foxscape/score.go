package foxscape

import (
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/foxscape/internal/core"
)

// ScoreState is the score of the current run and the best ever seen.
// Best only moves up.
type ScoreState struct {
	Current int
	Best    int
	Last    int // score of the most recently finished run
}

// Add counts one dodged or smashed obstacle.
func (s *ScoreState) Add() {
	s.Current++
}

// Promote raises Best to Current if it is higher. It reports whether Best
// changed and therefore needs persisting.
func (s *ScoreState) Promote() bool {
	if s.Current > s.Best {
		s.Best = s.Current
		return true
	}
	return false
}

// BestScoreKey is the store key of a game's best score.
func BestScoreKey(gameID string) string {
	return gameID + ".high_score"
}

// ParseBest reads a stored best score. Anything missing, unparseable,
// negative or non-finite counts as 0. A leading integer is accepted even
// with trailing garbage.
func ParseBest(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return max(n, 0)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		f = core.Finite(f)
		if f <= 0 || f > math.MaxInt32 {
			return 0
		}
		return int(f)
	}

	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return max(n, 0)
}

// loadBest reads the best score from store, treating any failure as 0.
func loadBest(store core.ScalarStore, key string) (int, error) {
	raw, ok, err := store.Load(key)
	if err != nil || !ok {
		return 0, err
	}
	return ParseBest(raw), nil
}

// saveBest writes the best score to store.
func saveBest(store core.ScalarStore, key string, best int) error {
	return store.Save(key, strconv.Itoa(best))
}
