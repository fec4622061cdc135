package phrasematch

import (
	"sort"
	"sync"

	"github.com/sebonomics/CodeFour/internal/types"
)

// repeatBoost is added to a stored pair's confidence on every repeat observation
const repeatBoost = 0.1

// FrequencyStore tracks how often phrase changes recur
type FrequencyStore interface {
	Record(change types.PhraseChange)
	FrequentAbove(minCount int) []types.PhraseFrequency
	Clear()
}

// MemoryStore is an in-memory FrequencyStore safe for concurrent use
type MemoryStore struct {
	mu    sync.Mutex
	pairs map[string]*types.PhraseFrequency
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pairs: make(map[string]*types.PhraseFrequency)}
}

// Record counts one observation of change.
func (s *MemoryStore) Record(change types.PhraseChange) {
	key := change.From + "\x00" + change.To

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pairs[key]; ok {
		existing.Count++
		existing.Confidence = min(existing.Confidence+repeatBoost, 1.0)
		return
	}
	s.pairs[key] = &types.PhraseFrequency{
		From:       change.From,
		To:         change.To,
		Count:      1,
		Confidence: change.Confidence,
	}
}

// FrequentAbove returns pairs seen at least minCount times, most frequent first.
func (s *MemoryStore) FrequentAbove(minCount int) []types.PhraseFrequency {
	s.mu.Lock()
	out := make([]types.PhraseFrequency, 0, len(s.pairs))
	for _, p := range s.pairs {
		if p.Count >= minCount {
			out = append(out, *p)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Clear forgets every recorded pair.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs = make(map[string]*types.PhraseFrequency)
}
