package categorization

import (
	"context"
	"strings"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

type keywordEntry struct {
	keyword    string // stored lower-cased
	categoryID string
}

// KeywordStrategy matches lower-cased keywords as substrings of the
// transaction description. Entries are evaluated in insertion order, so when
// several keywords match the first-registered one wins. That ordering is part
// of the contract, not an implementation accident: re-registering a keyword
// updates its target category but keeps its original position.
type KeywordStrategy struct {
	entries []keywordEntry
	index   map[string]int // keyword -> position in entries
}

// NewKeywordStrategy creates an empty keyword strategy.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{index: make(map[string]int)}
}

// Name implements Strategy.
func (s *KeywordStrategy) Name() string { return "keyword" }

// Add registers a keyword-to-category mapping.
func (s *KeywordStrategy) Add(keyword, categoryID string) {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return
	}
	if pos, ok := s.index[k]; ok {
		s.entries[pos].categoryID = categoryID
		return
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, keywordEntry{keyword: k, categoryID: categoryID})
}

// Categorize implements Strategy. A keyword match yields High confidence;
// no match declines.
func (s *KeywordStrategy) Categorize(_ context.Context, txn *domain.Transaction) *Result {
	description := strings.ToLower(txn.Description)
	for _, e := range s.entries {
		if strings.Contains(description, e.keyword) {
			return &Result{
				CategoryID: e.categoryID,
				Confidence: domain.ConfidenceHigh,
				Method:     domain.MethodRule,
			}
		}
	}
	return nil
}
