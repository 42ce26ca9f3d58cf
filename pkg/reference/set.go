// Package reference holds the canonical merchant list the matcher scores
// against. The split mirrors index-vs-logic: the set is precomputed,
// normalized facts; all decisions live in the matcher.
package reference

import (
	"context"
	"fmt"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/normalizers"
)

// Loader supplies the ordered merchant list at startup. The postgres
// repository implements this; tests and embedders can supply their own.
type Loader interface {
	ListActive(ctx context.Context) ([]models.Merchant, error)
}

// Entry is one merchant with its precomputed matching key.
type Entry struct {
	Merchant models.Merchant
	Key      string // normalized name, computed once at load
}

// Set is the immutable, ordered reference list. Built once per run and never
// mutated afterwards, so it may be shared across goroutines without locking.
type Set struct {
	entries []Entry
	byKey   map[string]int
}

// NewSet builds a Set from an ordered merchant list.
//
// Merchants whose names normalize to "" are skipped: malformed reference
// rows degrade to non-matches, they don't fail the load. Duplicate
// normalized keys with identical canonical data collapse to the earliest
// occurrence; duplicates with conflicting data are a configuration error and
// fail the load before any query is processed.
func NewSet(merchants []models.Merchant) (*Set, error) {
	entries := make([]Entry, 0, len(merchants))
	byKey := make(map[string]int, len(merchants))

	for _, m := range merchants {
		key := normalizers.Clean(m.Name)
		if key == "" {
			continue
		}

		if i, ok := byKey[key]; ok {
			prev := entries[i].Merchant
			if prev.Display() != m.Display() || prev.DomainValue() != m.DomainValue() {
				return nil, fmt.Errorf("conflicting reference entries for key %q: %q and %q", key, prev.Name, m.Name)
			}
			continue
		}

		byKey[key] = len(entries)
		entries = append(entries, Entry{Merchant: m, Key: key})
	}

	return &Set{entries: entries, byKey: byKey}, nil
}

// Load builds a Set from a Loader.
func Load(ctx context.Context, loader Loader) (*Set, error) {
	merchants, err := loader.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference list: %w", err)
	}
	return NewSet(merchants)
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns the entries in reference-list order. Callers must not
// mutate the returned slice.
func (s *Set) Entries() []Entry {
	return s.entries
}

// Lookup returns the entry whose key equals the normalized form of name.
func (s *Set) Lookup(name string) (Entry, bool) {
	i, ok := s.byKey[normalizers.Clean(name)]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}
