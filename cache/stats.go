package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/ZaguanLabs/readlai"
)

// Stats summarizes the contents of a snapshot by fingerprint component.
type Stats struct {
	Entries    int            `json:"entries"`
	Scopes     int            `json:"scopes"`
	ByLanguage map[string]int `json:"by_language"`
	ByModel    map[string]int `json:"by_model"`
	Malformed  int            `json:"malformed,omitempty"`
}

// ComputeStats groups snapshot entries by scope, model and target language.
// Keys that are not fingerprints are counted as malformed.
func ComputeStats(snap *Snapshot) Stats {
	stats := Stats{
		Entries:    snap.Len(),
		ByLanguage: make(map[string]int),
		ByModel:    make(map[string]int),
	}
	if snap == nil {
		return stats
	}

	scopes := make(map[string]struct{})
	for key := range snap.Entries {
		parts := strings.Split(key, readlai.FingerprintSeparator)
		if len(parts) < 5 {
			stats.Malformed++
			continue
		}
		// The ID may itself contain the separator, so count model and
		// language from the end.
		scopes[parts[0]] = struct{}{}
		stats.ByModel[parts[len(parts)-2]]++
		stats.ByLanguage[parts[len(parts)-1]]++
	}
	stats.Scopes = len(scopes)
	return stats
}

// LoadStats loads the store's snapshot and summarizes it.
func LoadStats(ctx context.Context, store Store) (Stats, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(snap), nil
}

// SortedKeys returns the keys of counts in ascending order.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
