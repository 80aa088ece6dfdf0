package analysis

import (
	"sort"
	"strings"

	"vocabdash/internal/domain"
)

// ToggleSort returns the sort after the user picks key.
// The same key flips desc to asc; anything else starts at desc.
func ToggleSort(current domain.SortConfig, key domain.SortKey) domain.SortConfig {
	direction := domain.SortDesc
	if current.Key == key && current.Direction == domain.SortDesc {
		direction = domain.SortAsc
	}
	return domain.SortConfig{Key: key, Direction: direction}
}

// Project filters by a case-insensitive substring of the word, then sorts.
// The input slice is left untouched.
func Project(stats []domain.WordStat, q domain.TableQuery) []domain.WordStat {
	term := strings.ToLower(q.SearchTerm)

	rows := make([]domain.WordStat, 0, len(stats))
	for _, s := range stats {
		if strings.Contains(strings.ToLower(s.Word), term) {
			rows = append(rows, s)
		}
	}

	less := comparator(q.Sort)
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
	return rows
}

func comparator(cfg domain.SortConfig) func(a, b domain.WordStat) bool {
	asc := cfg.Direction == domain.SortAsc

	if cfg.Key == domain.SortByWord {
		return func(a, b domain.WordStat) bool {
			if asc {
				return a.Word < b.Word
			}
			return a.Word > b.Word
		}
	}

	return func(a, b domain.WordStat) bool {
		if asc {
			return a.Frequency < b.Frequency
		}
		return a.Frequency > b.Frequency
	}
}

// FilterDictionary keeps entries whose word or translation contains term, ignoring case
func FilterDictionary(entries []domain.DictionaryEntry, term string) []domain.DictionaryEntry {
	term = strings.ToLower(term)

	filtered := make([]domain.DictionaryEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Word), term) ||
			strings.Contains(strings.ToLower(e.Translation), term) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
