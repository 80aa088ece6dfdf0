// Package analysis derives the dashboard projections of a document's word list:
// top-N ranking, translation coverage, the sorted and filtered table and the word cloud layout.
// All functions are pure and recomputed on every render.
package analysis

import (
	"math"

	"vocabdash/internal/domain"
)

// DefaultTopN is the size of the frequency ranking
const DefaultTopN = 10

// BarPoint is one bar of the frequency chart
type BarPoint struct {
	Name  string
	Value int
}

// TopWords takes the first n entries in backend order.
// The input is expected frequency-descending already and is not re-sorted.
func TopWords(stats []domain.WordStat, n int) []BarPoint {
	if n <= 0 {
		n = DefaultTopN
	}
	n = min(n, len(stats))

	points := make([]BarPoint, 0, n)
	for _, s := range stats[:n] {
		points = append(points, BarPoint{Name: s.Word, Value: s.Frequency})
	}
	return points
}

// Coverage is the translated/untranslated partition of a word list
type Coverage struct {
	Translated   int
	Untranslated int
	Percent      int
}

// Total returns the number of words partitioned
func (c Coverage) Total() int {
	return c.Translated + c.Untranslated
}

// ComputeCoverage partitions words by whether they carry a translation
func ComputeCoverage(stats []domain.WordStat) Coverage {
	translated := 0
	for _, s := range stats {
		if s.HasTranslation() {
			translated++
		}
	}

	total := max(len(stats), 1)
	return Coverage{
		Translated:   translated,
		Untranslated: len(stats) - translated,
		Percent:      int(math.Round(float64(translated) / float64(total) * 100)),
	}
}

// Untranslated returns up to limit words without a translation, in input order
func Untranslated(stats []domain.WordStat, limit int) []string {
	var words []string
	for _, s := range stats {
		if limit > 0 && len(words) >= limit {
			break
		}
		if !s.HasTranslation() {
			words = append(words, s.Word)
		}
	}
	return words
}
