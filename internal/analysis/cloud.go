package analysis

import (
	"math"
	"math/rand"

	"vocabdash/internal/domain"
)

const (
	baseFontSize  = 10
	fontSizeScale = 15
)

// CloudWord is a word placed in the word cloud
type CloudWord struct {
	Text     string
	Value    int
	Size     float64
	Rotation int
}

// FontSize compresses frequency logarithmically so frequent words don't dominate.
// Non-positive frequencies get the base size.
func FontSize(frequency int) float64 {
	if frequency <= 0 {
		return baseFontSize
	}
	return math.Log2(float64(frequency))*fontSizeScale + baseFontSize
}

// CloudLayout maps each word to a size and a rotation of 0 or 90 degrees.
// Rotation is random per call; pass a seeded rng to reproduce a layout.
func CloudLayout(stats []domain.WordStat, rng *rand.Rand) []CloudWord {
	words := make([]CloudWord, 0, len(stats))
	for _, s := range stats {
		rotation := 0
		if rng.Float64() > 0.5 {
			rotation = 90
		}
		words = append(words, CloudWord{
			Text:     s.Word,
			Value:    s.Frequency,
			Size:     FontSize(s.Frequency),
			Rotation: rotation,
		})
	}
	return words
}
