package view

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"vocabdash/internal/analysis"
)

const (
	cloudWidth   = 800
	cloudPadding = 4
	glyphRatio   = 0.6
)

var cloudPalette = []string{"#2563eb", "#3b82f6", "#60a5fa", "#93c5fd", "#1e3a8a"}

type placedWord struct {
	word analysis.CloudWord
	x, y float64
}

// CloudSVG renders the word cloud as an SVG document.
// Words flow left to right in rows; rotated words stand upright in their row.
func CloudSVG(words []analysis.CloudWord) []byte {
	var placed []placedWord
	x, y, rowHeight := float64(cloudPadding), float64(cloudPadding), 0.0

	for _, w := range words {
		length := float64(utf8.RuneCountInString(w.Text)) * w.Size * glyphRatio
		boxW, boxH := length, w.Size
		if w.Rotation == 90 {
			boxW, boxH = w.Size, length
		}

		if x+boxW > cloudWidth-cloudPadding && x > cloudPadding {
			x = cloudPadding
			y += rowHeight + cloudPadding
			rowHeight = 0
		}

		px, py := x, y+w.Size
		if w.Rotation == 90 {
			px, py = x+w.Size*0.2, y
		}
		placed = append(placed, placedWord{word: w, x: px, y: py})

		x += boxW + cloudPadding
		rowHeight = max(rowHeight, boxH)
	}
	height := y + rowHeight + cloudPadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%.0f" viewBox="0 0 %d %.0f">`,
		cloudWidth, height, cloudWidth, height)
	buf.WriteString("\n")
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="#ffffff"/>`)
	buf.WriteString("\n")

	for i, p := range placed {
		transform := ""
		if p.word.Rotation != 0 {
			transform = fmt.Sprintf(` transform="rotate(%d %.1f %.1f)"`, p.word.Rotation, p.x, p.y)
		}
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" font-family="Inter, sans-serif" font-weight="bold" font-size="%.1f" fill="%s"%s>`,
			p.x, p.y, p.word.Size, cloudPalette[i%len(cloudPalette)], transform)
		_ = xml.EscapeText(&buf, []byte(p.word.Text))
		buf.WriteString("</text>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
