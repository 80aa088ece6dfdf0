// Package view renders dashboard projections as chat text and files.
package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vocabdash/internal/analysis"
	"vocabdash/internal/domain"
)

const (
	// TablePageSize is the number of table rows per message
	TablePageSize = 20
	// DashboardPageSize is the number of documents listed per dashboard message
	DashboardPageSize = 10

	barWidth = 16
)

// Paginate returns the items of a 0-based page, the clamped page and the page count
func Paginate[T any](items []T, page, size int) ([]T, int, int) {
	if size <= 0 {
		size = TablePageSize
	}
	pages := max((len(items)+size-1)/size, 1)
	page = min(max(page, 0), pages-1)

	start := page * size
	end := min(start+size, len(items))
	return items[start:end], page, pages
}

// BarChart renders the frequency ranking as horizontal text bars
func BarChart(points []analysis.BarPoint) string {
	if len(points) == 0 {
		return "No words yet."
	}

	maxValue, nameWidth := 0, 0
	for _, p := range points {
		maxValue = max(maxValue, p.Value)
		nameWidth = max(nameWidth, utf8.RuneCountInString(p.Name))
	}

	var b strings.Builder
	for _, p := range points {
		filled := 0
		if maxValue > 0 {
			filled = max(p.Value*barWidth/maxValue, 1)
		}
		pad := nameWidth - utf8.RuneCountInString(p.Name)
		fmt.Fprintf(&b, "%s%s %s %d\n", p.Name, strings.Repeat(" ", pad), strings.Repeat("█", filled), p.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// CoverageChart renders the translation coverage as a two-slice gauge
func CoverageChart(c analysis.Coverage) string {
	filled := c.Percent * barWidth / 100
	return fmt.Sprintf("%s%s %d%%\n🟢 Translated: %d\n⚪ Untranslated: %d",
		strings.Repeat("▰", filled), strings.Repeat("▱", barWidth-filled), c.Percent,
		c.Translated, c.Untranslated)
}

// Dashboard renders the stat tiles and one page of the document list.
// The tiles always count every document.
func Dashboard(email string, docs []domain.Document, dictionarySize, page int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Dashboard\n%s\n\n", email)
	fmt.Fprintf(&b, "📄 Total Documents: %d\n", len(docs))
	fmt.Fprintf(&b, "📚 Dictionary Words: %d\n\n", dictionarySize)

	if len(docs) == 0 {
		b.WriteString("No documents yet. Send /upload to analyze your first file.")
		return b.String()
	}

	pageDocs, page, pages := Paginate(docs, page, DashboardPageSize)
	offset := page * DashboardPageSize

	b.WriteString("Your documents:\n")
	for i, d := range pageDocs {
		fmt.Fprintf(&b, "%d. %s · %s · %s\n", offset+i+1, d.Filename, d.TypeLabel(), d.UploadDate.DisplayString())
	}
	if pages > 1 {
		fmt.Fprintf(&b, "\nPage %d/%d", page+1, pages)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DocumentSummary renders the charts of a selected document
func DocumentSummary(doc domain.Document, words []domain.WordStat, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 %s\n", doc.Filename)
	fmt.Fprintf(&b, "%s · uploaded %s\n\n", doc.TypeLabel(), doc.UploadDate.DisplayString())

	if len(words) == 0 {
		b.WriteString("This document has no analyzed words yet.")
		return b.String()
	}

	if topN <= 0 {
		topN = analysis.DefaultTopN
	}
	fmt.Fprintf(&b, "🏆 Top %d words\n", min(topN, len(words)))
	b.WriteString(BarChart(analysis.TopWords(words, topN)))
	b.WriteString("\n\n🌐 Translation coverage\n")
	b.WriteString(CoverageChart(analysis.ComputeCoverage(words)))
	return b.String()
}

func sortMarker(cfg domain.SortConfig, key domain.SortKey) string {
	if cfg.Key != key {
		return "↕"
	}
	if cfg.Direction == domain.SortAsc {
		return "↑"
	}
	return "↓"
}

// SortLabel is the caption of a sort button
func SortLabel(cfg domain.SortConfig, key domain.SortKey) string {
	name := "Word"
	if key == domain.SortByFrequency {
		name = "Calls"
	}
	return fmt.Sprintf("%s %s", name, sortMarker(cfg, key))
}

// Table renders one page of the projected frequency table.
// all is the unfiltered word list, used for the header counts.
func Table(all, rows []domain.WordStat, q domain.TableQuery, page, pages int) string {
	var b strings.Builder
	coverage := analysis.ComputeCoverage(all)
	fmt.Fprintf(&b, "🔤 %d Unique Words · ✨ %d Translated\n", len(all), coverage.Translated)
	if q.SearchTerm != "" {
		fmt.Fprintf(&b, "🔍 \"%s\": %d matches\n", q.SearchTerm, len(rows))
	}
	fmt.Fprintf(&b, "Sorted by %s\n\n", SortLabel(q.Sort, q.Sort.Key))

	if len(rows) == 0 {
		b.WriteString("No matching words found.")
		return b.String()
	}

	pageRows, page, pages := Paginate(rows, page, TablePageSize)
	offset := page * TablePageSize
	for i, r := range pageRows {
		translation := "—"
		if r.HasTranslation() {
			translation = r.Translation
		}
		fmt.Fprintf(&b, "#%d %s · %d · %s\n", offset+i+1, r.Word, r.Frequency, translation)
	}
	if pages > 1 {
		fmt.Fprintf(&b, "\nPage %d/%d", page+1, pages)
	}
	return strings.TrimRight(b.String(), "\n")
}

// UploadProgress renders the upload flow state
func UploadProgress(filename string, step domain.UploadStep) string {
	switch step {
	case domain.StepUploading:
		return fmt.Sprintf("⏫ Uploading %s…\n%s 45%%", filename, progressBar(45))
	case domain.StepProcessing:
		return fmt.Sprintf("⚙️ Processing %s…\n%s 85%%", filename, progressBar(85))
	case domain.StepDone:
		return fmt.Sprintf("✅ %s analyzed!\n%s 100%%", filename, progressBar(100))
	default:
		return "📤 Send a PDF, DOCX or TXT file to analyze its vocabulary."
	}
}

func progressBar(percent int) string {
	filled := percent * barWidth / 100
	return strings.Repeat("▰", filled) + strings.Repeat("▱", barWidth-filled)
}

// TranslationPrompt renders the translation entry card
func TranslationPrompt(flow *domain.TranslationFlow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✍️ Add meaning for \"%s\"\n\n", flow.Word)

	switch {
	case flow.SuggestionErr != nil:
		b.WriteString("⚠️ Suggestions are unavailable right now.\n")
	case len(flow.Suggestions) > 0:
		b.WriteString("💡 Suggestions: tap one or type your own.\n")
	default:
		b.WriteString("No suggestions for this word.\n")
	}
	b.WriteString("\nSend the translation as a message.")
	return b.String()
}

// Dictionary renders the user's saved translations
func Dictionary(entries []domain.DictionaryEntry, total int, term string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 My Dictionary · %d words\n", total)
	if term != "" {
		fmt.Fprintf(&b, "🔍 \"%s\": %d matches\n", term, len(entries))
	}
	b.WriteString("\n")

	if total == 0 {
		b.WriteString("Your dictionary is empty. Add meanings from a document's word table.")
		return b.String()
	}
	if len(entries) == 0 {
		b.WriteString("No matching words found.")
		return b.String()
	}

	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s — %s · %s\n", i+1, e.Word, e.Translation, e.CreatedAt.DisplayString())
	}
	return strings.TrimRight(b.String(), "\n")
}
