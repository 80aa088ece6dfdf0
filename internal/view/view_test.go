package view

import (
	"encoding/xml"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf16"

	"vocabdash/internal/analysis"
	"vocabdash/internal/domain"
	"vocabdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name          string
		page          int
		expectedPage  int
		expectedFirst int
		expectedLen   int
	}{
		{"first page", 0, 0, 0, 20},
		{"last page", 2, 2, 40, 5},
		{"past the end", 9, 2, 40, 5},
		{"negative page", -1, 0, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, page, pages := Paginate(items, tt.page, TablePageSize)
			assert.Equal(t, 3, pages)
			assert.Equal(t, tt.expectedPage, page)
			require.Len(t, rows, tt.expectedLen)
			assert.Equal(t, tt.expectedFirst, rows[0])
		})
	}

	rows, page, pages := Paginate([]int(nil), 3, TablePageSize)
	assert.Empty(t, rows)
	assert.Equal(t, 0, page)
	assert.Equal(t, 1, pages)
}

func TestBarChart(t *testing.T) {
	chart := BarChart(analysis.TopWords(testutil.NewTestWords(), 10))
	lines := strings.Split(chart, "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "the "))
	assert.True(t, strings.HasSuffix(lines[0], " 120"))
	assert.True(t, strings.HasPrefix(lines[2], "xylophone "))
	assert.Greater(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
	assert.Equal(t, 1, strings.Count(lines[2], "█"))

	assert.Equal(t, "No words yet.", BarChart(nil))
}

func TestCoverageChart(t *testing.T) {
	text := CoverageChart(analysis.ComputeCoverage(testutil.NewTestWords()))

	assert.Contains(t, text, "33%")
	assert.Contains(t, text, "Translated: 1")
	assert.Contains(t, text, "Untranslated: 2")
}

func TestDashboard(t *testing.T) {
	docs := []domain.Document{testutil.NewTestDocument(1, "speech.txt")}

	text := Dashboard("reader@example.com", docs, 12, 0)

	assert.Contains(t, text, "Total Documents: 1")
	assert.Contains(t, text, "Dictionary Words: 12")
	assert.Contains(t, text, "1. speech.txt · TXT · Today")

	empty := Dashboard("reader@example.com", nil, 0, 0)
	assert.Contains(t, empty, "No documents yet")
}

func TestDashboardPagesLongDocumentLists(t *testing.T) {
	docs := make([]domain.Document, 120)
	for i := range docs {
		docs[i] = testutil.NewTestDocument(int64(i+1), fmt.Sprintf("quarterly_report_%03d.pdf", i+1))
	}

	first := Dashboard("reader@example.com", docs, 0, 0)
	assert.Contains(t, first, "Total Documents: 120")
	assert.Contains(t, first, "1. quarterly_report_001.pdf")
	assert.NotContains(t, first, "quarterly_report_011.pdf")
	assert.Contains(t, first, "Page 1/12")
	assert.Less(t, utf16Len(first), 4096)

	last := Dashboard("reader@example.com", docs, 0, 99)
	assert.Contains(t, last, "120. quarterly_report_120.pdf")
	assert.Contains(t, last, "Page 12/12")
	assert.Contains(t, last, "Total Documents: 120")
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func TestDocumentSummary(t *testing.T) {
	doc := testutil.NewTestDocument(1, "speech.txt")

	text := DocumentSummary(doc, testutil.NewTestWords(), 10)

	assert.Contains(t, text, "Top 3 words")
	assert.Contains(t, text, "33%")
	assert.Contains(t, DocumentSummary(doc, nil, 10), "no analyzed words")
}

func TestTable(t *testing.T) {
	all := testutil.NewTestWords()
	q := domain.TableQuery{Sort: domain.DefaultSort(), SearchTerm: "xyl"}
	rows := analysis.Project(all, q)

	text := Table(all, rows, q, 0, 1)

	assert.Contains(t, text, "3 Unique Words · ✨ 1 Translated")
	assert.Contains(t, text, `"xyl": 1 matches`)
	assert.Contains(t, text, "#1 xylophone · 1 · জাইলোফোন")
	assert.NotContains(t, text, "#2")
	assert.Contains(t, text, "Calls ↓")

	none := Table(all, nil, domain.TableQuery{Sort: domain.DefaultSort(), SearchTerm: "zzz"}, 0, 1)
	assert.Contains(t, none, "No matching words found.")
}

func TestTable_Paging(t *testing.T) {
	var all []domain.WordStat
	for i := 0; i < 25; i++ {
		all = append(all, domain.WordStat{Word: fmt.Sprintf("w%02d", i), Frequency: 100 - i})
	}
	q := domain.TableQuery{Sort: domain.DefaultSort()}

	text := Table(all, analysis.Project(all, q), q, 1, 2)

	assert.Contains(t, text, "#21 w20 · 80 · —")
	assert.Contains(t, text, "Page 2/2")
	assert.NotContains(t, text, "#20 ")
}

func TestSortLabel(t *testing.T) {
	cfg := domain.SortConfig{Key: domain.SortByWord, Direction: domain.SortAsc}

	assert.Equal(t, "Word ↑", SortLabel(cfg, domain.SortByWord))
	assert.Equal(t, "Calls ↕", SortLabel(cfg, domain.SortByFrequency))
}

func TestUploadProgress(t *testing.T) {
	assert.Contains(t, UploadProgress("a.txt", domain.StepUploading), "45%")
	assert.Contains(t, UploadProgress("a.txt", domain.StepProcessing), "85%")
	assert.Contains(t, UploadProgress("a.txt", domain.StepDone), "100%")
	assert.Contains(t, UploadProgress("", domain.StepIdle), "PDF, DOCX or TXT")
}

func TestTranslationPrompt(t *testing.T) {
	flow := domain.NewTranslationFlow("people", 1)
	flow.Suggested([]string{"জনগণ"}, nil)
	assert.Contains(t, TranslationPrompt(flow), "Suggestions")

	failed := domain.NewTranslationFlow("people", 1)
	failed.Suggested(nil, fmt.Errorf("timeout"))
	assert.Contains(t, TranslationPrompt(failed), "unavailable")
}

func TestDictionary(t *testing.T) {
	entries := []domain.DictionaryEntry{{ID: 1, Word: "people", Translation: "জনগণ"}}

	assert.Contains(t, Dictionary(entries, 1, ""), "1. people — জনগণ")
	assert.Contains(t, Dictionary(nil, 0, ""), "Your dictionary is empty")
	assert.Contains(t, Dictionary(nil, 4, "zzz"), "No matching words found.")
}

func TestCloudSVG(t *testing.T) {
	words := analysis.CloudLayout([]domain.WordStat{
		{Word: "the", Frequency: 120},
		{Word: "<script>", Frequency: 3},
		{Word: "rock&roll", Frequency: 1},
	}, rand.New(rand.NewSource(1)))

	svg := CloudSVG(words)

	var doc struct {
		XMLName xml.Name `xml:"svg"`
		Texts   []string `xml:"text"`
	}
	require.NoError(t, xml.Unmarshal(svg, &doc))
	assert.Equal(t, []string{"the", "<script>", "rock&roll"}, doc.Texts)
	assert.NotContains(t, string(svg), "<script>")
}

func TestCloudSVG_Empty(t *testing.T) {
	svg := CloudSVG(nil)

	var doc struct {
		XMLName xml.Name `xml:"svg"`
	}
	assert.NoError(t, xml.Unmarshal(svg, &doc))
}
