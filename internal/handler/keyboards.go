package handler

import (
	"fmt"

	"vocabdash/internal/domain"
	"vocabdash/internal/view"

	tele "gopkg.in/telebot.v3"
)

// Inline keyboard buttons
var (
	btnDashboard = tele.Btn{
		Unique: "dashboard",
		Text:   "📊 Dashboard",
	}
	btnUpload = tele.Btn{
		Unique: "upload",
		Text:   "📤 Upload",
	}
	btnDictionary = tele.Btn{
		Unique: "dictionary",
		Text:   "📚 My Dictionary",
	}
	btnLogout = tele.Btn{
		Unique: "logout",
		Text:   "🚪 Logout",
	}
	btnLogin = tele.Btn{
		Unique: "login",
		Text:   "🔑 Login",
	}
	btnSignup = tele.Btn{
		Unique: "signup",
		Text:   "✨ Sign up",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBackToDocument = tele.Btn{
		Unique: "document",
		Text:   "◀️ Back to document",
	}
)

// Callback prefixes of dynamic buttons
const (
	cbDocument       = "doc_"
	cbDashboardPage  = "dashpage_"
	cbTable          = "table_"
	cbSort           = "sort_"
	cbWord           = "word_"
	cbSuggestion     = "sugg_"
	cbExport         = "export_"
	cbDelete         = "del_"
	cbDeleteConfirm  = "delok_"
	cbDictPage       = "dpage_"
	cbDictDelete     = "ddel_"
	cbDictDeleteOK   = "ddelok_"
	cbSearch         = "search"
	cbSearchClear    = "search_clear"
	cbDictSearch     = "dsearch"
	cbDictSearchDrop = "dsearch_clear"
	cbCloud          = "cloud"
	cbBatch          = "batch"
	cbTranslateClose = "tr_cancel"
)

// mainMenuMarkup returns the main menu keyboard for a signed-in user
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDashboard, btnUpload),
		menu.Row(btnDictionary, btnLogout),
	)
	return menu
}

// guestMenuMarkup returns the keyboard for a signed-out user
func guestMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnLogin, btnSignup))
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}

// dashboardMarkup lists one button per document of the page
func dashboardMarkup(docs []domain.Document, page, pages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, d := range docs {
		btn := markup.Data(fmt.Sprintf("📄 %s", d.Filename), fmt.Sprintf("%s%d", cbDocument, d.ID))
		rows = append(rows, markup.Row(btn))
	}
	if nav := pageRow(markup, cbDashboardPage, page, pages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows,
		markup.Row(btnUpload, btnDictionary),
		markup.Row(btnLogout),
	)

	markup.Inline(rows...)
	return markup
}

// documentMarkup holds the actions of a selected document
func documentMarkup(doc domain.Document) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("📋 Word table", cbTable+"0"),
			markup.Data("☁️ Word cloud", cbCloud),
		),
		markup.Row(markup.Data("🤖 Translate with AI", cbBatch)),
		markup.Row(
			markup.Data("CSV", cbExport+string(domain.ExportCSV)),
			markup.Data("Excel", cbExport+string(domain.ExportExcel)),
			markup.Data("PDF", cbExport+string(domain.ExportPDF)),
		),
		markup.Row(markup.Data("🗑 Delete", fmt.Sprintf("%s%d", cbDelete, doc.ID))),
		markup.Row(btnDashboard),
	)
	return markup
}

// confirmMarkup asks to confirm a destructive action
func confirmMarkup(confirmData string, back tele.Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("✅ Yes, delete", confirmData), back),
	)
	return markup
}

// tableMarkup lists a word button per row, sort, search and paging controls.
// Word buttons carry the row's index in the unfiltered list.
func tableMarkup(rows []domain.WordStat, index map[string]int, q domain.TableQuery, page, pages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	kb := []tele.Row{}

	var pair []tele.Btn
	for _, r := range rows {
		label := "➕ " + r.Word
		if r.HasTranslation() {
			label = "✏️ " + r.Word
		}
		pair = append(pair, markup.Data(label, fmt.Sprintf("%s%d", cbWord, index[r.Word])))
		if len(pair) == 2 {
			kb = append(kb, markup.Row(pair...))
			pair = nil
		}
	}
	if len(pair) > 0 {
		kb = append(kb, markup.Row(pair...))
	}

	kb = append(kb, markup.Row(
		markup.Data(view.SortLabel(q.Sort, domain.SortByWord), cbSort+string(domain.SortByWord)),
		markup.Data(view.SortLabel(q.Sort, domain.SortByFrequency), cbSort+string(domain.SortByFrequency)),
	))

	searchRow := tele.Row{markup.Data("🔍 Search", cbSearch)}
	if q.SearchTerm != "" {
		searchRow = append(searchRow, markup.Data("✖️ Clear search", cbSearchClear))
	}
	kb = append(kb, searchRow)

	if nav := pageRow(markup, cbTable, page, pages); len(nav) > 0 {
		kb = append(kb, nav)
	}
	kb = append(kb, markup.Row(btnBackToDocument))

	markup.Inline(kb...)
	return markup
}

// pageRow builds previous/next buttons for 0-based pages
func pageRow(markup *tele.ReplyMarkup, prefix string, page, pages int) tele.Row {
	row := tele.Row{}
	if page > 0 {
		row = append(row, markup.Data("⬅️", fmt.Sprintf("%s%d", prefix, page-1)))
	}
	if page < pages-1 {
		row = append(row, markup.Data("➡️", fmt.Sprintf("%s%d", prefix, page+1)))
	}
	return row
}

// suggestionMarkup offers the fetched suggestions as one-tap answers
func suggestionMarkup(flow *domain.TranslationFlow) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i, s := range flow.Suggestions {
		rows = append(rows, markup.Row(markup.Data(s, fmt.Sprintf("%s%d", cbSuggestion, i))))
	}
	rows = append(rows, markup.Row(markup.Data("❌ Cancel", cbTranslateClose)))
	markup.Inline(rows...)
	return markup
}

// dictionaryMarkup lists a delete button per entry of the page
func dictionaryMarkup(entries []domain.DictionaryEntry, term string, page, pages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	kb := []tele.Row{}

	for _, e := range entries {
		kb = append(kb, markup.Row(markup.Data("🗑 "+e.Word, fmt.Sprintf("%s%d", cbDictDelete, e.ID))))
	}

	searchRow := tele.Row{markup.Data("🔍 Search", cbDictSearch)}
	if term != "" {
		searchRow = append(searchRow, markup.Data("✖️ Clear search", cbDictSearchDrop))
	}
	kb = append(kb, searchRow)

	if nav := pageRow(markup, cbDictPage, page, pages); len(nav) > 0 {
		kb = append(kb, nav)
	}
	kb = append(kb, markup.Row(btnDashboard))

	markup.Inline(kb...)
	return markup
}
