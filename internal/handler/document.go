package handler

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"vocabdash/internal/analysis"
	"vocabdash/internal/domain"
	"vocabdash/internal/service"
	"vocabdash/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgNoDocument = "Select a document on the dashboard first."

// handleDocumentSelection opens a document from the dashboard
func (h *Handler) handleDocumentSelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	id, ok := parseSuffix(data, cbDocument)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown document"})
	}

	doc, err := h.findDocument(c, id)
	if err != nil {
		return h.handleAPIError(c, err, "Could not load your documents.")
	}
	if doc == nil {
		return h.alert(c, "This document no longer exists.")
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.Document = doc
		s.Words = domain.Loading[[]domain.WordStat]()
		s.Query = domain.TableQuery{Sort: domain.DefaultSort()}
		s.Page = 0
		s.Translation = nil
	})

	if err := h.loadWords(c, doc.ID); err != nil {
		if errors.Is(err, service.ErrStaleResponse) {
			return c.Respond()
		}
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
	}
	return h.renderDocument(c)
}

// findDocument looks the document up in the dashboard list, refetching it when needed
func (h *Handler) findDocument(c tele.Context, id int64) (*domain.Document, error) {
	for _, d := range h.GetState(c.Sender().ID).Documents {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}

	docs, err := h.documentService.ListDocuments(h.ctx, h.token(c))
	if err != nil {
		return nil, err
	}
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) { s.Documents = docs })

	for _, d := range docs {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, nil
}

// loadWords fetches the word list into the user's state.
// Stale responses leave the state untouched.
func (h *Handler) loadWords(c tele.Context, documentID int64) error {
	userID := c.Sender().ID

	words, err := h.documentService.Words(h.ctx, userID, h.token(c), documentID)
	if errors.Is(err, service.ErrStaleResponse) {
		return err
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		if s.Document == nil || s.Document.ID != documentID {
			return
		}
		if err != nil {
			s.Words = domain.Failed[[]domain.WordStat](err)
			return
		}
		s.Words = domain.Succeeded(words)
	})

	if err != nil {
		h.logger.Error("Failed to load document words",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("document_id", documentID),
		)
	}
	return err
}

// handleDocumentBack returns to the selected document's summary
func (h *Handler) handleDocumentBack(c tele.Context) error {
	userID := c.Sender().ID
	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		if s.Translation != nil {
			s.Translation.Close()
			s.Translation = nil
		}
	})
	return h.renderDocument(c)
}

// renderDocument shows the charts and actions of the selected document
func (h *Handler) renderDocument(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.Document == nil {
		return h.handleDashboard(c)
	}
	doc := *state.Document

	switch state.Words.Status {
	case domain.StatusError:
		menu := &tele.ReplyMarkup{}
		menu.Inline(
			menu.Row(menu.Data("🔄 Retry", fmt.Sprintf("%s%d", cbDocument, doc.ID))),
			menu.Row(btnDashboard),
		)
		return h.show(c, fmt.Sprintf("📄 %s\n\n⚠️ Could not load the analysis. Please try again.", doc.Filename), menu)
	case domain.StatusLoading, domain.StatusIdle:
		return h.show(c, fmt.Sprintf("📄 %s\n\n⏳ Loading…", doc.Filename), nil)
	}

	return h.show(c, view.DocumentSummary(doc, state.Words.Data, h.opts.TopWords), documentMarkup(doc))
}

// readyWords returns the loaded word list of the selected document, answering the user when there is none
func (h *Handler) readyWords(c tele.Context) (*domain.StateData, bool) {
	state := h.GetState(c.Sender().ID)
	if state.Document == nil || !state.Words.Ready() {
		_ = h.alert(c, msgNoDocument)
		return nil, false
	}
	return state, true
}

// handleTablePage shows a page of the frequency table
func (h *Handler) handleTablePage(c tele.Context, data string) error {
	page, ok := parseSuffix(data, cbTable)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) { s.Page = int(page) })
	return h.showTable(c)
}

// handleSort toggles the table sort
func (h *Handler) handleSort(c tele.Context, data string) error {
	key := domain.SortKey(strings.TrimPrefix(data, cbSort))
	if key != domain.SortByWord && key != domain.SortByFrequency {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown column"})
	}

	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.Query.Sort = analysis.ToggleSort(s.Query.Sort, key)
		s.Page = 0
	})
	return h.showTable(c)
}

// handleSearchPrompt asks for a search term
func (h *Handler) handleSearchPrompt(c tele.Context) error {
	if _, ok := h.readyWords(c); !ok {
		return nil
	}
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) { s.State = domain.StateWaitingWordSearch })

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnBackToDocument))
	return h.show(c, "🔍 Send a word or a part of it:", menu)
}

// handleSearchClear drops the search term
func (h *Handler) handleSearchClear(c tele.Context) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.Query.SearchTerm = ""
		s.Page = 0
	})
	return h.showTable(c)
}

// handleWordSearch applies a typed search term
func (h *Handler) handleWordSearch(c tele.Context, term string) error {
	h.UpdateState(c.Sender().ID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.Query.SearchTerm = term
		s.Page = 0
	})
	return h.showTable(c)
}

// showTable renders the current page of the projected table
func (h *Handler) showTable(c tele.Context) error {
	state, ok := h.readyWords(c)
	if !ok {
		return nil
	}
	words := state.Words.Data

	rows := analysis.Project(words, state.Query)
	pageRows, page, pages := view.Paginate(rows, state.Page, view.TablePageSize)

	index := make(map[string]int, len(words))
	for i, w := range words {
		index[w.Word] = i
	}

	return h.show(c,
		view.Table(words, rows, state.Query, page, pages),
		tableMarkup(pageRows, index, state.Query, page, pages),
	)
}

// handleCloud sends the word cloud as an SVG file
func (h *Handler) handleCloud(c tele.Context) error {
	state, ok := h.readyWords(c)
	if !ok {
		return nil
	}
	if len(state.Words.Data) == 0 {
		return h.alert(c, "This document has no words to draw.")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svg := view.CloudSVG(analysis.CloudLayout(state.Words.Data, rng))

	_ = c.Respond()
	return c.Send(&tele.Document{
		File:     tele.FromReader(bytes.NewReader(svg)),
		FileName: state.Document.Filename + "_cloud.svg",
		MIME:     "image/svg+xml",
		Caption:  "☁️ Vocabulary cloud of " + state.Document.Filename,
	})
}

// handleExport downloads a report and sends it as a file
func (h *Handler) handleExport(c tele.Context, data string) error {
	state := h.GetState(c.Sender().ID)
	if state.Document == nil {
		return h.alert(c, msgNoDocument)
	}

	format, err := domain.ParseExportFormat(strings.TrimPrefix(data, cbExport))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown format"})
	}

	file, err := h.documentService.Export(h.ctx, h.token(c), *state.Document, format)
	if err != nil {
		return h.handleAPIError(c, err, "Export failed. Please try again.")
	}

	_ = c.Respond()
	return c.Send(&tele.Document{
		File:     tele.FromReader(bytes.NewReader(file.Data)),
		FileName: file.Filename,
		MIME:     file.ContentType,
	})
}

// handleBatchTranslate asks the backend to translate the untranslated words, then refetches
func (h *Handler) handleBatchTranslate(c tele.Context) error {
	state, ok := h.readyWords(c)
	if !ok {
		return nil
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "🤖 Translating…"})

	sent, err := h.documentService.BatchTranslate(h.ctx, h.token(c), state.Words.Data)
	if errors.Is(err, service.ErrNothingToTranslate) {
		return c.Send("All words are already translated!")
	}
	if err != nil {
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
		h.logger.Error("Batch translation failed", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
		return c.Send("AI Translation failed. Please try again later.")
	}

	h.logger.Info("Batch translation requested", zap.Int("words", sent), zap.Int64("user_id", c.Sender().ID))

	if err := h.loadWords(c, state.Document.ID); err != nil && isUnauthorized(err) {
		return h.handleAPIError(c, err, "")
	}
	return h.renderDocument(c)
}

// handleDeletePrompt asks to confirm deleting a document
func (h *Handler) handleDeletePrompt(c tele.Context, data string) error {
	id, ok := parseSuffix(data, cbDelete)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown document"})
	}

	return h.show(c,
		"🗑 Are you sure you want to delete this document? This will free up storage space in your bucket.",
		confirmMarkup(fmt.Sprintf("%s%d", cbDeleteConfirm, id), btnBackToDocument),
	)
}

// handleDeleteConfirmed deletes a document and returns to the dashboard
func (h *Handler) handleDeleteConfirmed(c tele.Context, data string) error {
	userID := c.Sender().ID

	id, ok := parseSuffix(data, cbDeleteConfirm)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown document"})
	}

	if err := h.documentService.DeleteDocument(h.ctx, userID, h.token(c), id); err != nil {
		if isUnauthorized(err) {
			return h.handleAPIError(c, err, "")
		}
		h.logger.Error("Failed to delete document", zap.Error(err), zap.Int64("document_id", id))
		return h.alert(c, "Failed to delete the document. Please try again.")
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		if s.Document != nil && s.Document.ID == id {
			s.Document = nil
			s.Words = domain.Idle[[]domain.WordStat]()
		}
	})
	return h.handleDashboard(c)
}
