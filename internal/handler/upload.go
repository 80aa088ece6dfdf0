package handler

import (
	"errors"
	"fmt"

	"vocabdash/internal/domain"
	"vocabdash/internal/service"
	"vocabdash/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleUploadPrompt explains how to upload a document
func (h *Handler) handleUploadPrompt(c tele.Context) error {
	userID := c.Sender().ID
	if flow := h.GetState(userID).Translation; flow != nil {
		flow.Close()
	}
	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.Translation = nil
	})

	text := view.UploadProgress("", domain.StepIdle)
	if h.opts.MaxUploadBytes > 0 {
		text += fmt.Sprintf("\nMaximum size: %d MB.", h.opts.MaxUploadBytes>>20)
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnDashboard))
	return h.show(c, text, menu)
}

// handleDocumentUpload uploads a file sent to the chat and reports each step
func (h *Handler) handleDocumentUpload(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return c.Send("Please select a file to upload.")
	}

	filename := doc.FileName
	if err := h.uploadService.Validate(filename, doc.FileSize); err != nil {
		uerr := &service.UploadError{Step: domain.StepIdle, Err: err}
		return c.Send("❌ " + uerr.Message())
	}

	progress, err := h.bot.Send(c.Recipient(), view.UploadProgress(filename, domain.StepUploading))
	if err != nil {
		h.logger.Error("Failed to send upload progress", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}

	report := func(step domain.UploadStep) {
		if step == domain.StepIdle {
			return
		}
		if _, err := h.bot.Edit(progress, view.UploadProgress(filename, step)); err != nil {
			h.logger.Debug("Failed to edit upload progress", zap.Error(err), zap.Stringer("step", step))
		}
	}

	body, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download file from Telegram",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("filename", filename),
		)
		_, _ = h.bot.Edit(progress, "❌ Could not read the file from Telegram. Please send it again.")
		return nil
	}
	defer body.Close()

	uploaded, err := h.uploadService.Run(h.ctx, h.token(c), service.UploadRequest{
		Filename: filename,
		Size:     doc.FileSize,
		Body:     body,
	}, report)
	if err != nil {
		if isUnauthorized(err) {
			_, _ = h.bot.Edit(progress, msgSessionExpired)
			return h.handleAPIError(c, err, "")
		}

		var uerr *service.UploadError
		text := "❌ Upload failed. Please try again."
		if errors.As(err, &uerr) {
			text = "❌ " + uerr.Message()
			if uerr.RolledBack {
				text += "\nThe unprocessed upload was removed."
			}
		}

		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnDashboard))
		_, _ = h.bot.Edit(progress, text+"\n\nSend the file again to retry.", menu)
		return nil
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		s.Documents = append(s.Documents, *uploaded)
	})

	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("📄 Open "+uploaded.Filename, fmt.Sprintf("%s%d", cbDocument, uploaded.ID))),
		menu.Row(btnDashboard),
	)
	_, err = h.bot.Edit(progress, view.UploadProgress(uploaded.Filename, domain.StepDone), menu)
	return err
}
