package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"vocabdash/internal/client"
	"vocabdash/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file is too large")
	ErrNoFile              = errors.New("no file selected")
)

var validationMessages = map[error]string{
	ErrUnsupportedFileType: "Invalid file type. Only PDF, DOCX, and TXT allowed.",
	ErrFileTooLarge:        "File is too large.",
	ErrNoFile:              "Please select a file to upload.",
}

const (
	uploadFailedMessage = "Upload failed. Please try again."
	rollbackTimeout     = 30 * time.Second
)

var uploadTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// ContentTypeFor returns the MIME type of a supported document name
func ContentTypeFor(filename string) (string, bool) {
	ct, ok := uploadTypes[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

// UploadRequest is a file picked for upload
type UploadRequest struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// UploadError reports a failed upload
type UploadError struct {
	// Step is the step that failed
	Step       domain.UploadStep
	Err        error
	DocumentID int64
	RolledBack bool
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed while %s: %v", e.Step, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user
func (e *UploadError) Message() string {
	for sentinel, msg := range validationMessages {
		if errors.Is(e.Err, sentinel) {
			return msg
		}
	}
	return client.DetailOf(e.Err, uploadFailedMessage)
}

// StepFunc observes upload progress
type StepFunc func(step domain.UploadStep)

// UploadService runs the two-call upload flow
type UploadService struct {
	api      API
	maxBytes int64
	rollback bool
	logger   *zap.Logger
}

// NewUploadService creates a new upload service.
// With rollback set, a document whose processing fails is deleted again.
func NewUploadService(api API, maxBytes int64, rollback bool, logger *zap.Logger) *UploadService {
	return &UploadService{
		api:      api,
		maxBytes: maxBytes,
		rollback: rollback,
		logger:   logger,
	}
}

// Validate checks a file before any network call
func (s *UploadService) Validate(filename string, size int64) error {
	if filename == "" {
		return ErrNoFile
	}
	if _, ok := ContentTypeFor(filename); !ok {
		return ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Run uploads and processes a document, reporting each step to onStep.
// Any failure reports StepIdle and returns an *UploadError.
func (s *UploadService) Run(ctx context.Context, token string, req UploadRequest, onStep StepFunc) (*domain.Document, error) {
	report := func(step domain.UploadStep) {
		if onStep != nil {
			onStep(step)
		}
	}

	if err := s.Validate(req.Filename, req.Size); err != nil {
		report(domain.StepIdle)
		return nil, &UploadError{Step: domain.StepIdle, Err: err}
	}
	contentType, _ := ContentTypeFor(req.Filename)

	report(domain.StepUploading)
	doc, err := s.api.UploadDocument(ctx, token, req.Filename, contentType, req.Body)
	if err != nil {
		report(domain.StepIdle)
		return nil, &UploadError{Step: domain.StepUploading, Err: err}
	}

	report(domain.StepProcessing)
	if err := s.api.ProcessDocument(ctx, token, doc.ID); err != nil {
		uerr := &UploadError{Step: domain.StepProcessing, Err: err, DocumentID: doc.ID}
		if s.rollback {
			uerr.RolledBack = s.rollbackDocument(ctx, token, doc.ID)
		}
		report(domain.StepIdle)
		return nil, uerr
	}

	report(domain.StepDone)
	s.logger.Info("Document uploaded",
		zap.Int64("document_id", doc.ID),
		zap.String("filename", doc.Filename),
	)
	return doc, nil
}

// rollbackDocument deletes a document whose processing failed.
// It runs even when ctx is already cancelled.
func (s *UploadService) rollbackDocument(ctx context.Context, token string, documentID int64) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := s.api.DeleteDocument(ctx, token, documentID); err != nil {
		s.logger.Warn("Failed to roll back unprocessed document",
			zap.Int64("document_id", documentID),
			zap.Error(err),
		)
		return false
	}

	s.logger.Info("Rolled back unprocessed document", zap.Int64("document_id", documentID))
	return true
}
