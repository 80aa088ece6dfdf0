package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"vocabdash/internal/domain"
)

// ListDocuments returns the user's documents
func (c *Client) ListDocuments(ctx context.Context, token string) ([]domain.Document, error) {
	docs := []domain.Document{}
	if err := c.call(ctx, http.MethodGet, "/documents/", token, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadDocument sends a file as the multipart field "file".
// The part carries contentType so the backend can validate the file type.
func (c *Client) UploadDocument(ctx context.Context, token, filename, contentType string, r io.Reader) (*domain.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("client: create multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client: copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client: close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/documents/upload", token, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	resp, err := c.send(c.uploadClient, req)
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := decode(resp.body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ProcessDocument asks the backend to extract word frequencies.
// The returned word list is ignored; callers refetch it with DocumentWords.
func (c *Client) ProcessDocument(ctx context.Context, token string, documentID int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/documents/%d/process", documentID), token, nil, "")
	if err != nil {
		return err
	}
	_, err = c.send(c.uploadClient, req)
	return err
}

// DocumentWords returns the document's word statistics in backend order
func (c *Client) DocumentWords(ctx context.Context, token string, documentID int64) ([]domain.WordStat, error) {
	words := []domain.WordStat{}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/documents/%d/words", documentID), token, nil, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// DeleteDocument removes a document and its statistics
func (c *Client) DeleteDocument(ctx context.Context, token string, documentID int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/documents/%d", documentID), token, nil, nil)
}

// ExportDocument downloads a generated report of the document
func (c *Client) ExportDocument(ctx context.Context, token string, doc domain.Document, format domain.ExportFormat) (*domain.ExportFile, error) {
	path := fmt.Sprintf("/documents/%d/export/%s", doc.ID, format)
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.send(c.httpClient, req)
	if err != nil {
		return nil, err
	}

	contentType := resp.header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &domain.ExportFile{
		Filename:    format.FileName(doc.Filename),
		ContentType: contentType,
		Data:        resp.body,
	}, nil
}
