package domain

import (
	"fmt"
	"strings"
)

// Document is an uploaded document owned by the backend
type Document struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	UploadDate Timestamp `json:"upload_date"`
}

var typeLabels = map[string]string{
	"application/pdf": "PDF",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "DOCX",
	"text/plain": "TXT",
}

// TypeLabel returns a short upper-case label for the document's MIME type
func (d Document) TypeLabel() string {
	if label, ok := typeLabels[d.FileType]; ok {
		return label
	}
	_, sub, found := strings.Cut(d.FileType, "/")
	if !found {
		return strings.ToUpper(d.FileType)
	}
	return strings.ToUpper(sub)
}

// Account is a user account created by signup
type Account struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}

// ExportFormat is a report format the backend can generate
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
	ExportPDF   ExportFormat = "pdf"
)

// ParseExportFormat validates a format name
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportCSV, ExportExcel, ExportPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Extension returns the file extension of the format
func (f ExportFormat) Extension() string {
	if f == ExportExcel {
		return "xlsx"
	}
	return string(f)
}

// FileName returns the download name for a document's report
func (f ExportFormat) FileName(documentFilename string) string {
	return fmt.Sprintf("%s_analysis.%s", documentFilename, f.Extension())
}

// ExportFile is a generated report
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
