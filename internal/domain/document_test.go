package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_TypeLabel(t *testing.T) {
	tests := []struct {
		fileType string
		expected string
	}{
		{"application/pdf", "PDF"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "DOCX"},
		{"text/plain", "TXT"},
		{"image/png", "PNG"},
		{"binary", "BINARY"},
	}

	for _, tt := range tests {
		t.Run(tt.fileType, func(t *testing.T) {
			assert.Equal(t, tt.expected, Document{FileType: tt.fileType}.TypeLabel())
		})
	}
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		input     string
		extension string
		wantErr   bool
	}{
		{input: "csv", extension: "csv"},
		{input: "excel", extension: "xlsx"},
		{input: "PDF", extension: "pdf"},
		{input: "docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseExportFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.extension, f.Extension())
		})
	}

	assert.Equal(t, "report.pdf_analysis.xlsx", ExportExcel.FileName("report.pdf"))
}

func TestRequestState(t *testing.T) {
	assert.Equal(t, StatusIdle, Idle[int]().Status)
	assert.Equal(t, StatusLoading, Loading[int]().Status)
	assert.False(t, Loading[int]().Ready())

	ok := Succeeded([]WordStat{{Word: "a", Frequency: 1}})
	assert.True(t, ok.Ready())
	assert.Len(t, ok.Data, 1)

	failed := Failed[[]WordStat](assert.AnError)
	assert.Equal(t, StatusError, failed.Status)
	assert.ErrorIs(t, failed.Err, assert.AnError)
}
