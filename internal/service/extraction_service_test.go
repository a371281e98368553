package service

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return nil, http.ErrHandlerTimeout
}

func TestExtractionServiceUploadSuccess(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{})
	data := buildDocx(t, []string{"The water cycle", "Evaporation and condensation"})

	doc, err := svc.ExtractFromUpload("lesson.docx", data)
	require.NoError(t, err)
	require.Equal(t, models.OriginUploaded, doc.Origin)
	require.Contains(t, doc.ExtractedText, "The water cycle")
	require.Contains(t, doc.ExtractedText, "Evaporation and condensation")
}

func TestExtractionServiceUploadCaseInsensitiveExtension(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{})
	data := buildDocx(t, []string{"Contents"})

	doc, err := svc.ExtractFromUpload("LESSON.DOCX", data)
	require.NoError(t, err)
	require.Contains(t, doc.ExtractedText, "Contents")
}

func TestExtractionServiceRejectsUnsupportedExtension(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{})

	_, err := svc.ExtractFromUpload("notes.txt", []byte("plain text"))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrUnsupportedFileType))
}

func TestExtractionServiceRejectsOversizedUpload(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{MaxFileSizeBytes: 10})

	_, err := svc.ExtractFromUpload("big.docx", make([]byte, 11))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrFileTooLarge))
}

func TestExtractionServiceURLRejectsWithoutNetworkCall(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{})
	transport := &countingTransport{}
	svc.httpClient.Transport = transport

	_, err := svc.ExtractFromURL(context.Background(), "https://files.example.com/notes.txt")
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrUnsupportedFileType))
	require.Zero(t, transport.calls)
}

func TestExtractionServiceCorruptArchive(t *testing.T) {
	svc := NewExtractionService(nil, nil, ExtractionConfig{})

	_, err := svc.ExtractFromUpload("broken.docx", []byte("not a zip"))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrExtractionFailed))
}
