// Package resume turns uploaded resume files into plain text for the skill
// extractor.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/tmc/langchaingo/documentloaders"
)

// ErrUnsupported is returned for uploads that are neither PDF, DOCX nor text.
var ErrUnsupported = errors.New("unsupported file format")

type Format int

const (
	Unknown Format = iota
	PDF
	DOCX
	Text
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Detect picks the format from the file extension, falling back to the
// declared content type.
func Detect(name, contentType string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".txt", ".md", ".markdown":
		return Text
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return Unknown
	}
	switch mt {
	case "application/pdf":
		return PDF
	case docxMIME:
		return DOCX
	case "text/plain", "text/markdown":
		return Text
	}
	return Unknown
}

// Extract returns the text content of r. size is the number of bytes
// readable from r.
func Extract(ctx context.Context, name, contentType string, r io.ReaderAt, size int64) (string, error) {
	switch Detect(name, contentType) {
	case PDF:
		return pdfText(ctx, r, size)
	case DOCX:
		return docxText(r, size)
	case Text:
		raw, err := io.ReadAll(io.NewSectionReader(r, 0, size))
		if err != nil {
			return "", fmt.Errorf("read text resume: %w", err)
		}
		return string(raw), nil
	}
	return "", ErrUnsupported
}

func pdfText(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// the pdf reader panics on some malformed object streams
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", p)
		}
	}()

	pages, err := documentloaders.NewPDF(r, size).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	var sb strings.Builder
	for _, p := range pages {
		page := strings.TrimSpace(p.PageContent)
		if page == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(page)
	}
	return sb.String(), nil
}

func docxText(r io.ReaderAt, size int64) (string, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	lines := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		s, ok := item.(fmt.Stringer)
		if !ok {
			continue
		}
		if line := strings.TrimSpace(s.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
