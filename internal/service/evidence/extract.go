package evidence

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ledongthuc/pdf"
)

// localExtractor pulls text out of uploads without a provider call
// where the format allows it: PDF text layers, HTML, and plain text.
// Scanned images (and PDFs with no text layer) still need provider
// OCR.
type localExtractor struct {
	html *md.Converter
}

func newLocalExtractor() *localExtractor {
	return &localExtractor{
		html: md.NewConverter("", true, nil),
	}
}

// Extract returns the text of an upload, or ok=false when the format
// needs provider OCR instead.
func (e *localExtractor) Extract(data []byte, mimeType string) (text string, ok bool, err error) {
	switch {
	case mimeType == "application/pdf":
		text, err = pdfText(data)
		if err != nil {
			return "", false, err
		}
		// An empty text layer means a scanned PDF; hand off to OCR.
		if strings.TrimSpace(text) == "" {
			return "", false, nil
		}
		return text, true, nil

	case mimeType == "text/html":
		text, err = e.html.ConvertString(string(data))
		if err != nil {
			return "", false, fmt.Errorf("convert html: %w", err)
		}
		return text, true, nil

	case strings.HasPrefix(mimeType, "text/"):
		if !utf8.Valid(data) {
			return "", false, nil
		}
		return string(data), true, nil

	default:
		return "", false, nil
	}
}

// pdfText extracts the text layer of a PDF.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(builder.String()), nil
}
