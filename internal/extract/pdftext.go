package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText is the plain text of a PDF document
type PDFText struct {
	Text      string
	PageCount int
}

// Lines returns the trimmed non-empty lines of the text
func (t PDFText) Lines() []string {
	var lines []string
	for _, line := range strings.Split(t.Text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// PDF extracts the text of every page, in page order. Pages without
// extractable text are skipped.
func PDF(data []byte) (result PDFText, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return PDFText{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	result.PageCount = reader.NumPage()
	var parts []string
	for i := 1; i <= result.PageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	result.Text = strings.Join(parts, "\n")
	return result, nil
}
