package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// NewTXTConverter creates the text-to-pdf converter. Every non-blank line of
// the file becomes its own paragraph.
func NewTXTConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindTextToPDF,
		Description: "Convert a plain text file to PDF",
		Extensions:  []string{".txt"},
	}, extract.Func(extract.PlainText), layout.A4(), logger)
}
