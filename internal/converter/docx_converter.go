package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// NewDOCXConverter creates the word-to-pdf converter. Paragraph styles decide
// between headings and body text.
func NewDOCXConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindWordToPDF,
		Description: "Convert a Word document to PDF",
		Extensions:  []string{".docx"},
	}, extract.Func(extract.Word), layout.A4(), logger)
}
