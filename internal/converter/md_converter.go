package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// NewMDConverter creates the markdown-to-pdf converter
func NewMDConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindMarkdownToPDF,
		Description: "Convert a Markdown document to PDF",
		Extensions:  []string{".md"},
	}, extract.Func(extract.Markdown), layout.A4(), logger)
}
