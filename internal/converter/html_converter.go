package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// NewHTMLConverter creates the html-to-pdf converter
func NewHTMLConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindHTMLToPDF,
		Description: "Convert an HTML page to PDF",
		Extensions:  []string{".html", ".htm"},
	}, extract.Func(extract.HTML), layout.A4(), logger)
}
