package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// NewPPTXConverter creates the ppt-to-pdf converter. Each slide starts on a
// new page.
func NewPPTXConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindPPTToPDF,
		Description: "Convert a PowerPoint presentation to PDF",
		Extensions:  []string{".pptx"},
	}, extract.Func(extract.Presentation), layout.Letter(), logger)
}
