package converter

import (
	"github.com/sirupsen/logrus"

	"document-converter/internal/extract"
	"document-converter/internal/layout"
)

// SpreadsheetGeometry is A4 with a tighter margin and smaller text so that
// wide rows wrap less
func SpreadsheetGeometry() layout.Geometry {
	g := layout.A4()
	g.Margin = 40
	g.FontSize = 10
	return g
}

// NewXLSXConverter creates the excel-to-pdf converter. Each sheet starts on
// a new page under its name.
func NewXLSXConverter(logger logrus.FieldLogger) *DocumentConverter {
	return NewDocumentConverter(Info{
		Kind:        KindExcelToPDF,
		Description: "Convert an Excel workbook to PDF",
		Extensions:  []string{".xlsx", ".xlsm"},
	}, extract.Func(extract.Spreadsheet), SpreadsheetGeometry(), logger)
}
