package converter

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/archive"
	"document-converter/internal/extract"
	"document-converter/internal/imaging"
	"document-converter/internal/officegen"
	"document-converter/internal/pdfops"
	"document-converter/internal/util"
)

// readPDFText extracts the text of doc and fails when there is none
func readPDFText(b base, name string, data []byte) (extract.PDFText, error) {
	text, err := extract.PDF(data)
	if err != nil {
		return text, b.failed(err)
	}
	if strings.TrimSpace(text.Text) == "" {
		return text, apperr.NoContent(name)
	}
	return text, nil
}

func singlePDF(kind, description string) Info {
	return Info{
		Kind:        kind,
		Description: description,
		Extensions:  []string{".pdf"},
		MinFiles:    1,
		MaxFiles:    1,
	}
}

// PDFToWordConverter implements pdf-to-word
type PDFToWordConverter struct{ base }

// NewPDFToWordConverter creates a converter that rebuilds PDF text as DOCX
func NewPDFToWordConverter(logger logrus.FieldLogger) *PDFToWordConverter {
	return &PDFToWordConverter{newBase(singlePDF(KindPDFToWord, "Extract the text of a PDF into a Word document"), logger)}
}

const (
	wordHeadingMaxLen = 60
	wordBodySize      = 12
)

var (
	blankLines     = regexp.MustCompile(`\n\s*\n`)
	numberedPrefix = regexp.MustCompile(`^\d+\.?\s`)
)

// looksLikeHeading treats short upper-case or numbered paragraphs as headings
func looksLikeHeading(p string) bool {
	if len([]rune(p)) >= wordHeadingMaxLen {
		return false
	}
	return strings.ToUpper(p) == p || numberedPrefix.MatchString(p)
}

// Convert implements Converter
func (c *PDFToWordConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	text, err := readPDFText(c.base, doc.Name, doc.Data)
	if err != nil {
		return nil, err
	}

	w := officegen.NewDocxWriter()
	for _, para := range blankLines.Split(text.Text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if looksLikeHeading(para) {
			w.AddHeading(para, 2)
			continue
		}
		for _, line := range strings.Split(para, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				w.AddParagraph(line, wordBodySize)
			}
		}
	}

	data, err := w.Bytes()
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithFields(logrus.Fields{"file": doc.Name, "paragraphs": w.Len()}).Info("Converted PDF to Word")
	return newResult(util.OutputName(doc.Name, "", ".docx"), data), nil
}

// PDFToExcelConverter implements pdf-to-excel
type PDFToExcelConverter struct {
	base
	now func() time.Time
}

// NewPDFToExcelConverter creates a converter that puts PDF text in a workbook
func NewPDFToExcelConverter(logger logrus.FieldLogger) *PDFToExcelConverter {
	return &PDFToExcelConverter{
		base: newBase(singlePDF(KindPDFToExcel, "Extract the text of a PDF into an Excel workbook"), logger),
		now:  time.Now,
	}
}

const (
	contentSheetName = "PDF Content"
	infoSheetName    = "Info"
	tableColWidth    = 20
)

var wideGap = regexp.MustCompile(`\s{2,}`)

// splitCells splits a line on tabs when it has any, else on runs of two or
// more spaces
func splitCells(line string, tabs bool) []string {
	var cells []string
	if tabs {
		cells = strings.Split(line, "\t")
	} else {
		cells = wideGap.Split(line, -1)
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// isTabular reports whether the first line looks like a table header
func isTabular(first string) bool {
	return strings.Contains(first, "\t") || len(wideGap.Split(first, -1)) > 2
}

func contentSheet(lines []string) officegen.Sheet {
	if isTabular(lines[0]) {
		tabs := strings.Contains(lines[0], "\t")
		header := splitCells(lines[0], tabs)
		widths := make([]float64, len(header))
		for i, h := range header {
			if h == "" {
				header[i] = fmt.Sprintf("Column %d", i+1)
			}
			widths[i] = tableColWidth
		}

		rows := make([][]interface{}, 0, len(lines)-1)
		for _, line := range lines[1:] {
			cells := splitCells(line, tabs)
			row := make([]interface{}, len(cells))
			for i, cell := range cells {
				row[i] = cell
			}
			rows = append(rows, row)
		}
		return officegen.Sheet{Name: contentSheetName, Header: header, Rows: rows, ColWidths: widths}
	}

	rows := make([][]interface{}, len(lines))
	for i, line := range lines {
		rows[i] = []interface{}{i + 1, line}
	}
	return officegen.Sheet{
		Name:      contentSheetName,
		Header:    []string{"Line", "Content"},
		Rows:      rows,
		ColWidths: []float64{10, 100},
		Striped:   true,
	}
}

// Convert implements Converter
func (c *PDFToExcelConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	text, err := readPDFText(c.base, doc.Name, doc.Data)
	if err != nil {
		return nil, err
	}
	lines := text.Lines()

	info := officegen.Sheet{
		Name:   infoSheetName,
		Header: []string{"Property", "Value"},
		Rows: [][]interface{}{
			{"Total pages", text.PageCount},
			{"Extracted lines", len(lines)},
			{"File size", fmt.Sprintf("%.2f KB", float64(doc.Size())/1024)},
			{"Converted at", c.now().Format("2006-01-02 15:04:05")},
		},
		ColWidths:  []float64{25, 50},
		HeaderFill: officegen.InfoFill,
	}

	data, err := officegen.Workbook([]officegen.Sheet{contentSheet(lines), info})
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithFields(logrus.Fields{"file": doc.Name, "lines": len(lines)}).Info("Converted PDF to Excel")
	return newResult(util.OutputName(doc.Name, "", ".xlsx"), data), nil
}

// PDFToJPGConverter implements pdf-to-jpg. Pages are not rasterised; each
// page becomes a placeholder image of twice its size that names the page.
type PDFToJPGConverter struct{ base }

// NewPDFToJPGConverter creates the pdf-to-jpg converter
func NewPDFToJPGConverter(logger logrus.FieldLogger) *PDFToJPGConverter {
	return &PDFToJPGConverter{newBase(singlePDF(KindPDFToJPG, "Produce one JPEG image per PDF page"), logger)}
}

const placeholderScale = 2

// Convert implements Converter
func (c *PDFToJPGConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	sizes, err := pdfops.PageSizes(doc.Data)
	if err != nil {
		return nil, c.failed(err)
	}

	entries := make([]archive.Entry, 0, len(sizes))
	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w := int(math.Round(size.Width * placeholderScale))
		h := int(math.Round(size.Height * placeholderScale))
		img, err := imaging.Placeholder(i+1, len(sizes), w, h)
		if err != nil {
			return nil, c.failed(err)
		}
		entries = append(entries, archive.Entry{
			Name: util.OutputName(doc.Name, fmt.Sprintf("_page_%d", i+1), ".jpg"),
			Data: img,
		})
	}

	c.logger.WithFields(logrus.Fields{"file": doc.Name, "pages": len(entries)}).Info("Converted PDF to images")
	if len(entries) == 1 {
		return newResult(entries[0].Name, entries[0].Data), nil
	}

	data, err := archive.Zip(entries)
	if err != nil {
		return nil, c.failed(err)
	}
	return newResult(util.OutputName(doc.Name, "_images", ".zip"), data), nil
}
