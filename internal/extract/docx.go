package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/model"

	"document-converter/internal/layout"
	"document-converter/internal/util"
)

// Word extracts headings, paragraphs, lists and tables from a DOCX document.
// Heading levels come from the paragraph style (Heading1, Heading2, ...) and
// every table row becomes a Row block.
func Word(data []byte) ([]layout.Block, error) {
	var blocks []layout.Block

	// the docx reader only opens files by name
	err := util.WithTempFile(data, "upload-*.docx", func(path string) error {
		r, err := docx.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open DOCX: %w", err)
		}
		defer r.Close()

		doc, err := r.Document()
		if err != nil {
			return fmt.Errorf("failed to read DOCX: %w", err)
		}

		for _, page := range doc.Pages {
			for _, elem := range page.Elements {
				switch e := elem.(type) {
				case *model.Heading:
					blocks = append(blocks, layout.Heading(e.Text, e.Level))
				case *model.Paragraph:
					blocks = append(blocks, layout.Paragraph(e.Text))
				case *model.List:
					for _, item := range e.Items {
						blocks = append(blocks, layout.Paragraph(strings.TrimSpace(item.Bullet+" "+item.Text)))
					}
				case *model.Table:
					for _, row := range e.Rows {
						cells := make([]string, len(row))
						for i, cell := range row {
							cells[i] = strings.TrimSpace(cell.Text)
						}
						blocks = append(blocks, layout.Row(cells...))
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return requireContent(blocks)
}
