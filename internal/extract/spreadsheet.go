package extract

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"document-converter/internal/layout"
)

// Spreadsheet extracts every sheet of an XLSX workbook. Each sheet starts on
// a new page with its name as title, followed by one row block per row.
func Spreadsheet(data []byte) ([]layout.Block, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var blocks []layout.Block
	for i, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		title := name
		if title == "" {
			title = fmt.Sprintf("Sheet %d", i+1)
		}
		blocks = append(blocks, layout.PageBreak(), layout.Title(title))
		for _, row := range rows {
			blocks = append(blocks, layout.Row(row...))
		}
	}

	if len(blocks) == 0 {
		return nil, ErrNoContent
	}
	return blocks, nil
}
