package officegen

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Header fill colours
const (
	AccentFill = "7A7423"
	InfoFill   = "A7E82B"
	StripeFill = "F5F5F5"
)

// Sheet describes one worksheet of a generated workbook
type Sheet struct {
	Name      string
	Header    []string
	Rows      [][]interface{}
	ColWidths []float64
	// HeaderFill is the RGB fill of the header row
	HeaderFill string
	// Striped shades every other data row
	Striped bool
}

// Workbook writes the sheets in order into an XLSX file
func Workbook(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet) error {
	header := make([]interface{}, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", s.Name, err)
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, s.Name, err)
		}
	}

	for i, width := range s.ColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s of %q: %w", col, s.Name, err)
		}
	}

	fill := s.HeaderFill
	if fill == "" {
		fill = AccentFill
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(s.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", s.Name, err)
	}

	if s.Striped {
		stripe, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{StripeFill}},
		})
		if err != nil {
			return fmt.Errorf("failed to create stripe style: %w", err)
		}
		// spreadsheet rows 2, 4, 6 ... hold every other data row
		for r := 2; r <= len(s.Rows)+1; r += 2 {
			if err := f.SetRowStyle(s.Name, r, r, stripe); err != nil {
				return fmt.Errorf("failed to style row %d of %q: %w", r, s.Name, err)
			}
		}
	}
	return nil
}
