// Package textconv converts between tab-separated text and CSV.
package textconv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns data as a UTF-8 string. Input that is not valid UTF-8 is
// decoded as Windows-1252, the usual encoding of legacy text exports.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(decoded)
}

// Lines splits text into lines, dropping the line terminators
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// CSVToTXT writes each CSV record as one tab-joined line. Cells are trimmed
// and records with no content are skipped.
func CSVToTXT(data []byte) ([]byte, error) {
	r := csv.NewReader(strings.NewReader(DecodeText(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var out bytes.Buffer
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		empty := true
		for i, cell := range record {
			record[i] = strings.TrimSpace(cell)
			if record[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		out.WriteString(strings.Join(record, "\t"))
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

// TXTToCSV writes one CSV record per non-blank line, splitting on tabs
func TXTToCSV(data []byte) ([]byte, error) {
	var out bytes.Buffer
	w := csv.NewWriter(&out)

	for _, line := range Lines(DecodeText(data)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := w.Write(strings.Split(line, "\t")); err != nil {
			return nil, fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return out.Bytes(), nil
}
