package converter

import (
	"context"

	"github.com/sirupsen/logrus"

	"document-converter/internal/model"
	"document-converter/internal/textconv"
	"document-converter/internal/util"
)

// CSVConverter implements txt-csv. The direction follows the upload: CSV
// becomes tab-separated text and text becomes CSV.
type CSVConverter struct{ base }

// NewCSVConverter creates the txt-csv converter
func NewCSVConverter(logger logrus.FieldLogger) *CSVConverter {
	return &CSVConverter{newBase(Info{
		Kind:        KindTXTCSV,
		Description: "Convert between CSV and tab-separated text",
		Extensions:  []string{".txt", ".csv"},
		MinFiles:    1,
		MaxFiles:    1,
	}, logger)}
}

// Convert implements Converter
func (c *CSVConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()

	var (
		data []byte
		ext  string
		err  error
	)
	if model.FormatFromName(doc.Name) == model.FormatCSV {
		data, err = textconv.CSVToTXT(doc.Data)
		ext = ".txt"
	} else {
		data, err = textconv.TXTToCSV(doc.Data)
		ext = ".csv"
	}
	if err != nil {
		return nil, c.failed(err)
	}

	c.logger.WithFields(logrus.Fields{"file": doc.Name, "to": ext}).Info("Converted text table")
	return newResult(util.OutputName(doc.Name, "", ext), data), nil
}
