package converter

import (
	"bytes"
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/extract"
	"document-converter/internal/layout"
	"document-converter/internal/util"
)

// DocumentConverter turns a document into PDF by extracting its content as
// layout blocks and composing them onto pages
type DocumentConverter struct {
	base
	extractor extract.Extractor
	geometry  layout.Geometry
}

// NewDocumentConverter creates a to-PDF converter from an extractor
func NewDocumentConverter(info Info, extractor extract.Extractor, geometry layout.Geometry, logger logrus.FieldLogger) *DocumentConverter {
	info.ToPDF = true
	if info.MinFiles == 0 {
		info.MinFiles = 1
	}
	if info.MaxFiles == 0 {
		info.MaxFiles = 1
	}
	return &DocumentConverter{
		base:      newBase(info, logger),
		extractor: extractor,
		geometry:  geometry,
	}
}

// Convert implements Converter
func (c *DocumentConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	c.logger.WithFields(logrus.Fields{"file": doc.Name, "size": doc.Size()}).Info("Extracting document content")

	blocks, err := c.extractor.Extract(doc.Data)
	if errors.Is(err, extract.ErrNoContent) {
		return nil, apperr.NoContent(doc.Name)
	}
	if err != nil {
		return nil, c.failed(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	l, err := layout.ComposeAndRender(blocks, c.geometry, &buf)
	if err != nil {
		return nil, apperr.LayoutFailed(err)
	}

	c.logger.WithFields(logrus.Fields{
		"file":   doc.Name,
		"blocks": len(blocks),
		"pages":  len(l.Pages),
		"lines":  l.InstructionCount(),
	}).Debug("Composed document")

	return newResult(util.OutputName(doc.Name, "", ".pdf"), buf.Bytes()), nil
}
