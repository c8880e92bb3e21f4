package converter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/archive"
	"document-converter/internal/pdfops"
	"document-converter/internal/util"
)

const mergedPDFName = "merged_document.pdf"

// MergeConverter implements pdf-merge
type MergeConverter struct{ base }

// NewMergeConverter creates a converter that joins PDFs in upload order
func NewMergeConverter(logger logrus.FieldLogger) *MergeConverter {
	return &MergeConverter{newBase(Info{
		Kind:        KindPDFMerge,
		Description: "Merge several PDFs into one",
		Extensions:  []string{".pdf"},
		MinFiles:    2,
	}, logger)}
}

// Convert implements Converter
func (c *MergeConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	docs := make([][]byte, len(req.Files))
	for i, f := range req.Files {
		docs[i] = f.Data
	}
	data, err := pdfops.Merge(docs)
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithField("files", len(docs)).Info("Merged PDFs")
	return newResult(mergedPDFName, data), nil
}

// SplitConverter implements pdf-split
type SplitConverter struct{ base }

// NewSplitConverter creates a converter that zips one PDF per page
func NewSplitConverter(logger logrus.FieldLogger) *SplitConverter {
	return &SplitConverter{newBase(Info{
		Kind:        KindPDFSplit,
		Description: "Split a PDF into single pages",
		Extensions:  []string{".pdf"},
		MinFiles:    1,
		MaxFiles:    1,
	}, logger)}
}

// Convert implements Converter
func (c *SplitConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	pages, err := pdfops.PageCount(doc.Data)
	if err != nil {
		return nil, c.failed(err)
	}
	if pages < 2 {
		return nil, apperr.TooFewPages(pages)
	}

	parts, err := pdfops.Split(doc.Data)
	if err != nil {
		return nil, c.failed(err)
	}
	entries := make([]archive.Entry, len(parts))
	for i, part := range parts {
		entries[i] = archive.Entry{
			Name: util.OutputName(doc.Name, fmt.Sprintf("_page_%03d", i+1), ".pdf"),
			Data: part,
		}
	}

	data, err := archive.Zip(entries)
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithFields(logrus.Fields{"file": doc.Name, "pages": pages}).Info("Split PDF")
	return newResult(util.OutputName(doc.Name, "_split", ".zip"), data), nil
}

// CompressConverter implements pdf-compress
type CompressConverter struct{ base }

// NewCompressConverter creates a converter that optimises a PDF
func NewCompressConverter(logger logrus.FieldLogger) *CompressConverter {
	return &CompressConverter{newBase(Info{
		Kind:        KindPDFCompress,
		Description: "Reduce the size of a PDF",
		Extensions:  []string{".pdf"},
		MinFiles:    1,
		MaxFiles:    1,
	}, logger)}
}

// Convert implements Converter
func (c *CompressConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	doc := req.First()
	data, err := pdfops.Optimize(doc.Data)
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithFields(logrus.Fields{
		"file":   doc.Name,
		"before": doc.Size(),
		"after":  len(data),
	}).Info("Compressed PDF")
	return newResult(util.OutputName(doc.Name, "_compressed", ".pdf"), data), nil
}

// Defaults for pdf-edit parameters
const (
	defaultEditX        = 50
	defaultEditY        = 50
	defaultEditFontSize = 12
)

// EditConverter implements pdf-edit
type EditConverter struct{ base }

// NewEditConverter creates a converter that annotates the first page
func NewEditConverter(logger logrus.FieldLogger) *EditConverter {
	return &EditConverter{newBase(Info{
		Kind:        KindPDFEdit,
		Description: "Add text, a rectangle or a circle to the first page of a PDF",
		Extensions:  []string{".pdf"},
		MinFiles:    1,
		MaxFiles:    1,
	}, logger)}
}

// EditOptionsFromParams reads editType, text, x, y, fontSize and color
func EditOptionsFromParams(req *Request) (pdfops.EditOptions, error) {
	opts := pdfops.EditOptions{
		Kind:  pdfops.EditKind(req.Param("editType")),
		Text:  req.Param("text"),
		Color: req.Param("color"),
	}

	switch opts.Kind {
	case "":
		return opts, apperr.InvalidParameter("editType", "is required")
	case pdfops.EditText, pdfops.EditRectangle, pdfops.EditCircle:
	default:
		return opts, apperr.UnsupportedOperation(KindPDFEdit, fmt.Sprintf("edit type %q", opts.Kind))
	}

	var err error
	if opts.X, err = floatParam(req, "x", defaultEditX); err != nil {
		return opts, err
	}
	if opts.Y, err = floatParam(req, "y", defaultEditY); err != nil {
		return opts, err
	}
	if opts.FontSize, err = floatParam(req, "fontSize", defaultEditFontSize); err != nil {
		return opts, err
	}
	if err := opts.Validate(); err != nil {
		return opts, apperr.InvalidParameter(string(opts.Kind), err.Error())
	}
	return opts, nil
}

func floatParam(req *Request, name string, def float64) (float64, error) {
	raw := req.Param(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.InvalidParameter(name, "must be a number")
	}
	return v, nil
}

// Convert implements Converter
func (c *EditConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	opts, err := EditOptionsFromParams(req)
	if err != nil {
		return nil, err
	}

	doc := req.First()
	data, err := pdfops.Edit(doc.Data, opts)
	if err != nil {
		return nil, c.failed(err)
	}
	c.logger.WithFields(logrus.Fields{"file": doc.Name, "edit": opts.Kind}).Info("Edited PDF")
	return newResult(util.OutputName(doc.Name, "_edited", ".pdf"), data), nil
}
