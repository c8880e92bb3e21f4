// Package converter implements one strategy per conversion kind and the
// manager that selects between them.
package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/model"
	"document-converter/internal/util"
)

// Conversion kinds
const (
	KindPDFMerge      = "pdf-merge"
	KindPDFSplit      = "pdf-split"
	KindPDFCompress   = "pdf-compress"
	KindPDFEdit       = "pdf-edit"
	KindWordToPDF     = "word-to-pdf"
	KindExcelToPDF    = "excel-to-pdf"
	KindPPTToPDF      = "ppt-to-pdf"
	KindPDFToWord     = "pdf-to-word"
	KindPDFToExcel    = "pdf-to-excel"
	KindPDFToJPG      = "pdf-to-jpg"
	KindJPGToPDF      = "jpg-to-pdf"
	KindTXTCSV        = "txt-csv"
	KindTextToPDF     = "text-to-pdf"
	KindMarkdownToPDF = "markdown-to-pdf"
	KindHTMLToPDF     = "html-to-pdf"
)

// Info describes what a converter accepts
type Info struct {
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Extensions  []string `json:"extensions"`
	// MinFiles and MaxFiles bound the number of uploads; MaxFiles 0 means no limit
	MinFiles int `json:"minFiles"`
	MaxFiles int `json:"maxFiles"`
	// ToPDF marks converters that turn another format into PDF
	ToPDF bool `json:"toPdf"`
}

// Request carries the uploaded files and form parameters of one conversion
type Request struct {
	Files  []*model.Document
	Params map[string]string
}

// NewRequest builds a request for the given files
func NewRequest(files ...*model.Document) *Request {
	return &Request{Files: files, Params: map[string]string{}}
}

// Param returns a trimmed form parameter, or "" if absent
func (r *Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return strings.TrimSpace(r.Params[name])
}

// First returns the first uploaded file
func (r *Request) First() *model.Document {
	return r.Files[0]
}

// Result is a converted file ready to be sent back
type Result struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size is the result size in bytes
func (r *Result) Size() int64 {
	return int64(len(r.Data))
}

func newResult(name string, data []byte) *Result {
	return &Result{
		Name:        name,
		ContentType: model.FormatFromName(name).ContentType(),
		Data:        data,
	}
}

// Converter defines the interface for all conversion strategies
type Converter interface {
	// Info describes the kind and its accepted inputs
	Info() Info

	// CanConvert checks if this converter accepts the document
	CanConvert(document *model.Document) bool

	// Convert runs the conversion. The request has already been validated
	// against Info.
	Convert(ctx context.Context, req *Request) (*Result, error)
}

// base carries the Info and logger shared by every converter
type base struct {
	info   Info
	logger logrus.FieldLogger
}

func newBase(info Info, logger logrus.FieldLogger) base {
	return base{info: info, logger: logger.WithField("kind", info.Kind)}
}

// Info implements Converter
func (b base) Info() Info {
	return b.info
}

// CanConvert implements Converter
func (b base) CanConvert(document *model.Document) bool {
	return util.HasExtension(document.Name, b.info.Extensions)
}

func (b base) failed(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.ConversionFailed(b.info.Kind, err)
}

// Validate checks the request against the converter's file rules
func Validate(info Info, req *Request) error {
	if req == nil || len(req.Files) == 0 {
		return apperr.NoFile()
	}
	if len(req.Files) < info.MinFiles {
		return apperr.TooFewFiles(info.MinFiles, len(req.Files))
	}
	if info.MaxFiles > 0 && len(req.Files) > info.MaxFiles {
		return apperr.InvalidParameter("file", fmt.Sprintf("expected at most %d file(s)", info.MaxFiles))
	}
	for _, f := range req.Files {
		if !util.HasExtension(f.Name, info.Extensions) {
			return apperr.InvalidFileType(f.Name, info.Extensions)
		}
	}
	return nil
}
