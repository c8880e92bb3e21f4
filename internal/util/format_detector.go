package util

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/klauspost/compress/zip"

	"document-converter/internal/model"
)

// FormatDetector is responsible for detecting the format of uploaded files
type FormatDetector struct{}

// NewFormatDetector creates a new format detector
func NewFormatDetector() *FormatDetector {
	return &FormatDetector{}
}

// DetectFormatFromBytes determines the format of a document from its bytes.
// It returns an empty format when nothing matches.
func (d *FormatDetector) DetectFormatFromBytes(content []byte) (model.Format, error) {
	// http.DetectContentType only considers the first 512 bytes
	contentType := http.DetectContentType(content)

	switch {
	case contentType == "application/pdf":
		return model.FormatPDF, nil

	case contentType == "image/jpeg":
		return model.FormatJPEG, nil

	case contentType == "image/png":
		return model.FormatPNG, nil

	case strings.HasPrefix(contentType, "text/html"):
		return model.FormatHTML, nil

	case strings.HasPrefix(contentType, "text/plain"):
		head := content
		if len(head) > 512 {
			head = head[:512]
		}
		// Simple markdown check on the leading bytes
		if bytes.HasPrefix(head, []byte("# ")) || bytes.Contains(head, []byte("\n# ")) ||
			bytes.Contains(head, []byte("## ")) {
			return model.FormatMD, nil
		}
		return model.FormatTXT, nil

	case contentType == "application/zip":
		return detectOfficeFormat(content), nil
	}

	return "", nil
}

// detectOfficeFormat inspects the part names of an OOXML package
func detectOfficeFormat(content []byte) model.Format {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}

	switch {
	case names["word/document.xml"]:
		return model.FormatDOCX
	case names["ppt/presentation.xml"]:
		return model.FormatPPTX
	case names["xl/workbook.xml"] && names["xl/vbaProject.bin"]:
		return model.FormatXLSM
	case names["xl/workbook.xml"]:
		return model.FormatXLSX
	}
	return model.FormatZIP
}
