package api

import (
	"document-converter/internal/converter"
	"document-converter/internal/model"
)

// DetectResponse represents the response for format detection
type DetectResponse struct {
	Format     string `json:"format"`
	FormatName string `json:"formatName"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	// Width and Height are set for images
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// ConversionResponse represents the response for a conversion that was saved
// instead of streamed back
type ConversionResponse struct {
	Success      bool   `json:"success"`
	Kind         string `json:"kind,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	ResultName   string `json:"resultName,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Key          string `json:"key,omitempty"`
	// Location is the download path of the stored result
	Location string `json:"location,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// ConversionsResponse lists the available conversion kinds
type ConversionsResponse struct {
	Conversions []converter.Info `json:"conversions"`
}

// FormatInfo maps model.Format to display names
var FormatInfo = map[model.Format]string{
	model.FormatDOCX: "Microsoft Word Document",
	model.FormatPPTX: "Microsoft PowerPoint Presentation",
	model.FormatXLSX: "Microsoft Excel Spreadsheet",
	model.FormatXLSM: "Microsoft Excel Macro-Enabled Spreadsheet",
	model.FormatHTML: "HTML Document",
	model.FormatTXT:  "Plain Text",
	model.FormatMD:   "Markdown Document",
	model.FormatPDF:  "PDF Document",
	model.FormatJPEG: "JPEG Image",
	model.FormatPNG:  "PNG Image",
	model.FormatZIP:  "ZIP Archive",
}
