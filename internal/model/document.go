// Package model contains data structures used by the document converter
package model

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format represents supported document formats
type Format string

// Supported document formats
const (
	FormatDOCX Format = "docx"
	FormatPPTX Format = "pptx"
	FormatXLSX Format = "xlsx"
	FormatXLSM Format = "xlsm"
	FormatHTML Format = "html"
	FormatHTM  Format = "htm"
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatMD   Format = "md"
	FormatPDF  Format = "pdf"
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatZIP  Format = "zip"
)

var contentTypes = map[Format]string{
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatXLSM: "application/vnd.ms-excel.sheet.macroEnabled.12",
	FormatHTML: "text/html; charset=utf-8",
	FormatHTM:  "text/html; charset=utf-8",
	FormatTXT:  "text/plain; charset=utf-8",
	FormatCSV:  "text/csv; charset=utf-8",
	FormatMD:   "text/markdown; charset=utf-8",
	FormatPDF:  "application/pdf",
	FormatJPG:  "image/jpeg",
	FormatJPEG: "image/jpeg",
	FormatPNG:  "image/png",
	FormatZIP:  "application/zip",
}

// FormatFromName returns the lowercase extension of name without the dot
func FormatFromName(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	return Format(strings.TrimPrefix(ext, "."))
}

// Extension returns the format as a file extension, e.g. ".pdf"
func (f Format) Extension() string {
	if f == "" {
		return ""
	}
	return "." + string(f)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Document represents an uploaded file
type Document struct {
	// ID is a unique identifier for the document
	ID string

	// Name is the original filename
	Name string

	// Format is derived from the filename extension
	Format Format

	// Data holds the complete file content
	Data []byte

	// CreatedAt is the time when the document was received
	CreatedAt time.Time
}

// NewDocument creates a new Document from an uploaded file
func NewDocument(name string, data []byte) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Format:    FormatFromName(name),
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// ReadDocument reads r fully into a new Document
func ReadDocument(name string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(name, data), nil
}

// Size is the document size in bytes
func (d *Document) Size() int64 {
	return int64(len(d.Data))
}
