package util

import (
	"mime"
	"path/filepath"
	"strings"
)

// BaseName returns the filename without directory or extension. Names that
// reduce to nothing become "document".
func BaseName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "document"
	}
	return base
}

// OutputName builds a result filename such as "report_compressed.pdf"
func OutputName(original, suffix, ext string) string {
	return BaseName(original) + suffix + ext
}

// ContentDisposition returns an attachment header value for filename
func ContentDisposition(filename string) string {
	v := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if v == "" {
		// FormatMediaType rejects some names; fall back to a plain token
		return `attachment; filename="download"`
	}
	return v
}

// HasExtension reports whether name ends with one of exts, ignoring case
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
