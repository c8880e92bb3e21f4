package apperr

import "strings"

// NoFile reports a request without an uploaded file.
func NoFile() *Error {
	return New(CodeNoFile, "no file uploaded")
}

// InvalidFileType reports a file whose extension the conversion does not accept.
func InvalidFileType(filename string, allowed []string) *Error {
	return Newf(CodeInvalidFileType, "invalid file type for %q, expected one of: %s",
		filename, strings.Join(allowed, ", ")).
		WithContext("filename", filename)
}

// TooFewFiles reports a request below the conversion's file minimum.
func TooFewFiles(min, got int) *Error {
	return Newf(CodeTooFewFiles, "at least %d files are required, got %d", min, got)
}

// TooFewPages reports a document that cannot be split.
func TooFewPages(pages int) *Error {
	return Newf(CodeTooFewPages, "PDF must have at least 2 pages to split, got %d", pages)
}

// NoContent reports that extraction produced nothing to render.
func NoContent(filename string) *Error {
	return New(CodeNoContent, "could not extract content").WithContext("filename", filename)
}

// UnsupportedOperation reports a valid kind that cannot handle this request.
func UnsupportedOperation(kind, detail string) *Error {
	return Newf(CodeUnsupportedOperation, "unsupported operation for %s: %s", kind, detail).
		WithContext("kind", kind)
}

// InvalidParameter reports a bad or missing form parameter.
func InvalidParameter(name, detail string) *Error {
	return Newf(CodeInvalidParameter, "invalid parameter %q: %s", name, detail).
		WithContext("parameter", name)
}

// UnknownConversion reports a kind with no registered converter.
func UnknownConversion(kind string) *Error {
	return Newf(CodeUnknownConversion, "unknown conversion %q", kind).WithContext("kind", kind)
}

// FileTooLarge reports an upload above the size limit.
func FileTooLarge(limitMB int64) *Error {
	return Newf(CodeFileTooLarge, "upload exceeds the %d MB limit", limitMB)
}

// NotFound reports a missing stored file.
func NotFound(key string) *Error {
	return Newf(CodeNotFound, "file %q not found", key).WithContext("key", key)
}

// StorageUnavailable reports a save request without a configured store.
func StorageUnavailable(detail string) *Error {
	return New(CodeStorageUnavailable, detail)
}

// ConversionFailed wraps a library failure during conversion.
func ConversionFailed(kind string, cause error) *Error {
	return Wrap(cause, CodeConversionFailed, kind+" conversion failed").WithContext("kind", kind)
}

// LayoutFailed wraps a composer or PDF writer failure.
func LayoutFailed(cause error) *Error {
	return Wrap(cause, CodeLayoutFailed, "failed to lay out document")
}
