package util

import (
	"fmt"
	"os"
)

// WithTempFile writes data to a new temporary file, calls fn with its path and
// removes the file afterwards, whether fn succeeds, fails or panics. Use it for
// libraries that only open files by name.
func WithTempFile(data []byte, pattern string, fn func(path string) error) error {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return fn(path)
}
