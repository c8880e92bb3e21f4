// Package util contains helpers shared by the converter packages
package util

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
)

// GetImageDimensions returns the width and height of an encoded image in pixels
func GetImageDimensions(data []byte) (int, int, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("could not decode image dimensions: %w", err)
	}
	return config.Width, config.Height, nil
}

// FitWithin scales a w x h box to fit inside maxW x maxH, keeping the aspect
// ratio. Boxes that already fit are returned unchanged.
func FitWithin(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
