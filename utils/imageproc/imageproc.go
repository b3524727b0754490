// Package imageproc downsizes uploaded images before they are stored.
package imageproc

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// MaxDimension is the longest edge, in pixels, an uploaded image keeps
const MaxDimension = 1920

// Result describes a processed image
type Result struct {
	Data    []byte
	Width   int
	Height  int
	Resized bool
}

// Downscale fits a JPEG or PNG inside maxDim x maxDim, preserving aspect
// ratio. Images already within bounds and formats imaging cannot encode
// (webp) are returned unchanged.
func Downscale(data []byte, contentType string, maxDim int) (*Result, error) {
	format, ok := formatFor(contentType)
	if !ok {
		return &Result{Data: data}, nil
	}
	if maxDim <= 0 {
		maxDim = MaxDimension
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return &Result{Data: data, Width: bounds.Dx(), Height: bounds.Dy()}, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Result{
		Data:    buf.Bytes(),
		Width:   resized.Bounds().Dx(),
		Height:  resized.Bounds().Dy(),
		Resized: true,
	}, nil
}

func formatFor(contentType string) (imaging.Format, bool) {
	switch contentType {
	case "image/jpeg":
		return imaging.JPEG, true
	case "image/png":
		return imaging.PNG, true
	default:
		return 0, false
	}
}
