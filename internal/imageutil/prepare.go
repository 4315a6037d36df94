package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg" // register decoder for uploaded JPEGs

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the longest side of an image handed to
// the recognition provider. Receipts photographed at full phone
// resolution slow recognition down without improving the text.
const DefaultMaxDimension = 1600

// PrepareForRecognition normalizes an uploaded receipt image before
// OCR: decodes it, converts to grayscale and downscales it so neither
// side exceeds maxDimension, then re-encodes as PNG. maxDimension <= 0
// uses DefaultMaxDimension.
func PrepareForRecognition(imageData []byte, maxDimension int) ([]byte, error) {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := width, height
	if width > maxDimension || height > maxDimension {
		if width > height {
			newWidth = maxDimension
			newHeight = height * maxDimension / width
		} else {
			newHeight = maxDimension
			newWidth = width * maxDimension / height
		}
	}

	gray := image.NewGray(image.Rect(0, 0, newWidth, newHeight))
	// CatmullRom keeps thin strokes legible when downscaling.
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("failed to encode prepared image: %w", err)
	}

	return buf.Bytes(), nil
}
