package media

import (
	"bytes"
	"image"
	"image/jpeg"

	// registered decoders for the formats uploads arrive in
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProcessedImage is the normalized result of an upload: JPEG bytes
// bounded to the configured maximum edge.
type ProcessedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// ImageProcessor normalizes uploaded images. Every upload is re-encoded
// as JPEG so stored assets have a uniform format regardless of what the
// client sent, and oversized images are scaled down to the maximum
// edge.
type ImageProcessor struct {
	maxDimension int
	quality      int
}

// NewImageProcessor creates an ImageProcessor with the given bounds
func NewImageProcessor(maxDimension, quality int) *ImageProcessor {
	return &ImageProcessor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// Process decodes, resizes and re-encodes an uploaded image
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Invalid image file")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	maxEdge := width
	if height > maxEdge {
		maxEdge = height
	}
	if maxEdge > p.maxDimension {
		scale := float64(p.maxDimension) / float64(maxEdge)
		newWidth := int(float64(width) * scale)
		newHeight := int(float64(height) * scale)
		// extreme aspect ratios round the short edge down to zero
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		width, height = newWidth, newHeight
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, err
	}

	return &ProcessedImage{
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
		Width:    width,
		Height:   height,
	}, nil
}
