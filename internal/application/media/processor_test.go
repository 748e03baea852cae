package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor_Process(t *testing.T) {
	processor := NewImageProcessor(100, 85)

	t.Run("re-encodes as jpeg without resizing small images", func(t *testing.T) {
		processed, err := processor.Process(encodePNG(t, 80, 60))
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", processed.MimeType)
		assert.Equal(t, 80, processed.Width)
		assert.Equal(t, 60, processed.Height)

		decoded, format, err := image.Decode(bytes.NewReader(processed.Data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 80, decoded.Bounds().Dx())
	})

	t.Run("scales oversized images down to the maximum edge", func(t *testing.T) {
		processed, err := processor.Process(encodePNG(t, 400, 200))
		require.NoError(t, err)

		assert.Equal(t, 100, processed.Width)
		assert.Equal(t, 50, processed.Height)

		decoded, _, err := image.Decode(bytes.NewReader(processed.Data))
		require.NoError(t, err)
		assert.Equal(t, 100, decoded.Bounds().Dx())
		assert.Equal(t, 50, decoded.Bounds().Dy())
	})

	t.Run("extreme aspect ratios keep at least one pixel per edge", func(t *testing.T) {
		processed, err := processor.Process(encodePNG(t, 400, 1))
		require.NoError(t, err)

		assert.Equal(t, 100, processed.Width)
		assert.Equal(t, 1, processed.Height)

		decoded, _, err := image.Decode(bytes.NewReader(processed.Data))
		require.NoError(t, err)
		assert.Equal(t, 1, decoded.Bounds().Dy())
	})

	t.Run("the height can be the limiting edge", func(t *testing.T) {
		processed, err := processor.Process(encodePNG(t, 50, 200))
		require.NoError(t, err)

		assert.Equal(t, 25, processed.Width)
		assert.Equal(t, 100, processed.Height)
	})

	t.Run("accepts jpeg input", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, img, nil))

		processed, err := processor.Process(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 10, processed.Width)
	})

	t.Run("rejects non-image data", func(t *testing.T) {
		_, err := processor.Process([]byte("definitely not an image"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
	})
}
