package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrTooLarge is returned when the payload exceeds the configured limit.
	ErrTooLarge = errors.New("image too large")
	// ErrUndecodable is returned when no registered decoder recognizes the payload.
	ErrUndecodable = errors.New("unsupported or corrupt image")
)

// Dimensions describes a decoded image header.
type Dimensions struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// Inspect reads at most limit bytes from r and returns the image dimensions.
func Inspect(r io.Reader, limit int64) (Dimensions, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Dimensions{}, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > limit {
		return Dimensions{}, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
