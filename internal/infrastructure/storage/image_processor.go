package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

type ImageProcessor struct {
	MaxWidth int // px, 0 disables resizing
}

func NewImageProcessor(maxWidth int) *ImageProcessor {
	return &ImageProcessor{MaxWidth: maxWidth}
}

// Normalize downsizes JPEG/PNG images wider than MaxWidth, keeping aspect ratio.
// Other formats and images within bounds are returned untouched (resized=false).
// format: "jpeg" hoặc "png"
func (p *ImageProcessor) Normalize(data []byte, format string) (out []byte, resized bool, err error) {
	var encFormat imaging.Format
	switch format {
	case "jpeg":
		encFormat = imaging.JPEG
	case "png":
		encFormat = imaging.PNG
	default:
		return data, false, nil
	}

	if p.MaxWidth <= 0 {
		return data, false, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("cannot decode image: %w", err)
	}

	if img.Bounds().Dx() <= p.MaxWidth {
		return data, false, nil
	}

	resizedImg := imaging.Resize(img, p.MaxWidth, 0, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resizedImg, encFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, false, fmt.Errorf("cannot encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}
