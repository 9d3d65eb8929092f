package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// OptimizePreview turns a quote screenshot into a smaller JPEG
// imageData: raw image bytes (PNG from Screenshot)
// size: "thumb" or "medium"
func OptimizePreview(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium", "":
	default:
		log.Printf("⚠️  Unknown preview size '%s', defaulting to medium", size)
	}

	// imaging.Fit keeps the aspect ratio and never upscales.
	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	// Screenshots may carry transparency; JPEG has none.
	flattened := imaging.OverlayCenter(imaging.New(resized.Bounds().Dx(), resized.Bounds().Dy(), image.White), resized, 1)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Preview optimized: format=%s %v -> %v, quality=%d, output_size=%d bytes",
		format, img.Bounds().Size(), resized.Bounds().Size(), quality, buf.Len())
	return buf.Bytes(), nil
}
