package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"blorkfield-site/logger"
	"blorkfield-site/utils"
)

// Image variants produced by the optimizer
const (
	VariantBanner = "banner"
	VariantThumb  = "thumb"
)

const (
	// Quality settings
	qualityThumb  = 70
	qualityBanner = 82
	// Size settings (max dimension)
	maxSizeThumb  = 400
	maxSizeBanner = 1600
)

// ImageOptimizer converts catalog images to resized JPEG derivatives,
// caching results on disk.
type ImageOptimizer struct {
	sourceDir string
	cacheDir  string
	log       logger.Logger
}

// NewImageOptimizer creates an optimizer reading from sourceDir.
// An empty cacheDir disables the cache.
func NewImageOptimizer(sourceDir, cacheDir string, log logger.Logger) *ImageOptimizer {
	return &ImageOptimizer{sourceDir: sourceDir, cacheDir: cacheDir, log: log}
}

// Process returns the derivative name and bytes of image name for variant.
// A cached derivative is reused when it is not older than the source.
func (o *ImageOptimizer) Process(name, variant string) (string, []byte, error) {
	srcPath := filepath.Join(o.sourceDir, filepath.FromSlash(name))
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to stat image %s: %w", name, err)
	}

	outName := utils.VariantFileName(name, variant)
	cachePath := ""
	if o.cacheDir != "" {
		cachePath = filepath.Join(o.cacheDir, filepath.FromSlash(outName))
		if info, err := os.Stat(cachePath); err == nil && !info.ModTime().Before(srcInfo.ModTime()) {
			data, err := os.ReadFile(cachePath)
			if err == nil {
				o.log.Debug("Image cache hit", logger.String("image", name), logger.String("variant", variant))
				return outName, data, nil
			}
		}
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}

	data, err := OptimizeImage(raw, variant)
	if err != nil {
		return "", nil, fmt.Errorf("failed to optimize image %s: %w", name, err)
	}

	if cachePath != "" {
		if err := saveToCache(cachePath, data); err != nil {
			o.log.Warn("Failed to cache optimized image", logger.String("path", cachePath), logger.Error(err))
		}
	}

	o.log.Debug("Image optimized",
		logger.String("image", name),
		logger.String("variant", variant),
		logger.Int("input_bytes", len(raw)),
		logger.Int("output_bytes", len(data)),
	)
	return outName, data, nil
}

func saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// OptimizeImage decodes imageData (PNG, JPEG, GIF, BMP, TIFF), shrinks it to
// fit the variant's max dimension keeping the aspect ratio, and re-encodes it
// as JPEG. Images already small enough are only re-encoded.
// Unknown variants are treated as banners.
func OptimizeImage(imageData []byte, variant string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeBanner, qualityBanner
	if variant == VariantThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
