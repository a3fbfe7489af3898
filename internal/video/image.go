package video

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kmmndr/invisibility_cloak/internal/frame"

	"gocv.io/x/gocv"
)

var supportedImageFormats = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

func isSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedImageFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// LoadImage reads a still image as a BGR frame.
func LoadImage(path string) (*frame.Frame, error) {
	if !isSupportedImage(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	f, err := frame.NewFrame(0, &mat)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("unable to load image %s: %w", path, err)
	}
	return f, nil
}

func SaveImage(path string, f *frame.Frame) error {
	if !isSupportedImage(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}
	if !gocv.IMWrite(path, *f.Mat()) {
		return fmt.Errorf("unable to write image %s", path)
	}
	return nil
}
