// Package assets decodes source images from disk for density mapping.
package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/pthm-cable/morph/density"
)

// LoadImage decodes a PNG, JPEG, GIF, WebP or BMP file.
// Undecodable content is reported as density.ErrInvalidImage.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", path, density.ErrInvalidImage, err)
	}
	return img, nil
}

// LoadGrid decodes path and converts it to a size×size density grid.
func LoadGrid(path string, size int, m density.Model) (*density.Grid, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	g, err := density.FromImage(img, size, m)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	return g, nil
}
