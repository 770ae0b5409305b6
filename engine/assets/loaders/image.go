package loaders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

type ImageLoader struct{}

// Load decodes the image at path into 4-channel RGBA pixel data. A missing
// or undecodable file is a construction failure for the caller.
func (il *ImageLoader) Load(path string) (*metadata.TextureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image '%s': %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)

	// Check for transparency.
	hasTransparency := false
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 255 {
			hasTransparency = true
			break
		}
	}

	return &metadata.TextureData{
		Name:            filepath.Base(path),
		Width:           uint32(bounds.Dx()),
		Height:          uint32(bounds.Dy()),
		ChannelCount:    4,
		HasTransparency: hasTransparency,
		Pixels:          rgba.Pix,
	}, nil
}
