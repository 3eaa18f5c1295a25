package graphics

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/vovakirdan/turtle/internal/core"
)

// Image is a decoded picture kept as a color grid in logical pixels.
type Image struct {
	w, h int
	pix  []core.Color
}

// LoadImage decodes a PNG, JPEG or GIF file.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphics: load image %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphics: decode image %s: %w", filepath.Base(path), err)
	}
	return NewImage(src), nil
}

// NewImage copies src into an Image.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	img := &Image{w: b.Dx(), h: b.Dy(), pix: make([]core.Color, b.Dx()*b.Dy())}
	for y := 0; y < img.h; y++ {
		for x := 0; x < img.w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			img.pix[y*img.w+x] = core.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
		}
	}
	return img
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.w }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.h }

// At returns the pixel at (x, y), transparent outside the image.
func (img *Image) At(x, y int) core.Color {
	if x < 0 || y < 0 || x >= img.w || y >= img.h {
		return core.Color{}
	}
	return img.pix[y*img.w+x]
}

// Release drops the pixel data.
func (img *Image) Release() error {
	img.pix = nil
	img.w, img.h = 0, 0
	return nil
}
