package terrain

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// Image renders the grid as a grayscale heightmap, x to the right and z down.
// Heights are normalized to the grid's own range; a flat grid is mid gray.
func (g *Grid) Image() *image.Gray {
	side := g.Length + 1
	img := image.NewGray(image.Rect(0, 0, side, side))

	lo, hi := g.Range()
	span := hi - lo

	for dx := 0; dx < side; dx++ {
		for dz := 0; dz < side; dz++ {
			v := uint8(128)
			if span > 0 {
				t := math.Clamp((g.At(dx, dz)-lo)/span, 0, 1)
				v = uint8(t*255 + 0.5)
			}
			img.SetGray(dx, dz, color.Gray{Y: v})
		}
	}
	return img
}

// EncodeBMP writes img as a BMP file.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}
