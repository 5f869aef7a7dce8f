package mode13h

import (
	"bytes"
	"image/color"

	"github.com/bodgit/mode13h/bmp"
	"github.com/bodgit/mode13h/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

const adaptiveColors = 256

// Report describes how faithfully a bitmap survives conversion.
type Report struct {
	Width  int
	Height int

	// Distinct colors in the source and distinct VGA entries used
	SourceColors int
	IndicesUsed  int

	// Mean squared error per pixel, summed over the three channels, of the
	// VGA palette and of a median cut palette of the same size built from
	// the image itself
	VGAError      float64
	AdaptiveError float64
}

func toRGB(c color.Color) palette.RGB {
	r, g, b, _ := c.RGBA()
	return palette.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

func sqDiff(c1, c2 palette.RGB) float64 {
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return dr*dr + dg*dg + db*db
}

// Report decodes the bitmap in b and compares the VGA palette against an
// adaptive palette for it.
func (c *Converter) Report(b []byte) (*Report, error) {
	m, err := bmp.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	bounds := m.Bounds()
	pm := palette.Quantize(m)

	q := quantize.MedianCutQuantizer{}
	adaptive := q.Quantize(make(color.Palette, 0, adaptiveColors), m)
	c.logger.Printf("Median cut produced %d colors\n", len(adaptive))

	source := make(map[palette.RGB]struct{})
	used := make(map[uint8]struct{})
	nearest := make(map[palette.RGB]palette.RGB)

	var vgaSum, adaptiveSum float64
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			src := toRGB(m.At(bounds.Min.X+x, bounds.Min.Y+y))
			source[src] = struct{}{}

			i := pm.ColorIndexAt(x, y)
			used[i] = struct{}{}
			vgaSum += sqDiff(src, palette.VGA[i])

			if len(adaptive) == 0 {
				continue
			}
			n, ok := nearest[src]
			if !ok {
				n = toRGB(adaptive.Convert(src))
				nearest[src] = n
			}
			adaptiveSum += sqDiff(src, n)
		}
	}

	pixels := float64(bounds.Dx() * bounds.Dy())

	return &Report{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		SourceColors:  len(source),
		IndicesUsed:   len(used),
		VGAError:      vgaSum / pixels,
		AdaptiveError: adaptiveSum / pixels,
	}, nil
}
