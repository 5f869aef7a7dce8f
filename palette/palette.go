/*
Package palette implements the fixed VGA mode 13h palette and nearest color
matching against it.

The palette is the default 256 color table loaded into the VGA DAC by the
BIOS when switching to mode 13h: the 16 EGA colors, a 16 step gray ramp, nine
24 color hue rings at three intensities and three saturations, and finally
eight unused black entries. Each 6-bit DAC component is widened to 8 bits by
replicating the top bits into the bottom.

Matching uses squared Euclidean distance in RGB space with integer
arithmetic. When more than one entry is equally close the lowest index wins,
which matters as black and white both appear more than once.
*/
package palette

import "image/color"

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// VGA is the mode 13h default palette. It must not be modified.
var VGA = [256]RGB{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0xaa}, {0x00, 0xaa, 0x00}, {0x00, 0xaa, 0xaa},
	{0xaa, 0x00, 0x00}, {0xaa, 0x00, 0xaa}, {0xaa, 0x55, 0x00}, {0xaa, 0xaa, 0xaa},
	{0x55, 0x55, 0x55}, {0x55, 0x55, 0xff}, {0x55, 0xff, 0x55}, {0x55, 0xff, 0xff},
	{0xff, 0x55, 0x55}, {0xff, 0x55, 0xff}, {0xff, 0xff, 0x55}, {0xff, 0xff, 0xff},
	{0x00, 0x00, 0x00}, {0x14, 0x14, 0x14}, {0x20, 0x20, 0x20}, {0x2c, 0x2c, 0x2c},
	{0x38, 0x38, 0x38}, {0x45, 0x45, 0x45}, {0x51, 0x51, 0x51}, {0x61, 0x61, 0x61},
	{0x71, 0x71, 0x71}, {0x82, 0x82, 0x82}, {0x92, 0x92, 0x92}, {0xa2, 0xa2, 0xa2},
	{0xb6, 0xb6, 0xb6}, {0xcb, 0xcb, 0xcb}, {0xe3, 0xe3, 0xe3}, {0xff, 0xff, 0xff},
	{0x00, 0x00, 0xff}, {0x41, 0x00, 0xff}, {0x7d, 0x00, 0xff}, {0xbe, 0x00, 0xff},
	{0xff, 0x00, 0xff}, {0xff, 0x00, 0xbe}, {0xff, 0x00, 0x7d}, {0xff, 0x00, 0x41},
	{0xff, 0x00, 0x00}, {0xff, 0x41, 0x00}, {0xff, 0x7d, 0x00}, {0xff, 0xbe, 0x00},
	{0xff, 0xff, 0x00}, {0xbe, 0xff, 0x00}, {0x7d, 0xff, 0x00}, {0x41, 0xff, 0x00},
	{0x00, 0xff, 0x00}, {0x00, 0xff, 0x41}, {0x00, 0xff, 0x7d}, {0x00, 0xff, 0xbe},
	{0x00, 0xff, 0xff}, {0x00, 0xbe, 0xff}, {0x00, 0x7d, 0xff}, {0x00, 0x41, 0xff},
	{0x7d, 0x7d, 0xff}, {0x9e, 0x7d, 0xff}, {0xbe, 0x7d, 0xff}, {0xdf, 0x7d, 0xff},
	{0xff, 0x7d, 0xff}, {0xff, 0x7d, 0xdf}, {0xff, 0x7d, 0xbe}, {0xff, 0x7d, 0x9e},
	{0xff, 0x7d, 0x7d}, {0xff, 0x9e, 0x7d}, {0xff, 0xbe, 0x7d}, {0xff, 0xdf, 0x7d},
	{0xff, 0xff, 0x7d}, {0xdf, 0xff, 0x7d}, {0xbe, 0xff, 0x7d}, {0x9e, 0xff, 0x7d},
	{0x7d, 0xff, 0x7d}, {0x7d, 0xff, 0x9e}, {0x7d, 0xff, 0xbe}, {0x7d, 0xff, 0xdf},
	{0x7d, 0xff, 0xff}, {0x7d, 0xdf, 0xff}, {0x7d, 0xbe, 0xff}, {0x7d, 0x9e, 0xff},
	{0xb6, 0xb6, 0xff}, {0xc7, 0xb6, 0xff}, {0xdb, 0xb6, 0xff}, {0xeb, 0xb6, 0xff},
	{0xff, 0xb6, 0xff}, {0xff, 0xb6, 0xeb}, {0xff, 0xb6, 0xdb}, {0xff, 0xb6, 0xc7},
	{0xff, 0xb6, 0xb6}, {0xff, 0xc7, 0xb6}, {0xff, 0xdb, 0xb6}, {0xff, 0xeb, 0xb6},
	{0xff, 0xff, 0xb6}, {0xeb, 0xff, 0xb6}, {0xdb, 0xff, 0xb6}, {0xc7, 0xff, 0xb6},
	{0xb6, 0xff, 0xb6}, {0xb6, 0xff, 0xc7}, {0xb6, 0xff, 0xdb}, {0xb6, 0xff, 0xeb},
	{0xb6, 0xff, 0xff}, {0xb6, 0xeb, 0xff}, {0xb6, 0xdb, 0xff}, {0xb6, 0xc7, 0xff},
	{0x00, 0x00, 0x71}, {0x1c, 0x00, 0x71}, {0x38, 0x00, 0x71}, {0x55, 0x00, 0x71},
	{0x71, 0x00, 0x71}, {0x71, 0x00, 0x55}, {0x71, 0x00, 0x38}, {0x71, 0x00, 0x1c},
	{0x71, 0x00, 0x00}, {0x71, 0x1c, 0x00}, {0x71, 0x38, 0x00}, {0x71, 0x55, 0x00},
	{0x71, 0x71, 0x00}, {0x55, 0x71, 0x00}, {0x38, 0x71, 0x00}, {0x1c, 0x71, 0x00},
	{0x00, 0x71, 0x00}, {0x00, 0x71, 0x1c}, {0x00, 0x71, 0x38}, {0x00, 0x71, 0x55},
	{0x00, 0x71, 0x71}, {0x00, 0x55, 0x71}, {0x00, 0x38, 0x71}, {0x00, 0x1c, 0x71},
	{0x38, 0x38, 0x71}, {0x45, 0x38, 0x71}, {0x55, 0x38, 0x71}, {0x61, 0x38, 0x71},
	{0x71, 0x38, 0x71}, {0x71, 0x38, 0x61}, {0x71, 0x38, 0x55}, {0x71, 0x38, 0x45},
	{0x71, 0x38, 0x38}, {0x71, 0x45, 0x38}, {0x71, 0x55, 0x38}, {0x71, 0x61, 0x38},
	{0x71, 0x71, 0x38}, {0x61, 0x71, 0x38}, {0x55, 0x71, 0x38}, {0x45, 0x71, 0x38},
	{0x38, 0x71, 0x38}, {0x38, 0x71, 0x45}, {0x38, 0x71, 0x55}, {0x38, 0x71, 0x61},
	{0x38, 0x71, 0x71}, {0x38, 0x61, 0x71}, {0x38, 0x55, 0x71}, {0x38, 0x45, 0x71},
	{0x51, 0x51, 0x71}, {0x59, 0x51, 0x71}, {0x61, 0x51, 0x71}, {0x69, 0x51, 0x71},
	{0x71, 0x51, 0x71}, {0x71, 0x51, 0x69}, {0x71, 0x51, 0x61}, {0x71, 0x51, 0x59},
	{0x71, 0x51, 0x51}, {0x71, 0x59, 0x51}, {0x71, 0x61, 0x51}, {0x71, 0x69, 0x51},
	{0x71, 0x71, 0x51}, {0x69, 0x71, 0x51}, {0x61, 0x71, 0x51}, {0x59, 0x71, 0x51},
	{0x51, 0x71, 0x51}, {0x51, 0x71, 0x59}, {0x51, 0x71, 0x61}, {0x51, 0x71, 0x69},
	{0x51, 0x71, 0x71}, {0x51, 0x69, 0x71}, {0x51, 0x61, 0x71}, {0x51, 0x59, 0x71},
	{0x00, 0x00, 0x41}, {0x10, 0x00, 0x41}, {0x20, 0x00, 0x41}, {0x30, 0x00, 0x41},
	{0x41, 0x00, 0x41}, {0x41, 0x00, 0x30}, {0x41, 0x00, 0x20}, {0x41, 0x00, 0x10},
	{0x41, 0x00, 0x00}, {0x41, 0x10, 0x00}, {0x41, 0x20, 0x00}, {0x41, 0x30, 0x00},
	{0x41, 0x41, 0x00}, {0x30, 0x41, 0x00}, {0x20, 0x41, 0x00}, {0x10, 0x41, 0x00},
	{0x00, 0x41, 0x00}, {0x00, 0x41, 0x10}, {0x00, 0x41, 0x20}, {0x00, 0x41, 0x30},
	{0x00, 0x41, 0x41}, {0x00, 0x30, 0x41}, {0x00, 0x20, 0x41}, {0x00, 0x10, 0x41},
	{0x20, 0x20, 0x41}, {0x28, 0x20, 0x41}, {0x30, 0x20, 0x41}, {0x38, 0x20, 0x41},
	{0x41, 0x20, 0x41}, {0x41, 0x20, 0x38}, {0x41, 0x20, 0x30}, {0x41, 0x20, 0x28},
	{0x41, 0x20, 0x20}, {0x41, 0x28, 0x20}, {0x41, 0x30, 0x20}, {0x41, 0x38, 0x20},
	{0x41, 0x41, 0x20}, {0x38, 0x41, 0x20}, {0x30, 0x41, 0x20}, {0x28, 0x41, 0x20},
	{0x20, 0x41, 0x20}, {0x20, 0x41, 0x28}, {0x20, 0x41, 0x30}, {0x20, 0x41, 0x38},
	{0x20, 0x41, 0x41}, {0x20, 0x38, 0x41}, {0x20, 0x30, 0x41}, {0x20, 0x28, 0x41},
	{0x2c, 0x2c, 0x41}, {0x30, 0x2c, 0x41}, {0x34, 0x2c, 0x41}, {0x3c, 0x2c, 0x41},
	{0x41, 0x2c, 0x41}, {0x41, 0x2c, 0x3c}, {0x41, 0x2c, 0x34}, {0x41, 0x2c, 0x30},
	{0x41, 0x2c, 0x2c}, {0x41, 0x30, 0x2c}, {0x41, 0x34, 0x2c}, {0x41, 0x3c, 0x2c},
	{0x41, 0x41, 0x2c}, {0x3c, 0x41, 0x2c}, {0x34, 0x41, 0x2c}, {0x30, 0x41, 0x2c},
	{0x2c, 0x41, 0x2c}, {0x2c, 0x41, 0x30}, {0x2c, 0x41, 0x34}, {0x2c, 0x41, 0x3c},
	{0x2c, 0x41, 0x41}, {0x2c, 0x3c, 0x41}, {0x2c, 0x34, 0x41}, {0x2c, 0x30, 0x41},
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// Colors returns a copy of VGA as a color.Palette suitable for
// image.Paletted.
func Colors() color.Palette {
	p := make(color.Palette, len(VGA))
	for i, c := range VGA {
		p[i] = c
	}
	return p
}

// IsVGA reports whether p holds exactly the VGA colors in order.
func IsVGA(p color.Palette) bool {
	if len(p) != len(VGA) {
		return false
	}
	for i, c := range p {
		if c == nil || toRGB(c) != VGA[i] {
			return false
		}
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return false
		}
	}
	return true
}

// Model converts any color to its nearest VGA color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return VGA[defaultTree().NearestIndex(toRGB(c))]
})

func toRGB(c color.Color) RGB {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
