/*
Package pbm implements an encoder and decoder for packed bitmaps, a minimal
format holding one VGA palette index per pixel.

The file is a 12 byte header followed by the pixels:

	offset  size  field
	0       4     magic, "PBM" followed by 0x13
	4       4     width, little-endian
	8       4     height, little-endian
	12      w*h   palette indices, row-major, top row first

There is no padding, no compression, and no palette; every index refers to
the VGA mode 13h palette in package palette. A file is therefore exactly
HeaderSize plus width times height bytes long.
*/
package pbm

import (
	"errors"
	"image"
)

// Magic is the byte string prefix of every packed bitmap.
const Magic = "PBM\x13"

// HeaderSize is the length of the header preceding the pixel indices.
const HeaderSize = len(Magic) + 4 + 4

// MaxPixels is the largest image, in pixels, that will be decoded.
const MaxPixels = 1 << 28

func init() {
	image.RegisterFormat("pbm", Magic, Decode, DecodeConfig)
}

var (
	ErrNotAPBMFile     = errors.New("pbm: not a PBM file")
	ErrImageIsTooLarge = errors.New("pbm: image is too large")

	errNotEnough = errors.New("pbm: not enough image data")
	errTooMuch   = errors.New("pbm: too much image data")
)
