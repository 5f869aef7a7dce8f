/*
Package bmp implements a decoder for uncompressed true color Windows bitmaps.

A bitmap starts with a 14 byte file header holding the "BM" signature, the
file size and the offset of the pixel array, followed by a DIB header. Only
the BITMAPINFOHEADER (40 bytes) and its V4 (108 bytes) and V5 (124 bytes)
extensions are accepted, and only with 24 or 32 bits per pixel and no
compression. Anything between the headers and the pixel array, such as color
masks or a color table, is skipped.

Each row of pixels is padded to a multiple of 4 bytes and stored in B, G, R
order, with a fourth unused byte at 32 bits per pixel. A positive height means
the rows are stored bottom-up, a negative height means top-down. The decoded
image always has its first row at the top.
*/
package bmp

import "fmt"

// Magic is the signature at the start of every bitmap file.
const Magic = "BM"

// MaxPixels is the largest image, in pixels, that will be decoded.
const MaxPixels = 1 << 28

const (
	fileHeaderLen   = 14
	infoHeaderLen   = 40
	v4InfoHeaderLen = 108
	v5InfoHeaderLen = 124

	compressionRGB = 0
)

// A FormatError reports that the input is not a supported bitmap. It names
// the constraint that was violated.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

var (
	errBadMagic     = FormatError("bad signature, expected \"" + Magic + "\"")
	errShortHeader  = FormatError("unexpected end of header")
	errShortPixels  = FormatError("truncated pixel data")
	errBadPlanes    = FormatError("number of color planes must be 1")
	errBadWidth     = FormatError("width must be positive")
	errBadHeight    = FormatError("height must not be zero")
	errTooLarge     = FormatError("image is too large")
	errBadOffset    = FormatError("pixel data offset overlaps the headers")
	errShortPreface = FormatError("unexpected end of file before pixel data")
)

func errDIBSize(n uint32) error {
	return FormatError(fmt.Sprintf("unsupported DIB header size %d", n))
}

func errBitsPerPixel(n uint16) error {
	return FormatError(fmt.Sprintf("unsupported bits per pixel %d, only 24 and 32 are supported", n))
}

func errCompression(n uint32) error {
	return FormatError(fmt.Sprintf("unsupported compression method %d, only uncompressed data is supported", n))
}

func errImageSize(declared uint32, want int64) error {
	return FormatError(fmt.Sprintf("declared image size %d does not match %d bytes of pixel data", declared, want))
}
