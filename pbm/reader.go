package pbm

import (
	"encoding/binary"
	"image"
	"io"
	"io/ioutil"

	"github.com/bodgit/mode13h/palette"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int

	image *image.Paletted

	tmp [HeaderSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrNotAPBMFile
	}

	if string(d.tmp[:len(Magic)]) != Magic {
		return ErrNotAPBMFile
	}

	width := uint64(binary.LittleEndian.Uint32(d.tmp[4:8]))
	height := uint64(binary.LittleEndian.Uint32(d.tmp[8:12]))
	if width*height > MaxPixels {
		return ErrImageIsTooLarge
	}
	d.width, d.height = int(width), int(height)

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	// Reading one byte past the pixels catches trailing data, and nothing
	// is allocated beyond what the reader actually supplies
	size := int64(d.width) * int64(d.height)
	pix, err := ioutil.ReadAll(io.LimitReader(d.r, size+1))
	if err != nil {
		return err
	}

	switch {
	case int64(len(pix)) < size:
		return errNotEnough
	case int64(len(pix)) > size:
		return errTooMuch
	}

	d.image = &image.Paletted{
		Pix:     pix,
		Stride:  d.width,
		Rect:    image.Rect(0, 0, d.width, d.height),
		Palette: palette.Colors(),
	}

	return nil
}

// Decode reads a PBM image from r and returns it as an *image.Paletted
// using the VGA palette.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a PBM image without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: palette.Colors(),
		Width:      d.width,
		Height:     d.height,
	}, nil
}
