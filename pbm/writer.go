package pbm

import (
	"encoding/binary"
	"image"
	"io"
	"math"

	"github.com/bodgit/mode13h/palette"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *image.Paletted) error {
	b := m.Bounds()

	var header [HeaderSize]byte
	copy(header[:], Magic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(header[8:12], uint32(b.Dy()))

	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}

	// Rows are contiguous so the pixels can go out in one write
	if m.Stride == b.Dx() {
		_, err := e.w.Write(m.Pix[:b.Dx()*b.Dy()])
		return err
	}

	for y := 0; y < b.Dy(); y++ {
		if _, err := e.w.Write(m.Pix[y*m.Stride : y*m.Stride+b.Dx()]); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in PBM format. A paletted image using
// exactly the VGA palette is written as is, anything else is first mapped
// to the nearest VGA colors.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if uint64(b.Dx()) > math.MaxUint32 || uint64(b.Dy()) > math.MaxUint32 {
		return ErrImageIsTooLarge
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || !palette.IsVGA(pm.Palette) {
		pm = palette.Quantize(m)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{w: w}

	return e.encode(pm)
}
