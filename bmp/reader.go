package bmp

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"io/ioutil"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// rowStride returns the number of bytes used to store one row of width
// pixels, including the padding up to a 4 byte boundary.
func rowStride(width, bpp int) int {
	return (width*bpp + 31) / 32 * 4
}

// destRow returns which row of the decoded image the i'th stored row
// belongs to.
func destRow(i, height int, topDown bool) int {
	if topDown {
		return i
	}
	return height - 1 - i
}

type decoder struct {
	r io.Reader

	width   int
	height  int
	topDown bool
	bpp     int
	stride  int

	image *image.RGBA

	// Enough to hold the largest supported headers
	tmp [fileHeaderLen + v5InfoHeaderLen]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:fileHeaderLen+4]); err != nil {
		return err
	}

	if string(d.tmp[:2]) != Magic {
		return errBadMagic
	}

	offset := binary.LittleEndian.Uint32(d.tmp[10:14])
	dibLen := binary.LittleEndian.Uint32(d.tmp[14:18])

	switch dibLen {
	case infoHeaderLen, v4InfoHeaderLen, v5InfoHeaderLen:
	default:
		return errDIBSize(dibLen)
	}

	if err := readFull(d.r, d.tmp[fileHeaderLen+4:fileHeaderLen+dibLen]); err != nil {
		return err
	}

	b := d.tmp[fileHeaderLen:]

	width := int64(int32(binary.LittleEndian.Uint32(b[4:8])))
	height := int64(int32(binary.LittleEndian.Uint32(b[8:12])))
	planes := binary.LittleEndian.Uint16(b[12:14])
	bpp := binary.LittleEndian.Uint16(b[14:16])
	compression := binary.LittleEndian.Uint32(b[16:20])
	imageSize := binary.LittleEndian.Uint32(b[20:24])

	if planes != 1 {
		return errBadPlanes
	}

	switch bpp {
	case 24, 32:
	default:
		return errBitsPerPixel(bpp)
	}

	if compression != compressionRGB {
		return errCompression(compression)
	}

	if width <= 0 {
		return errBadWidth
	}

	switch {
	case height == 0:
		return errBadHeight
	case height < 0:
		height = -height
		d.topDown = true
	}

	if width*height > MaxPixels {
		return errTooLarge
	}

	d.width, d.height, d.bpp = int(width), int(height), int(bpp)
	d.stride = rowStride(d.width, d.bpp)

	// Zero is allowed for uncompressed data
	if want := int64(d.stride) * height; imageSize != 0 && int64(imageSize) != want {
		return errImageSize(imageSize, want)
	}

	if offset < fileHeaderLen+dibLen {
		return errBadOffset
	}

	return d.skip(int64(offset - fileHeaderLen - dibLen))
}

func (d *decoder) skip(n int64) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(ioutil.Discard, d.r, n); err != nil {
		if err != io.EOF {
			return err
		}
		return errShortPreface
	}
	return nil
}

func (d *decoder) readPixels() error {
	// Read what is actually there before trusting the header with an
	// allocation
	size := int64(d.stride) * int64(d.height)
	raw, err := ioutil.ReadAll(io.LimitReader(d.r, size))
	if err != nil {
		return err
	}
	if int64(len(raw)) < size {
		return errShortPixels
	}

	d.image = image.NewRGBA(image.Rect(0, 0, d.width, d.height))

	step := d.bpp / 8

	for i := 0; i < d.height; i++ {
		row := raw[i*d.stride : (i+1)*d.stride]

		y := destRow(i, d.height, d.topDown)
		dst := d.image.Pix[y*d.image.Stride : y*d.image.Stride+4*d.width]
		for x, j := 0, 0; x < d.width; x, j = x+1, j+step {
			dst[4*x+0] = row[j+2]
			dst[4*x+1] = row[j+1]
			dst[4*x+2] = row[j+0]
			dst[4*x+3] = 0xff
		}
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errShortHeader
	}

	if configOnly {
		return nil
	}

	return d.readPixels()
}

// Decode reads a bitmap from r and returns it as an *image.RGBA with the
// top-left corner at (0, 0). Any violation of the supported format is
// reported as a FormatError.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a bitmap without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
