package pbm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"runtime"
	"testing"

	"github.com/bodgit/mode13h/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVGA(w, h int, pix ...uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), palette.Colors())
	copy(m.Pix, pix)
	return m
}

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, newVGA(3, 2, 1, 2, 3, 4, 5, 255)))

	assert.Equal(t, []byte{
		'P', 'B', 'M', 0x13,
		0x03, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		1, 2, 3,
		4, 5, 255,
	}, b.Bytes())
}

func TestEncodeSize(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 1, 1),
		image.Rect(0, 0, 5, 3),
		image.Rect(0, 0, 320, 200),
	} {
		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, image.NewPaletted(r, palette.Colors())))
		assert.Equal(t, HeaderSize+r.Dx()*r.Dy(), b.Len())
	}
}

func TestEncodeQuantizes(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, color.RGBA{255, 0, 0, 255})
	m.Set(1, 0, color.RGBA{0, 0, 0, 255})
	m.Set(0, 1, color.RGBA{255, 255, 255, 255})
	m.Set(1, 1, color.RGBA{0, 0, 255, 255})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, []byte{40, 0, 15, 32}, b.Bytes()[HeaderSize:])

	// A paletted image with some other palette is remapped rather than
	// trusted
	p := image.NewPaletted(m.Bounds(), color.Palette{color.RGBA{0, 0, 255, 255}, color.RGBA{255, 255, 255, 255}})
	p.Pix = []uint8{1, 0, 0, 1}

	b.Reset()
	require.NoError(t, Encode(b, p))
	assert.Equal(t, []byte{15, 32, 32, 15}, b.Bytes()[HeaderSize:])
}

func TestEncodeSubImage(t *testing.T) {
	m := newVGA(4, 3,
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m.SubImage(image.Rect(1, 1, 3, 3))))
	assert.Equal(t, []byte{
		'P', 'B', 'M', 0x13,
		0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		5, 6,
		9, 10,
	}, b.Bytes())
}

type failWriter struct{}

var errWrite = errors.New("disk full")

func (failWriter) Write(p []byte) (int, error) { return 0, errWrite }

func TestEncodeWriteError(t *testing.T) {
	assert.Equal(t, errWrite, Encode(failWriter{}, newVGA(1, 1)))
}

func TestRoundTrip(t *testing.T) {
	m := newVGA(4, 2, 0, 15, 40, 32, 248, 1, 2, 3)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, err := Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	pm, ok := got.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, m.Bounds(), pm.Bounds())
	assert.Equal(t, m.Pix, pm.Pix)
	assert.True(t, palette.IsVGA(pm.Palette))

	// Also reachable through the standard library registry
	_, format, err := image.Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "pbm", format)
}

func TestDecodeConfig(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, newVGA(7, 3)))

	c, err := DecodeConfig(bytes.NewReader(b.Bytes()[:HeaderSize]))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Width)
	assert.Equal(t, 3, c.Height)
}

func TestDecodeErrors(t *testing.T) {
	valid := new(bytes.Buffer)
	require.NoError(t, Encode(valid, newVGA(2, 2, 1, 2, 3, 4)))
	v := valid.Bytes()

	huge := append([]byte(nil), v[:HeaderSize]...)
	huge[7], huge[11] = 0x01, 0x01

	tests := []struct {
		name string
		b    []byte
		err  error
	}{
		{"empty", nil, ErrNotAPBMFile},
		{"short header", v[:5], ErrNotAPBMFile},
		{"bad magic", append([]byte("PKM "), v[4:]...), ErrNotAPBMFile},
		{"short pixels", v[:len(v)-1], errNotEnough},
		{"trailing data", append(append([]byte(nil), v...), 0), errTooMuch},
		{"too large", huge, ErrImageIsTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.b))
			assert.Equal(t, tt.err, err)
		})
	}
}

// stallReader returns (0, nil) once before passing on the end of r.
type stallReader struct {
	r       io.Reader
	stalled bool
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == io.EOF && !s.stalled {
		s.stalled = true
		return n, nil
	}
	return n, err
}

func TestDecodeEmptyReadAtEnd(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, newVGA(2, 2, 1, 2, 3, 4)))

	m, err := Decode(&stallReader{r: bytes.NewReader(b.Bytes())})
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4}, m.(*image.Paletted).Pix)
}

func TestDecodeHugeHeaderNoPixels(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, newVGA(0, 0)))
	h := b.Bytes()
	h[5], h[9] = 0x40, 0x40 // 16384x16384 is exactly MaxPixels

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	_, err := Decode(bytes.NewReader(h))

	runtime.ReadMemStats(&after)

	assert.Equal(t, errNotEnough, err)
	assert.True(t, after.TotalAlloc-before.TotalAlloc < 16<<20, "allocated %d bytes", after.TotalAlloc-before.TotalAlloc)
}
