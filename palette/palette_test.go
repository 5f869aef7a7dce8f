package palette

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVGATable(t *testing.T) {
	// Every component must be a widened 6-bit DAC value
	widen := func(v uint8) uint8 { return v<<2 | v>>4 }
	valid := make(map[uint8]bool)
	for v := uint8(0); v < 64; v++ {
		valid[widen(v)] = true
	}

	for i, c := range VGA {
		assert.True(t, valid[c.R] && valid[c.G] && valid[c.B], "entry %d: %v", i, c)
	}

	assert.Equal(t, RGB{0x00, 0x00, 0xaa}, VGA[1])
	assert.Equal(t, RGB{0xff, 0xff, 0xff}, VGA[15])
	assert.Equal(t, RGB{0x00, 0x00, 0xff}, VGA[32])
	assert.Equal(t, RGB{0xff, 0x00, 0x00}, VGA[40])
	assert.Equal(t, RGB{0x00, 0xff, 0x00}, VGA[48])
	for i := 248; i < 256; i++ {
		assert.Equal(t, RGB{}, VGA[i])
	}
}

func TestNearestIndex(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		index uint8
	}{
		{"black", RGB{0, 0, 0}, 0},
		{"white", RGB{255, 255, 255}, 15},
		{"red", RGB{255, 0, 0}, 40},
		{"green", RGB{0, 255, 0}, 48},
		{"blue", RGB{0, 0, 255}, 32},
		{"ega blue", RGB{0, 0, 0xaa}, 1},
		{"ega brown", RGB{0xaa, 0x55, 0x00}, 6},
		{"near black", RGB{1, 1, 1}, 0},
		{"gray", RGB{0x80, 0x81, 0x82}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.index, NearestIndex(tt.color))
			assert.Equal(t, tt.index, defaultTree().NearestIndex(tt.color))
		})
	}
}

func TestTieBreak(t *testing.T) {
	for i, c := range VGA {
		want := uint8(i)
		for j := 0; j < i; j++ {
			if VGA[j] == c {
				want = uint8(j)
				break
			}
		}
		assert.Equal(t, want, NearestIndex(c), "entry %d", i)
		assert.Equal(t, want, defaultTree().NearestIndex(c), "entry %d", i)
	}

	// Equidistant between two distinct entries
	p := []RGB{{10, 0, 0}, {0, 0, 0}, {20, 0, 0}}
	tree := NewTree(p)
	assert.Equal(t, 0, nearest(p, RGB{5, 0, 0}))
	assert.Equal(t, uint8(0), tree.NearestIndex(RGB{5, 0, 0}))
	assert.Equal(t, 0, nearest(p, RGB{15, 0, 0}))
	assert.Equal(t, uint8(0), tree.NearestIndex(RGB{15, 0, 0}))
}

func TestTreeMatchesLinearScan(t *testing.T) {
	tree := defaultTree()

	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				if !assert.Equal(t, NearestIndex(c), tree.NearestIndex(c), "color %v", c) {
					return
				}
			}
		}
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		c := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
		if !assert.Equal(t, NearestIndex(c), tree.NearestIndex(c), "color %v", c) {
			return
		}
	}
}

func TestTreeRandomPalettes(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for n := 0; n < 50; n++ {
		// Small component range forces lots of duplicates and ties
		p := make([]RGB, 1+rng.Intn(40))
		for i := range p {
			p[i] = RGB{uint8(rng.Intn(4) * 8), uint8(rng.Intn(4) * 8), uint8(rng.Intn(4) * 8)}
		}
		tree := NewTree(p)
		for i := 0; i < 2000; i++ {
			c := RGB{uint8(rng.Intn(32)), uint8(rng.Intn(32)), uint8(rng.Intn(32))}
			require.Equal(t, uint8(nearest(p, c)), tree.NearestIndex(c), "palette %v color %v", p, c)
		}
	}
}

func TestQuantize(t *testing.T) {
	m := image.NewRGBA(image.Rect(3, 5, 6, 7))
	m.Set(3, 5, color.RGBA{255, 0, 0, 255})
	m.Set(4, 5, color.RGBA{0, 0, 0, 255})
	m.Set(5, 5, color.RGBA{0, 255, 0, 255})
	m.Set(3, 6, color.RGBA{255, 255, 255, 255})
	m.Set(4, 6, color.RGBA{0, 0, 255, 255})
	m.Set(5, 6, color.RGBA{0, 0, 0xaa, 255})

	want := []uint8{40, 0, 48, 15, 32, 1}

	pm := Quantize(m)
	assert.Equal(t, image.Rect(0, 0, 3, 2), pm.Bounds())
	assert.Equal(t, want, pm.Pix)
	assert.True(t, IsVGA(pm.Palette))

	// The generic path must agree with the *image.RGBA fast path
	n := image.NewNRGBA(m.Bounds())
	for y := m.Bounds().Min.Y; y < m.Bounds().Max.Y; y++ {
		for x := m.Bounds().Min.X; x < m.Bounds().Max.X; x++ {
			n.Set(x, y, m.At(x, y))
		}
	}
	assert.Equal(t, want, Quantize(n).Pix)
}

func TestQuantizeSubImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	m.Set(2, 2, color.RGBA{0, 0, 255, 255})

	pm := Quantize(m.SubImage(image.Rect(2, 2, 4, 3)))
	assert.Equal(t, image.Rect(0, 0, 2, 1), pm.Bounds())
	assert.Equal(t, []uint8{32, 15}, pm.Pix)
}

func TestIsVGA(t *testing.T) {
	p := Colors()
	assert.True(t, IsVGA(p))

	p[7] = color.RGBA{1, 2, 3, 255}
	assert.False(t, IsVGA(p))
	assert.False(t, IsVGA(Colors()[:255]))
	assert.False(t, IsVGA(nil))

	q := Colors()
	q[0] = color.RGBA{0, 0, 0, 0}
	assert.False(t, IsVGA(q))
}

func TestModel(t *testing.T) {
	assert.Equal(t, VGA[40], Model.Convert(color.RGBA{250, 10, 10, 255}))
	assert.Equal(t, VGA[15], Model.Convert(color.White))
}
