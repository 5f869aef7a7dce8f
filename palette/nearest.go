package palette

import (
	"image"
	"sort"
	"sync"
)

func sqDist(c1, c2 RGB) int {
	dr := int(c1.R) - int(c2.R)
	dg := int(c1.G) - int(c2.G)
	db := int(c1.B) - int(c2.B)
	return dr*dr + dg*dg + db*db
}

// NearestIndex returns the index of the VGA color closest to c, preferring
// the lowest index on a tie.
func NearestIndex(c RGB) uint8 {
	return uint8(nearest(VGA[:], c))
}

func nearest(p []RGB, c RGB) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, pc := range p {
		if d := sqDist(c, pc); d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

type node struct {
	color       [3]int
	index       int
	axis        int
	left, right int
}

// Tree is a k-d tree over a palette. It returns the same answer as a
// linear scan, tie-break included.
type Tree struct {
	nodes []node
	root  int
}

// NewTree builds a Tree over p. p must not be empty.
func NewTree(p []RGB) *Tree {
	t := &Tree{nodes: make([]node, 0, len(p))}
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(p, idx, 0)
	return t
}

func components(c RGB) [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

func (t *Tree) build(p []RGB, idx []int, depth int) int {
	if len(idx) == 0 {
		return -1
	}

	axis := depth % 3
	sort.Slice(idx, func(i, j int) bool {
		a, b := components(p[idx[i]])[axis], components(p[idx[j]])[axis]
		if a != b {
			return a < b
		}
		return idx[i] < idx[j]
	})

	m := len(idx) / 2
	t.nodes = append(t.nodes, node{
		color: components(p[idx[m]]),
		index: idx[m],
		axis:  axis,
	})
	n := len(t.nodes) - 1

	l := t.build(p, idx[:m], depth+1)
	r := t.build(p, idx[m+1:], depth+1)
	t.nodes[n].left, t.nodes[n].right = l, r

	return n
}

// NearestIndex returns the index of the palette color closest to c,
// preferring the lowest index on a tie.
func (t *Tree) NearestIndex(c RGB) uint8 {
	best, bestDist := -1, int(^uint(0)>>1)
	t.search(t.root, components(c), &best, &bestDist)
	return uint8(best)
}

func (t *Tree) search(n int, c [3]int, best, bestDist *int) {
	if n < 0 {
		return
	}
	nd := &t.nodes[n]

	d := 0
	for i := range c {
		delta := c[i] - nd.color[i]
		d += delta * delta
	}
	if d < *bestDist || (d == *bestDist && nd.index < *best) {
		*best, *bestDist = nd.index, d
	}

	diff := c[nd.axis] - nd.color[nd.axis]
	near, far := nd.left, nd.right
	if diff > 0 {
		near, far = far, near
	}

	t.search(near, c, best, bestDist)

	// Equal distances must still be visited for the tie-break
	if diff*diff <= *bestDist {
		t.search(far, c, best, bestDist)
	}
}

var (
	treeOnce sync.Once
	vgaTree  *Tree
)

func defaultTree() *Tree {
	treeOnce.Do(func() {
		vgaTree = NewTree(VGA[:])
	})
	return vgaTree
}

// Quantize maps every pixel of m to its nearest VGA index. The result has
// the same dimensions as m with its top-left corner at (0, 0).
func Quantize(m image.Image) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), Colors())
	t := defaultTree()

	if rgba, ok := m.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			src := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := pm.Pix[y*pm.Stride : y*pm.Stride+b.Dx()]
			for x := range dst {
				dst[x] = t.NearestIndex(RGB{src[4*x], src[4*x+1], src[4*x+2]})
			}
		}
		return pm
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			pm.Pix[y*pm.Stride+x] = t.NearestIndex(toRGB(m.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return pm
}
