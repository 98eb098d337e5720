package cursor

import (
	"image"
	"sync"
)

// Key identifies one rasterized glyph.
type Key struct {
	Shape Shape
	Size  int
}

// Glyph is a rendered cursor with its hotspot in glyph pixels.
type Glyph struct {
	Image   *image.RGBA
	Size    int
	Hotspot image.Point
}

// Cache holds rasterized glyphs by value key. Lookups of unrelated keys
// never contend; two workers missing the same key may both rasterize it and
// the later store wins, which is harmless since the result depends only on
// the key.
type Cache struct {
	r      Rasterizer
	glyphs sync.Map // Key -> *Glyph
}

func NewCache(r Rasterizer) *Cache {
	return &Cache{r: r}
}

// Get returns the glyph for shape at size pixels, rasterizing on a miss.
func (c *Cache) Get(shape Shape, size int) (*Glyph, error) {
	if size < 1 {
		size = 1
	}
	key := Key{Shape: shape, Size: size}
	if g, ok := c.glyphs.Load(key); ok {
		return g.(*Glyph), nil
	}
	img, err := c.r.Rasterize(shape, size)
	if err != nil {
		return nil, err
	}
	g := &Glyph{Image: img, Size: size, Hotspot: HotspotAt(shape, size)}
	c.glyphs.Store(key, g)
	return g, nil
}

// Preload resolves every shape at every size up front so a missing asset
// surfaces before any frame work starts.
func (c *Cache) Preload(shapes []Shape, sizes ...int) error {
	for _, sh := range shapes {
		for _, size := range sizes {
			if _, err := c.Get(sh, size); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len reports how many glyphs are cached.
func (c *Cache) Len() int {
	n := 0
	c.glyphs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
