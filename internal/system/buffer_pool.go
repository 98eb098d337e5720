package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует холсты *image.RGBA одного размера, чтобы
// рендер тысяч кадров не нагружал Garbage Collector (GC).
// Содержимое возвращаемого холста не очищается.
type ImagePool struct {
	pools sync.Map // image.Point -> *sync.Pool
}

var globalPool = &ImagePool{}

func GetImage(size image.Point) *image.RGBA {
	return globalPool.Get(size)
}

func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) pool(size image.Point) *sync.Pool {
	if v, ok := p.pools.Load(size); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(size, &sync.Pool{
		New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		},
	})
	return v.(*sync.Pool)
}

// Get возвращает холст размера size с началом координат в (0, 0).
func (p *ImagePool) Get(size image.Point) *image.RGBA {
	return p.pool(size).Get().(*image.RGBA)
}

// Put возвращает холст в пул. Холсты со смещенным началом не принимаются.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	p.pool(img.Rect.Size()).Put(img)
}
