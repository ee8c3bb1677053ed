package theme

import (
	"fmt"
	"image"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"
	"github.com/dustin/go-humanize"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/boothfx"

	// Background decoders.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultCacheBytes bounds the memory held by scaled backgrounds.
const DefaultCacheBytes = 256 << 20

// loaded is the state of the current theme. img is nil until decoded.
type loaded struct {
	theme Theme
	gen   uint64
	img   image.Image
}

// scaled is the most recent Background result.
type scaled struct {
	key string
	pm  *boothfx.Pixmap
}

// Manager tracks the selected theme and serves its background scaled to
// the frame size. Switch and Ready are safe for concurrent use; Background
// is called from the render goroutine.
type Manager struct {
	fsys  fs.FS
	cache *ristretto.Cache

	current atomic.Pointer[loaded]
	last    atomic.Pointer[scaled]
	gen     atomic.Uint64
	wg      sync.WaitGroup
}

// NewManager creates a manager reading background files from fsys.
// maxBytes bounds the scaled background cache; zero or less uses
// DefaultCacheBytes. No theme is selected until Switch is called.
func NewManager(fsys fs.FS, maxBytes int64) (*Manager, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultCacheBytes
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create background cache: %w", err)
	}
	return &Manager{fsys: fsys, cache: cache}, nil
}

// Switch selects the theme called name and starts decoding its
// background. The previous background stops being served immediately.
func (m *Manager) Switch(name string) error {
	t, err := Lookup(name)
	if err != nil {
		return err
	}
	gen := m.gen.Add(1)
	m.current.Store(&loaded{theme: t, gen: gen})
	boothfx.Logger().Info("theme: switching", "theme", t.Name, "file", t.File)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.load(t, gen)
	}()
	return nil
}

// Current returns the selected theme and whether one is selected.
func (m *Manager) Current() (Theme, bool) {
	l := m.current.Load()
	if l == nil {
		return Theme{}, false
	}
	return l.theme, true
}

// Ready reports whether the selected theme's background has decoded.
func (m *Manager) Ready() bool {
	l := m.current.Load()
	return l != nil && l.img != nil
}

// Wait blocks until every started decode has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close waits for pending decodes and releases the cache.
func (m *Manager) Close() {
	m.wg.Wait()
	m.cache.Close()
}

// Background returns the current background stretched to width×height,
// or false while no theme is selected or its image is still decoding.
// The returned pixmap must not be modified.
func (m *Manager) Background(width, height int) (*boothfx.Pixmap, bool) {
	l := m.current.Load()
	if l == nil || l.img == nil || width <= 0 || height <= 0 {
		return nil, false
	}

	key := fmt.Sprintf("%s@%dx%d", l.theme.Name, width, height)
	if s := m.last.Load(); s != nil && s.key == key {
		return s.pm, true
	}
	if v, ok := m.cache.Get(key); ok {
		pm := v.(*boothfx.Pixmap)
		m.last.Store(&scaled{key: key, pm: pm})
		return pm, true
	}

	pm := scale(l.img, width, height)
	m.cache.Set(key, pm, int64(len(pm.Data())))
	m.last.Store(&scaled{key: key, pm: pm})
	boothfx.Logger().Debug("theme: background scaled", "theme", l.theme.Name, "width", width, "height", height)
	return pm, true
}

// load decodes t's background and publishes it if no newer Switch
// happened meanwhile.
func (m *Manager) load(t Theme, gen uint64) {
	img, size, err := decode(m.fsys, t.File)
	if err != nil {
		boothfx.Logger().Warn("theme: background unavailable", "theme", t.Name, "err", err)
		return
	}
	if !m.publish(t, gen, img) {
		return
	}
	boothfx.Logger().Info("theme: background ready", "theme", t.Name,
		"size", humanize.Bytes(uint64(size)),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
}

// publish installs img as the decoded background of generation gen. It
// reports false when a later Switch has replaced that generation.
func (m *Manager) publish(t Theme, gen uint64, img image.Image) bool {
	prev := m.current.Load()
	if prev == nil || prev.gen != gen {
		return false
	}
	return m.current.CompareAndSwap(prev, &loaded{theme: t, gen: gen, img: img})
}

func decode(fsys fs.FS, name string) (image.Image, int64, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, 0, fmt.Errorf("open background: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, size, fmt.Errorf("decode background %s: %w", name, err)
	}
	boothfx.Logger().Debug("theme: decoded", "file", name, "format", format)
	return img, size, nil
}

// scale stretches img to width×height the way a canvas drawImage with a
// destination rectangle does.
func scale(img image.Image, width, height int) *boothfx.Pixmap {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}
	return boothfx.FromImage(dst)
}
