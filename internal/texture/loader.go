package texture

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"mini-voxel/internal/logger"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// FallbackColor fills textures that could not be loaded.
var FallbackColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// extensions tried, in order, for names without one.
var extensions = []string{".png", ".webp", ".bmp"}

// Stats reports loader cache behaviour.
type Stats struct {
	Cached    int
	Fallbacks int
	Hits      int
	Misses    int
}

// Loader decodes block textures from a directory and scales them to a fixed
// square size. Decoded pixels are cached by name. Safe for concurrent use.
type Loader struct {
	dir  string
	size int

	mu        sync.RWMutex
	cache     map[string][]byte
	fallbacks map[string]bool
	hits      int
	misses    int
}

// NewLoader creates a loader reading from dir and producing size x size RGBA images.
func NewLoader(dir string, size int) *Loader {
	return &Loader{
		dir:       dir,
		size:      size,
		cache:     make(map[string][]byte),
		fallbacks: make(map[string]bool),
	}
}

// Size returns the edge length of every loaded texture.
func (l *Loader) Size() int { return l.size }

// Load returns size*size*4 bytes of RGBA pixels for name. A missing or
// undecodable asset yields a solid FallbackColor image; Load never fails.
// The returned slice is shared and must not be modified.
func (l *Loader) Load(name string) []byte {
	l.mu.RLock()
	pix, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		l.mu.Lock()
		l.hits++
		l.mu.Unlock()
		return pix
	}

	pix, err := l.decode(name)
	fallback := err != nil
	if fallback {
		logger.Log.Warn("texture load failed, using fallback",
			zap.String("name", name),
			zap.String("dir", l.dir),
			zap.Error(err))
		pix = solid(l.size, FallbackColor)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.misses++
	if existing, ok := l.cache[name]; ok {
		return existing
	}
	l.cache[name] = pix
	if fallback {
		l.fallbacks[name] = true
	}
	return pix
}

// Preload loads every named texture so mesh workers hit the cache. It
// returns how many fell back to the solid colour.
func (l *Loader) Preload(names []string) int {
	for _, n := range names {
		l.Load(n)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	failed := 0
	for _, n := range names {
		if l.fallbacks[n] {
			failed++
		}
	}
	logger.Log.Info("textures preloaded",
		zap.Int("count", len(names)),
		zap.Int("fallbacks", failed))
	return failed
}

// Stats returns a snapshot of cache counters.
func (l *Loader) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Cached:    len(l.cache),
		Fallbacks: len(l.fallbacks),
		Hits:      l.hits,
		Misses:    l.misses,
	}
}

func (l *Loader) resolve(name string) (string, error) {
	if filepath.Ext(name) != "" {
		return filepath.Join(l.dir, name), nil
	}
	var firstErr error
	for _, ext := range extensions {
		p := filepath.Join(l.dir, name+ext)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func (l *Loader) decode(name string) ([]byte, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, l.size, l.size))
	if img.Bounds().Dx() == l.size && img.Bounds().Dy() == l.size {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	} else {
		// Block textures are pixel art; keep hard edges when resizing.
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	}
	return dst.Pix, nil
}

func solid(size int, c color.RGBA) []byte {
	pix := make([]byte, size*size*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	return pix
}
