package theme

import (
	"container/list"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFont returns the fallback face used when no global font was set.
func DefaultFont() font.Face {
	return basicfont.Face7x13
}

// LoadFontFace parses a TrueType or OpenType file and returns a face at the
// given point size (72 DPI, so points equal pixels).
func LoadFontFace(path string, size float32) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme: parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("theme: font face %s: %w", path, err)
	}
	return face, nil
}

// LineHeight returns the face's line height in pixels.
func LineHeight(face font.Face) float32 {
	if face == nil {
		face = DefaultFont()
	}
	return fixedToFloat(face.Metrics().Height)
}

// Ascent returns the distance from the top of a line to its baseline.
func Ascent(face font.Face) float32 {
	if face == nil {
		face = DefaultFont()
	}
	return fixedToFloat(face.Metrics().Ascent)
}

// MeasureString returns the advance width of s in pixels. Results are cached
// per face; the cache is shared by every widget.
func MeasureString(face font.Face, s string) float32 {
	if face == nil {
		face = DefaultFont()
	}
	if s == "" {
		return 0
	}
	key := measureKey{face: face, text: s}
	if w, ok := measureCache.get(key); ok {
		return w
	}
	w := fixedToFloat(font.MeasureString(face, s))
	measureCache.put(key, w)
	return w
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// measureCache bounds text measurement work for labels and edit boxes that
// re-measure on every layout pass.
var measureCache = newTextMeasureCache(1024)

type measureKey struct {
	face font.Face
	text string
}

// textMeasureCache is an LRU cache for text width measurements.
type textMeasureCache struct {
	mu      sync.Mutex
	maxSize int
	cache   map[measureKey]*list.Element
	lru     *list.List // Front = most recently used
}

type cacheEntry struct {
	key   measureKey
	width float32
}

func newTextMeasureCache(maxSize int) *textMeasureCache {
	return &textMeasureCache{
		maxSize: maxSize,
		cache:   make(map[measureKey]*list.Element),
		lru:     list.New(),
	}
}

func (c *textMeasureCache) get(key measureKey) (float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).width, true
	}
	return 0, false
}

func (c *textMeasureCache) put(key measureKey, width float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).width = width
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.cache, oldest.Value.(*cacheEntry).key)
	}

	c.cache[key] = c.lru.PushFront(&cacheEntry{key: key, width: width})
}

func (c *textMeasureCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
