// Package assets handles font loading and per-font glyph mesh caching.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Faultbox/textmesh/internal/logger"
	"github.com/Faultbox/textmesh/pkg/fontmesh"
	"github.com/Faultbox/textmesh/pkg/textmesh"
)

// BuiltinFont names the font bundled with the binary. It is used when no
// search path provides a file with that name.
const BuiltinFont = "goregular"

// ErrFontNotFound is returned when no search path holds the requested font.
var ErrFontNotFound = errors.New("font not found")

// fontExts are tried in order when a name has no extension.
var fontExts = []string{".ttf", ".otf"}

// fontEntry pairs a parsed font with its long-lived mesh cache. mu
// serializes all use of both, since neither is safe for concurrent use.
type fontEntry struct {
	mu    sync.Mutex
	font  *fontmesh.Font
	cache *textmesh.MeshCache
	path  string
}

// FontInfo describes a loaded font.
type FontInfo struct {
	Name       string
	Path       string // empty for in-memory fonts
	NumGlyphs  int
	UnitsPerEm int
}

// Library loads fonts from search paths and owns one MeshCache per font.
// It is safe for concurrent use.
type Library struct {
	paths []string
	fonts map[string]*fontEntry
	mu    sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewLibrary creates an empty font library.
func NewLibrary() *Library {
	return &Library{
		fonts: make(map[string]*fontEntry),
	}
}

// AddSearchPath adds a directory to look fonts up in.
// Paths are searched in reverse order (last added = highest priority).
func (l *Library) AddSearchPath(dir string) {
	l.mu.Lock()
	l.paths = append(l.paths, dir)
	l.mu.Unlock()
}

// LoadBytes registers a font parsed from data under name, replacing any
// font previously registered under that name along with its cache.
func (l *Library) LoadBytes(name string, data []byte) error {
	font, err := fontmesh.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font %s: %w", name, err)
	}

	l.mu.Lock()
	l.fonts[name] = &fontEntry{font: font, cache: textmesh.NewMeshCache()}
	l.mu.Unlock()

	logger.Debug("font registered", zap.String("name", name), zap.String("family", font.Name()))
	return nil
}

// Load makes sure the named font is loaded. A name may be a file path, a
// file name in one of the search paths, or a file name without its
// .ttf/.otf extension.
func (l *Library) Load(name string) error {
	_, err := l.entry(name)
	return err
}

// entry returns the loaded font entry for name, loading it on first use.
func (l *Library) entry(name string) (*fontEntry, error) {
	l.mu.RLock()
	e, ok := l.fonts[name]
	l.mu.RUnlock()
	if ok {
		l.mu.Lock()
		l.hits++
		l.mu.Unlock()
		return e, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another goroutine may have loaded it meanwhile
	if e, ok := l.fonts[name]; ok {
		l.hits++
		return e, nil
	}
	l.misses++

	e, err := l.open(name)
	if err != nil {
		return nil, err
	}
	l.fonts[name] = e
	return e, nil
}

// open reads and parses a font. Caller must hold l.mu.
func (l *Library) open(name string) (*fontEntry, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no font name given", ErrFontNotFound)
	}

	for _, path := range l.candidates(name) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}

		font, err := fontmesh.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", path, err)
		}
		logger.Debug("font loaded",
			zap.String("name", name),
			zap.String("path", path),
			zap.Int("glyphs", font.NumGlyphs()))
		return &fontEntry{font: font, cache: textmesh.NewMeshCache(), path: path}, nil
	}

	if name == BuiltinFont {
		font, err := fontmesh.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parsing builtin font: %w", err)
		}
		return &fontEntry{font: font, cache: textmesh.NewMeshCache()}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
}

// candidates lists the file paths tried for name, highest priority first.
// Caller must hold l.mu.
func (l *Library) candidates(name string) []string {
	names := []string{name}
	if filepath.Ext(name) == "" {
		for _, ext := range fontExts {
			names = append(names, name+ext)
		}
	}

	var paths []string
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		paths = append(paths, names...)
	}
	for i := len(l.paths) - 1; i >= 0; i-- {
		for _, n := range names {
			paths = append(paths, filepath.Join(l.paths[i], n))
		}
	}
	return paths
}

// Generate builds the mesh for req with the font named by req.Style.Font.
// Calls for the same font are serialized and share one glyph cache.
func (l *Library) Generate(req *textmesh.Request) (*textmesh.MeshData, error) {
	e, err := l.entry(req.Style.Font)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return textmesh.Generate(req, e.font, e.cache)
}

// Info describes the named font, loading it if needed.
func (l *Library) Info(name string) (FontInfo, error) {
	e, err := l.entry(name)
	if err != nil {
		return FontInfo{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return FontInfo{
		Name:       e.font.Name(),
		Path:       e.path,
		NumGlyphs:  e.font.NumGlyphs(),
		UnitsPerEm: e.font.UnitsPerEm(),
	}, nil
}

// GlyphCount returns the number of glyph mesh variants cached for the named
// font, or 0 if it is not loaded.
func (l *Library) GlyphCount(name string) int {
	l.mu.RLock()
	e, ok := l.fonts[name]
	l.mu.RUnlock()
	if !ok {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Len()
}

// CacheStats returns font lookup statistics.
func (l *Library) CacheStats() (hits, misses int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hits, l.misses
}

// Close drops all loaded fonts and their caches.
func (l *Library) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fonts = make(map[string]*fontEntry)
	l.paths = nil
	l.hits = 0
	l.misses = 0
}
