package textmesh

import gomath "math"

// CacheKey identifies one glyph mesh variant.
type CacheKey struct {
	Char    rune
	Depth   float32
	Quality Quality
}

// NewCacheKey returns the key for a 3D glyph.
func NewCacheKey(char rune, depth float32, quality Quality) CacheKey {
	// -0 and +0 must share an entry
	if depth == 0 {
		depth = 0
	}
	return CacheKey{Char: char, Depth: depth, Quality: quality}
}

// bitsKey is the map key; comparing depth bits keeps NaN depths from
// producing an entry that can never be found again.
type bitsKey struct {
	char    rune
	depth   uint32
	quality Quality
}

func (k CacheKey) bits() bitsKey {
	return bitsKey{char: k.Char, depth: gomath.Float32bits(k.Depth), quality: k.Quality}
}

// MeshCache memoizes glyph meshes. The zero value is an empty cache.
//
// Entries are never evicted or modified after insertion. MeshCache does no
// locking; callers sharing one cache between goroutines must serialize
// access themselves.
type MeshCache struct {
	meshes map[bitsKey]*GlyphMesh
}

// NewMeshCache creates an empty cache.
func NewMeshCache() *MeshCache {
	return &MeshCache{meshes: make(map[bitsKey]*GlyphMesh)}
}

// Get returns the cached mesh for key.
func (c *MeshCache) Get(key CacheKey) (*GlyphMesh, bool) {
	mesh, ok := c.meshes[key.bits()]
	return mesh, ok
}

// GetOrInsert returns the cached mesh for key. On a miss it calls produce
// once and stores the result. Errors from produce are returned and nothing
// is stored.
func (c *MeshCache) GetOrInsert(key CacheKey, produce func() (GlyphMesh, error)) (*GlyphMesh, error) {
	k := key.bits()
	if mesh, ok := c.meshes[k]; ok {
		return mesh, nil
	}

	mesh, err := produce()
	if err != nil {
		return nil, err
	}

	if c.meshes == nil {
		c.meshes = make(map[bitsKey]*GlyphMesh)
	}
	stored := &mesh
	c.meshes[k] = stored
	return stored, nil
}

// Len returns the number of cached glyph variants.
func (c *MeshCache) Len() int {
	return len(c.meshes)
}
