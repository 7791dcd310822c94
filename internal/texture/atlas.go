package texture

import (
	"sort"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/world"
)

// ChunkAtlas is a texture array holding only the face textures one chunk
// mesh references, plus the name -> layer table its vertices were built with.
type ChunkAtlas struct {
	Texture gpu.Texture
	names   []string
	layers  map[string]uint32
}

// Layer returns the array layer of a texture name.
func (a *ChunkAtlas) Layer(name string) (uint32, bool) {
	l, ok := a.layers[name]
	return l, ok
}

// Names returns the texture names in layer order.
func (a *ChunkAtlas) Names() []string { return a.names }

// Len returns the number of layers.
func (a *ChunkAtlas) Len() int { return len(a.names) }

// ScanTextureNames returns the distinct face textures referenced by the
// non-air blocks, sorted.
func ScanTextureNames(blocks []*world.BlockType) []string {
	seenBlocks := make(map[*world.BlockType]struct{})
	seen := make(map[string]struct{})
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if _, ok := seenBlocks[b]; ok {
			continue
		}
		seenBlocks[b] = struct{}{}
		for _, n := range b.Textures().Names() {
			seen[n] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BuildChunkAtlas uploads names (deduplicated) into a fresh texture array
// with exactly one layer per name. It returns nil when names is empty.
func BuildChunkAtlas(dev gpu.Device, loader *Loader, label string, names []string) *ChunkAtlas {
	uniq := make([]string, 0, len(names))
	layers := make(map[string]uint32, len(names))
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, n := range sorted {
		if _, ok := layers[n]; ok {
			continue
		}
		layers[n] = uint32(len(uniq))
		uniq = append(uniq, n)
	}
	if len(uniq) == 0 {
		return nil
	}

	tex := dev.CreateTextureArray(label, loader.Size(), len(uniq))
	for i, n := range uniq {
		dev.WriteTextureLayer(tex, i, loader.Load(n))
	}
	return &ChunkAtlas{Texture: tex, names: uniq, layers: layers}
}
