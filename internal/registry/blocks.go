package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"mini-voxel/internal/world"

	"gopkg.in/yaml.v3"
)

// BlockDefinition is the on-disk form of a block type.
type BlockDefinition struct {
	Name    string `yaml:"name"`
	Texture string `yaml:"texture,omitempty"` // all faces
	Top     string `yaml:"top,omitempty"`
	Bottom  string `yaml:"bottom,omitempty"`
	Side    string `yaml:"side,omitempty"`
	North   string `yaml:"north,omitempty"`
	South   string `yaml:"south,omitempty"`
	East    string `yaml:"east,omitempty"`
	West    string `yaml:"west,omitempty"`
}

// Faces resolves the definition to per-face names. Specific faces override
// side, side overrides texture.
func (d BlockDefinition) Faces() world.FaceTextures {
	t := world.Uniform(d.Texture)
	if d.Side != "" {
		t.North, t.South, t.East, t.West = d.Side, d.Side, d.Side, d.Side
	}
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&t.Top, d.Top)
	pick(&t.Bottom, d.Bottom)
	pick(&t.North, d.North)
	pick(&t.South, d.South)
	pick(&t.East, d.East)
	pick(&t.West, d.West)
	return t
}

// Registry maps block names to block types. It is read by mesh workers
// concurrently with registration on the main goroutine.
type Registry struct {
	mu     sync.RWMutex
	blocks map[string]*world.BlockType
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{blocks: make(map[string]*world.BlockType)}
}

// Default returns a registry holding stone, dirt and grass.
func Default() *Registry {
	r := New()
	r.MustRegister("stone", world.Uniform("stone"))
	r.MustRegister("dirt", world.Uniform("dirt"))
	r.MustRegister("grass", world.Sided("grass_top", "grass_side", "dirt"))
	return r
}

// Register adds a block type. Names must be unique and every face needs a texture.
func (r *Registry) Register(name string, textures world.FaceTextures) (*world.BlockType, error) {
	if name == "" {
		return nil, fmt.Errorf("block name is empty")
	}
	for i, tex := range textures.Names() {
		if tex == "" {
			return nil, fmt.Errorf("block %q: no texture for %s face", name, world.AllFaces[i])
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[name]; ok {
		return nil, fmt.Errorf("block %q already registered", name)
	}
	b := world.NewBlockType(name, textures)
	r.blocks[name] = b
	return b, nil
}

// MustRegister is Register that panics on error, for static block sets.
func (r *Registry) MustRegister(name string, textures world.FaceTextures) *world.BlockType {
	b, err := r.Register(name, textures)
	if err != nil {
		panic(err)
	}
	return b
}

// Get returns the block type registered under name.
func (r *Registry) Get(name string) (*world.BlockType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blocks[name]
	return b, ok
}

// FaceTextures returns the per-face texture names of a block.
func (r *Registry) FaceTextures(b *world.BlockType) world.FaceTextures {
	return b.Textures()
}

// Names returns registered block names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.blocks))
	for n := range r.blocks {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// TexturePaths returns every distinct texture name referenced by a registered block, sorted.
func (r *Registry) TexturePaths() []string {
	r.mu.RLock()
	seen := make(map[string]struct{})
	for _, b := range r.blocks {
		for _, tex := range b.Textures().Names() {
			seen[tex] = struct{}{}
		}
	}
	r.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for tex := range seen {
		out = append(out, tex)
	}
	sort.Strings(out)
	return out
}

type definitionFile struct {
	Blocks []BlockDefinition `yaml:"blocks"`
}

// LoadDefinitions registers every block listed in a YAML file:
//
//	blocks:
//	  - name: grass
//	    top: grass_top
//	    side: grass_side
//	    bottom: dirt
func (r *Registry) LoadDefinitions(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read block definitions: %w", err)
	}
	var f definitionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse block definitions %s: %w", path, err)
	}
	for i, def := range f.Blocks {
		if _, err := r.Register(def.Name, def.Faces()); err != nil {
			return i, fmt.Errorf("%s: %w", path, err)
		}
	}
	return len(f.Blocks), nil
}

// Load returns the default registry extended with the blocks defined in
// path. An empty path yields just the defaults.
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	if _, err := r.LoadDefinitions(path); err != nil {
		return nil, err
	}
	return r, nil
}
