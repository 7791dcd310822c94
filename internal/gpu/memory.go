package gpu

import (
	"fmt"
	"sync"
)

// MemoryBuffer is a Buffer backed by a byte slice.
type MemoryBuffer struct {
	label string
	usage BufferUsage
	data  []byte
}

func (b *MemoryBuffer) Label() string      { return b.label }
func (b *MemoryBuffer) Usage() BufferUsage { return b.usage }
func (b *MemoryBuffer) Size() int          { return len(b.data) }

// MemoryTexture is a Texture backed by per-layer pixel slices.
type MemoryTexture struct {
	label  string
	size   int
	layers [][]byte
}

func (t *MemoryTexture) Label() string { return t.label }
func (t *MemoryTexture) Size() int     { return t.size }
func (t *MemoryTexture) Layers() int   { return len(t.layers) }

// MemoryDevice implements Device in process memory. It is used for headless
// runs and tests; all methods are safe for concurrent use.
type MemoryDevice struct {
	mu       sync.Mutex
	buffers  []*MemoryBuffer
	textures map[*MemoryTexture]struct{}
	released int
	writes   int
}

// NewMemoryDevice returns an empty device.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{textures: make(map[*MemoryTexture]struct{})}
}

func (d *MemoryDevice) CreateBuffer(label string, usage BufferUsage, size int) Buffer {
	b := &MemoryBuffer{label: label, usage: usage, data: make([]byte, size)}
	d.mu.Lock()
	d.buffers = append(d.buffers, b)
	d.mu.Unlock()
	return b
}

func (d *MemoryDevice) WriteBuffer(b Buffer, offset int, data []byte) {
	mb := b.(*MemoryBuffer)
	if offset < 0 || offset+len(data) > len(mb.data) {
		panic(fmt.Sprintf("gpu: write of %d bytes at %d overflows %q (%d bytes)", len(data), offset, mb.label, len(mb.data)))
	}
	d.mu.Lock()
	copy(mb.data[offset:], data)
	d.writes++
	d.mu.Unlock()
}

func (d *MemoryDevice) CreateTextureArray(label string, size, layers int) Texture {
	t := &MemoryTexture{label: label, size: size, layers: make([][]byte, layers)}
	for i := range t.layers {
		t.layers[i] = make([]byte, size*size*4)
	}
	d.mu.Lock()
	d.textures[t] = struct{}{}
	d.mu.Unlock()
	return t
}

func (d *MemoryDevice) WriteTextureLayer(t Texture, layer int, rgba []byte) {
	mt := t.(*MemoryTexture)
	if layer < 0 || layer >= len(mt.layers) {
		panic(fmt.Sprintf("gpu: layer %d out of range for %q (%d layers)", layer, mt.label, len(mt.layers)))
	}
	d.mu.Lock()
	copy(mt.layers[layer], rgba)
	d.mu.Unlock()
}

func (d *MemoryDevice) ReleaseTexture(t Texture) {
	mt := t.(*MemoryTexture)
	d.mu.Lock()
	if _, ok := d.textures[mt]; ok {
		delete(d.textures, mt)
		d.released++
	}
	d.mu.Unlock()
}

// BufferCount returns how many buffers were ever created.
func (d *MemoryDevice) BufferCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

// LiveTextures returns how many textures exist and have not been released.
func (d *MemoryDevice) LiveTextures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures)
}

// ReleasedTextures returns how many textures were released.
func (d *MemoryDevice) ReleasedTextures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Bytes returns a copy of a buffer's contents.
func (d *MemoryDevice) Bytes(b Buffer) []byte {
	mb := b.(*MemoryBuffer)
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), mb.data...)
}

// Layer returns a copy of one texture layer's pixels.
func (d *MemoryDevice) Layer(t Texture, layer int) []byte {
	mt := t.(*MemoryTexture)
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), mt.layers[layer]...)
}

// Draw is one recorded DrawIndexed call.
type Draw struct {
	Texture    Texture
	Vertices   Buffer
	Indices    Buffer
	IndexCount int
}

// MemoryPass records draw commands.
type MemoryPass struct {
	bound Texture
	Draws []Draw
}

func (p *MemoryPass) BindTexture(t Texture) { p.bound = t }

func (p *MemoryPass) DrawIndexed(vertices, indices Buffer, indexCount int) {
	p.Draws = append(p.Draws, Draw{Texture: p.bound, Vertices: vertices, Indices: indices, IndexCount: indexCount})
}

// Reset drops recorded draws.
func (p *MemoryPass) Reset() {
	p.bound = nil
	p.Draws = p.Draws[:0]
}
