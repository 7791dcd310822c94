// Package gpu describes the graphics capabilities the mesh pipeline needs:
// fixed-size buffers, layered textures, and indexed draws.
//
// Device methods may be called from any goroutine. Texture creation in
// particular happens on mesh workers while the render loop draws.
package gpu

// BufferUsage says how a buffer will be bound.
type BufferUsage int

const (
	UsageVertex BufferUsage = iota
	UsageIndex
)

func (u BufferUsage) String() string {
	if u == UsageIndex {
		return "index"
	}
	return "vertex"
}

// Buffer is an opaque handle to device memory of a fixed size.
type Buffer interface {
	Label() string
	Usage() BufferUsage
	Size() int
}

// Texture is an opaque handle to a square RGBA8 texture array.
type Texture interface {
	Label() string
	Size() int
	Layers() int
}

// Device creates and fills GPU resources.
type Device interface {
	CreateBuffer(label string, usage BufferUsage, size int) Buffer
	WriteBuffer(b Buffer, offset int, data []byte)
	CreateTextureArray(label string, size, layers int) Texture
	// WriteTextureLayer uploads size*size*4 bytes of RGBA pixels into one layer.
	WriteTextureLayer(t Texture, layer int, rgba []byte)
	ReleaseTexture(t Texture)
}

// Pass records draw commands for one frame.
type Pass interface {
	BindTexture(t Texture)
	DrawIndexed(vertices, indices Buffer, indexCount int)
}
