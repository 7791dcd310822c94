package blocks

import (
	"mini-voxel/internal/gpu"
	"mini-voxel/internal/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// BufferPair is one vertex buffer and one index buffer sized for the
// largest possible chunk mesh.
type BufferPair struct {
	Vertices gpu.Buffer
	Indices  gpu.Buffer
	id       int
}

// ID identifies the pair within its pool.
func (b *BufferPair) ID() int { return b.id }

// ActiveMesh is the drawable state of one chunk.
type ActiveMesh struct {
	Buffers    *BufferPair
	IndexCount int
	Atlas      *texture.ChunkAtlas
	Generation uint64
}

// Camera provides the combined projection*view matrix used for culling.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

type plane struct {
	a, b, c, d float32
}
