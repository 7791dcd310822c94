package blocks

import (
	"errors"
	"fmt"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

// ErrMissingAtlas is returned by UpdateMesh for geometry without a texture atlas.
var ErrMissingAtlas = errors.New("chunk mesh has no texture atlas")

// MeshManager owns the active mesh map and applies generator output to GPU
// buffers. All methods run on the render goroutine.
type MeshManager struct {
	device gpu.Device
	pool   *BufferPool
	meshes map[world.ChunkCoord]*ActiveMesh

	// applied holds, per tracked chunk, the newest generation whose result
	// has been applied (or the floor set by Track). Results at or below it
	// are stale.
	applied map[world.ChunkCoord]uint64

	vertexScratch []byte
	indexScratch  []byte
}

// NewMeshManager creates an empty manager drawing buffers from pool.
func NewMeshManager(device gpu.Device, pool *BufferPool) *MeshManager {
	return &MeshManager{
		device:  device,
		pool:    pool,
		meshes:  make(map[world.ChunkCoord]*ActiveMesh),
		applied: make(map[world.ChunkCoord]uint64),
	}
}

// UpdateMesh uploads a chunk's geometry and makes it the chunk's active
// mesh. An existing entry keeps its buffers; otherwise a pair is taken from
// the pool. Empty vertices remove the mesh instead. The previous atlas, if
// any, is released.
func (m *MeshManager) UpdateMesh(pos world.ChunkCoord, generation uint64, vertices []meshing.Vertex, indices []uint16, atlas *texture.ChunkAtlas) error {
	if len(vertices) == 0 {
		m.RemoveMesh(pos)
		if atlas != nil {
			m.device.ReleaseTexture(atlas.Texture)
		}
		return nil
	}
	if len(vertices) > meshing.MaxVertices || len(indices) > meshing.MaxIndices {
		return fmt.Errorf("chunk %v: %d vertices / %d indices: %w", pos, len(vertices), len(indices), meshing.ErrVertexOverflow)
	}
	if atlas == nil {
		return fmt.Errorf("chunk %v: %w", pos, ErrMissingAtlas)
	}

	var buffers *BufferPair
	var oldAtlas *texture.ChunkAtlas
	if existing, ok := m.meshes[pos]; ok {
		buffers = existing.Buffers
		oldAtlas = existing.Atlas
	} else {
		buffers = m.pool.Acquire()
		logger.Log.Debug("chunk mesh buffers acquired",
			zap.Int("chunkX", pos.X),
			zap.Int("chunkZ", pos.Z),
			zap.Int("buffer", buffers.ID()))
	}

	m.vertexScratch = meshing.AppendVertexBytes(m.vertexScratch[:0], vertices)
	m.indexScratch = meshing.AppendIndexBytes(m.indexScratch[:0], indices)
	m.device.WriteBuffer(buffers.Vertices, 0, m.vertexScratch)
	m.device.WriteBuffer(buffers.Indices, 0, m.indexScratch)

	m.meshes[pos] = &ActiveMesh{
		Buffers:    buffers,
		IndexCount: len(indices),
		Atlas:      atlas,
		Generation: generation,
	}
	if oldAtlas != nil && oldAtlas != atlas {
		m.device.ReleaseTexture(oldAtlas.Texture)
	}
	metrics.ActiveMeshes.Set(float64(len(m.meshes)))
	return nil
}

// RemoveMesh drops a chunk's active mesh, returning its buffers to the pool
// and releasing its atlas. Returns false when the chunk had no mesh.
func (m *MeshManager) RemoveMesh(pos world.ChunkCoord) bool {
	mesh, ok := m.meshes[pos]
	if !ok {
		return false
	}
	delete(m.meshes, pos)
	m.pool.Release(mesh.Buffers)
	if mesh.Atlas != nil {
		m.device.ReleaseTexture(mesh.Atlas.Texture)
	}
	metrics.ActiveMeshes.Set(float64(len(m.meshes)))
	return true
}

// Track starts accepting results for pos whose generation is above floor.
func (m *MeshManager) Track(pos world.ChunkCoord, floor uint64) {
	m.applied[pos] = floor
}

// Forget removes pos's mesh and stops accepting results for it.
func (m *MeshManager) Forget(pos world.ChunkCoord) {
	m.RemoveMesh(pos)
	delete(m.applied, pos)
}

// ApplyResult installs a worker result and returns the outcome it was
// counted under. Failed results and results for untracked chunks or older
// generations are discarded.
func (m *MeshManager) ApplyResult(r meshing.MeshResult) string {
	outcome := m.applyResult(r)
	metrics.ResultsApplied.WithLabelValues(outcome).Inc()
	return outcome
}

func (m *MeshManager) applyResult(r meshing.MeshResult) string {
	discard := func() {
		if r.Atlas != nil {
			m.device.ReleaseTexture(r.Atlas.Texture)
		}
	}

	if r.Err != nil {
		discard()
		return metrics.OutcomeFailed
	}
	last, tracked := m.applied[r.Coord]
	if !tracked || r.Generation <= last {
		logger.Log.Debug("dropping stale mesh result",
			zap.Int("chunkX", r.Coord.X),
			zap.Int("chunkZ", r.Coord.Z),
			zap.Uint64("generation", r.Generation),
			zap.Uint64("applied", last),
			zap.Bool("tracked", tracked))
		discard()
		return metrics.OutcomeStale
	}
	m.applied[r.Coord] = r.Generation

	if r.Empty() {
		m.RemoveMesh(r.Coord)
		discard()
		return metrics.OutcomeRemoved
	}
	if err := m.UpdateMesh(r.Coord, r.Generation, r.Vertices, r.Indices, r.Atlas); err != nil {
		logger.Log.Error("mesh upload failed", zap.Error(err))
		discard()
		return metrics.OutcomeFailed
	}
	return metrics.OutcomeApplied
}

// Mesh returns the active mesh of pos.
func (m *MeshManager) Mesh(pos world.ChunkCoord) (*ActiveMesh, bool) {
	mesh, ok := m.meshes[pos]
	return mesh, ok
}

// Len returns the number of active meshes.
func (m *MeshManager) Len() int { return len(m.meshes) }

// Pool returns the buffer pool backing the meshes.
func (m *MeshManager) Pool() *BufferPool { return m.pool }

// Clear removes every mesh and stops tracking every chunk.
func (m *MeshManager) Clear() {
	for pos := range m.meshes {
		m.RemoveMesh(pos)
	}
	clear(m.applied)
}
