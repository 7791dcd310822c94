package blocks

import (
	"math/rand"
	"testing"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(layer uint32) ([]meshing.Vertex, []uint16) {
	v := make([]meshing.Vertex, 4)
	for i := range v {
		v[i].Layer = layer
	}
	return v, []uint16{0, 1, 2, 2, 3, 0}
}

func newAtlas(dev gpu.Device) *texture.ChunkAtlas {
	return texture.BuildChunkAtlas(dev, texture.NewLoader("", 1), "test", []string{"stone"})
}

func newManager(initial int) (*MeshManager, *gpu.MemoryDevice) {
	dev := gpu.NewMemoryDevice()
	return NewMeshManager(dev, NewBufferPool(dev, initial)), dev
}

func held(m *MeshManager) int { return m.Len() }

func TestBufferPoolAcquireRelease(t *testing.T) {
	dev := gpu.NewMemoryDevice()
	p := NewBufferPool(dev, 2)
	assert.Equal(t, 2, p.Allocated())
	assert.Equal(t, 2, p.Free())
	assert.Equal(t, 4, dev.BufferCount())

	a, b, c := p.Acquire(), p.Acquire(), p.Acquire()
	assert.Equal(t, 3, p.Allocated())
	assert.Equal(t, 0, p.Free())
	assert.Equal(t, meshing.MaxVertices*meshing.VertexSize, c.Vertices.Size())
	assert.Equal(t, meshing.MaxIndices*meshing.IndexSize, c.Indices.Size())

	p.Release(a)
	p.Release(b)
	assert.Same(t, b, p.Acquire())
	assert.Equal(t, 3, p.Allocated())
}

func TestUpdateMeshReusesBuffers(t *testing.T) {
	m, dev := newManager(1)
	pos := world.ChunkCoord{X: 1}

	v, i := quad(0)
	first := newAtlas(dev)
	require.NoError(t, m.UpdateMesh(pos, 1, v, i, first))
	mesh, ok := m.Mesh(pos)
	require.True(t, ok)
	buffers := mesh.Buffers
	assert.Equal(t, 6, mesh.IndexCount)

	second := newAtlas(dev)
	v, i = quad(3)
	require.NoError(t, m.UpdateMesh(pos, 2, append(v, v...), append(i, i...), second))
	mesh, _ = m.Mesh(pos)
	assert.Same(t, buffers, mesh.Buffers)
	assert.Equal(t, 12, mesh.IndexCount)
	assert.Same(t, second, mesh.Atlas)
	assert.Equal(t, 1, m.Pool().Allocated())
	assert.Equal(t, 1, dev.ReleasedTextures(), "replaced atlas is released")

	data := dev.Bytes(mesh.Buffers.Vertices)
	assert.Equal(t, meshing.AppendVertexBytes(nil, []meshing.Vertex{{Layer: 3}}), data[:meshing.VertexSize])
}

func TestEmptyUpdateRemovesMesh(t *testing.T) {
	m, dev := newManager(1)
	pos := world.ChunkCoord{}
	v, i := quad(0)
	require.NoError(t, m.UpdateMesh(pos, 1, v, i, newAtlas(dev)))

	require.NoError(t, m.UpdateMesh(pos, 2, nil, nil, nil))
	_, ok := m.Mesh(pos)
	assert.False(t, ok, "empty geometry leaves no entry")
	assert.Equal(t, 1, m.Pool().Free())
	assert.Equal(t, 0, dev.LiveTextures())
	assert.False(t, m.RemoveMesh(pos))
}

func TestUpdateMeshRejectsOversizedMesh(t *testing.T) {
	m, _ := newManager(0)
	err := m.UpdateMesh(world.ChunkCoord{}, 1, make([]meshing.Vertex, meshing.MaxVertices+1), nil, nil)
	assert.ErrorIs(t, err, meshing.ErrVertexOverflow)
	assert.Equal(t, 0, m.Len())
}

func TestUpdateMeshRejectsMissingAtlas(t *testing.T) {
	m, _ := newManager(1)
	v, i := quad(0)
	err := m.UpdateMesh(world.ChunkCoord{}, 1, v, i, nil)
	assert.ErrorIs(t, err, ErrMissingAtlas)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 1, m.Pool().Free(), "no pair taken for a rejected mesh")

	// the result path counts it as failed and draws nothing
	m.Track(world.ChunkCoord{}, 0)
	r := meshing.MeshResult{Coord: world.ChunkCoord{}, Generation: 1, Vertices: v, Indices: i}
	assert.Equal(t, metrics.OutcomeFailed, m.ApplyResult(r))
	pass := &gpu.MemoryPass{}
	drawn, _ := m.Render(pass, lookingDownZ())
	assert.Equal(t, 0, drawn)
}

func TestPoolConservation(t *testing.T) {
	m, dev := newManager(4)
	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 500; step++ {
		pos := world.ChunkCoord{X: rng.Intn(6), Z: rng.Intn(6)}
		if rng.Intn(3) == 0 {
			m.RemoveMesh(pos)
		} else {
			v, i := quad(0)
			require.NoError(t, m.UpdateMesh(pos, uint64(step), v, i, newAtlas(dev)))
		}
		if got := held(m) + m.Pool().Free(); got != m.Pool().Allocated() {
			t.Fatalf("step %d: held %d + free %d != allocated %d", step, held(m), m.Pool().Free(), m.Pool().Allocated())
		}
	}
	assert.Equal(t, m.Len(), dev.LiveTextures(), "one live atlas per active mesh")
}

func result(pos world.ChunkCoord, gen uint64, layer uint32, atlas *texture.ChunkAtlas) meshing.MeshResult {
	v, i := quad(layer)
	return meshing.MeshResult{Coord: pos, Generation: gen, Vertices: v, Indices: i, Atlas: atlas}
}

func TestApplyResultLastGeneratedWins(t *testing.T) {
	pos := world.ChunkCoord{Z: -4}
	for _, order := range [][]uint64{{5, 6}, {6, 5}} {
		m, dev := newManager(1)
		m.Track(pos, 0)

		outcomes := []string{}
		for _, gen := range order {
			outcomes = append(outcomes, m.ApplyResult(result(pos, gen, uint32(gen), newAtlas(dev))))
		}
		mesh, ok := m.Mesh(pos)
		require.True(t, ok)
		assert.Equal(t, uint64(6), mesh.Generation, "order %v", order)

		vb := dev.Bytes(mesh.Buffers.Vertices)
		assert.Equal(t, meshing.AppendVertexBytes(nil, []meshing.Vertex{{Layer: 6}}), vb[:meshing.VertexSize])
		assert.Equal(t, 1, dev.LiveTextures(), "losing atlas released")
		if order[0] == 6 {
			assert.Equal(t, []string{metrics.OutcomeApplied, metrics.OutcomeStale}, outcomes)
		}
	}
}

func TestApplyResultDropsUntrackedAndFailed(t *testing.T) {
	m, dev := newManager(1)
	pos := world.ChunkCoord{X: 9}

	assert.Equal(t, metrics.OutcomeStale, m.ApplyResult(result(pos, 1, 0, newAtlas(dev))))
	assert.Equal(t, 0, m.Len())

	m.Track(pos, 10)
	assert.Equal(t, metrics.OutcomeStale, m.ApplyResult(result(pos, 10, 0, newAtlas(dev))), "at floor")

	failed := result(pos, 11, 0, nil)
	failed.Err = meshing.ErrVertexOverflow
	assert.Equal(t, metrics.OutcomeFailed, m.ApplyResult(failed))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, dev.LiveTextures())

	assert.Equal(t, metrics.OutcomeApplied, m.ApplyResult(result(pos, 12, 0, newAtlas(dev))))
	assert.Equal(t, metrics.OutcomeRemoved, m.ApplyResult(meshing.MeshResult{Coord: pos, Generation: 13}))
	assert.Equal(t, 0, m.Len())

	m.Track(pos, 13)
	m.ApplyResult(result(pos, 14, 0, newAtlas(dev)))
	m.Forget(pos)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, metrics.OutcomeStale, m.ApplyResult(result(pos, 15, 0, newAtlas(dev))))
	assert.Equal(t, 0, dev.LiveTextures())
}

type fixedCamera struct{ vp mgl32.Mat4 }

func (c fixedCamera) ViewProjection() mgl32.Mat4 { return c.vp }

func lookingDownZ() fixedCamera {
	proj := mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 500)
	view := mgl32.LookAtV(mgl32.Vec3{8, 80, 8}, mgl32.Vec3{8, 80, -100}, mgl32.Vec3{0, 1, 0})
	return fixedCamera{vp: proj.Mul4(view)}
}

func TestRenderCullsChunksOutsideFrustum(t *testing.T) {
	m, dev := newManager(3)
	front := world.ChunkCoord{Z: -3}
	behind := world.ChunkCoord{Z: 4}
	here := world.ChunkCoord{}
	for _, pos := range []world.ChunkCoord{front, behind, here} {
		v, i := quad(0)
		require.NoError(t, m.UpdateMesh(pos, 1, v, i, newAtlas(dev)))
	}

	var pass gpu.MemoryPass
	drawn, culled := m.Render(&pass, lookingDownZ())
	assert.Equal(t, 2, drawn)
	assert.Equal(t, 1, culled)
	require.Len(t, pass.Draws, 2)

	behindMesh, _ := m.Mesh(behind)
	for _, d := range pass.Draws {
		assert.NotSame(t, behindMesh.Buffers.Vertices, d.Vertices)
		assert.Equal(t, 6, d.IndexCount)
		assert.NotNil(t, d.Texture)
	}
}

func TestFrustumPlanesSeparateFrontAndBack(t *testing.T) {
	planes := extractFrustumPlanes(lookingDownZ().vp)
	inside := mgl32.Vec3{8, 80, -20}
	assert.True(t, aabbIntersectsFrustumPlanes(inside, inside, planes))
	outside := mgl32.Vec3{8, 80, 30}
	assert.False(t, aabbIntersectsFrustumPlanes(outside, outside, planes))
}
