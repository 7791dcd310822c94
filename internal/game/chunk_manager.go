package game

import (
	"mini-voxel/internal/config"
	"mini-voxel/internal/gpu"
	"mini-voxel/internal/graphics/renderables/blocks"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

// ChunkManager loads and unloads chunks around the viewer, routes block
// edits into the update queue and feeds the mesh worker pool. Every method
// must be called from the frame goroutine.
type ChunkManager struct {
	store    *world.ChunkStore
	terrain  world.TerrainGenerator
	registry *registry.Registry
	pool     *meshing.WorkerPool
	meshes   *blocks.MeshManager
	queue    updateQueue
	inflight int

	// generation is handed out to mesh tasks and never decreases.
	generation uint64

	// visible is the region the loaded set last matched.
	visible struct {
		center   world.ChunkCoord
		radius   int
		modCount uint64
		valid    bool
	}
}

// NewChunkManager wires the chunk table, worker pool and mesh manager.
func NewChunkManager(cfg config.MeshingConfig, device gpu.Device, reg *registry.Registry, loader *texture.Loader, terrain world.TerrainGenerator) *ChunkManager {
	if fallbacks := loader.Preload(reg.TexturePaths()); fallbacks > 0 {
		logger.Log.Warn("block textures missing, using fallback colour",
			zap.Int("missing", fallbacks),
			zap.Strings("textures", reg.TexturePaths()))
	}
	return newChunkManager(cfg, device, reg, terrain, meshing.NewGenerator(device, loader))
}

func newChunkManager(cfg config.MeshingConfig, device gpu.Device, reg *registry.Registry, terrain world.TerrainGenerator, mesher meshing.Mesher) *ChunkManager {
	return &ChunkManager{
		store:    world.NewChunkStore(),
		terrain:  terrain,
		registry: reg,
		pool:     meshing.NewWorkerPool(cfg.Workers, cfg.TaskQueue, cfg.ResultQueue, mesher),
		meshes:   blocks.NewMeshManager(device, blocks.NewBufferPool(device, cfg.InitialBuffers)),
	}
}

// Registry returns the block registry chunks are built from.
func (m *ChunkManager) Registry() *registry.Registry { return m.registry }

// Meshes exposes the chunk mesh manager.
func (m *ChunkManager) Meshes() *blocks.MeshManager { return m.meshes }

// UpdateVisibleChunks keeps exactly the chunks within render distance of
// the viewer loaded. New chunks are generated nearest first.
func (m *ChunkManager) UpdateVisibleChunks(viewer [3]int) {
	defer profiling.Track("game.UpdateVisibleChunks")()

	center := world.ChunkCoordFromBlock(viewer[0], 0, viewer[2])
	radius := config.GetRenderDistance()
	v := &m.visible
	if v.valid && v.center == center && v.radius == radius && v.modCount == m.store.GetModCount() {
		return
	}

	for _, pos := range m.store.CoordsOutsideXZ(center.X, center.Z, radius) {
		m.unloadChunk(pos)
	}
	forEachRing(center.X, center.Z, radius, func(x, z int) {
		m.loadChunk(world.ChunkCoord{X: x, Z: z})
	})
	metrics.ChunksLoaded.Set(float64(m.store.Len()))
	v.center, v.radius, v.modCount, v.valid = center, radius, m.store.GetModCount(), true
}

func (m *ChunkManager) loadChunk(pos world.ChunkCoord) {
	if m.store.HasChunk(pos) {
		return
	}
	chunk := m.terrain.Fill(pos)
	if !m.store.AddChunk(chunk) {
		return
	}
	// Results from tasks issued before this load belong to an earlier
	// incarnation of the chunk.
	m.meshes.Track(pos, m.generation)
	m.UpdateChunkByPos(pos)
}

func (m *ChunkManager) unloadChunk(pos world.ChunkCoord) {
	if m.store.RemoveChunk(pos) == nil {
		return
	}
	m.meshes.Forget(pos)
	metrics.ChunksUnloaded.Inc()
}

// forEachRing visits the square of the given radius ring by ring from the
// centre outwards.
func forEachRing(cx, cz, radius int, fn func(x, z int)) {
	fn(cx, cz)
	for r := 1; r <= radius; r++ {
		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r
		for x := x0; x <= x1; x++ {
			fn(x, z0)
			fn(x, z1)
		}
		for z := z0 + 1; z <= z1-1; z++ {
			fn(x0, z)
			fn(x1, z)
		}
	}
}

// UpdateChunkByPos marks a chunk and its loaded horizontal neighbors dirty
// and queues them for meshing. Unloaded positions are ignored.
func (m *ChunkManager) UpdateChunkByPos(pos world.ChunkCoord) {
	if !m.touch(pos) {
		return
	}
	for _, f := range world.HorizontalFaces {
		m.touch(pos.Neighbor(f))
	}
}

func (m *ChunkManager) touch(pos world.ChunkCoord) bool {
	chunk := m.store.GetChunk(pos)
	if chunk == nil {
		return false
	}
	chunk.MarkDirty()
	m.queue.pushBack(pos)
	return true
}

// SetBlock stores block (nil for air) at a world position. It returns false
// when the position is outside the loaded world or already holds block.
// Edits on a chunk border also requeue the neighbor across that border.
func (m *ChunkManager) SetBlock(pos [3]int, block *world.BlockType) bool {
	if pos[1] < 0 || pos[1] >= world.ChunkSizeY {
		return false
	}
	coord := world.ChunkCoordFromBlock(pos[0], pos[1], pos[2])
	chunk := m.store.GetChunk(coord)
	if chunk == nil {
		return false
	}
	lx, ly, lz := world.LocalFromBlock(pos[0], pos[1], pos[2])
	if !chunk.SetBlock(lx, ly, lz, block) {
		return false
	}
	m.queue.pushBack(coord)

	switch lx {
	case 0:
		m.touch(coord.Neighbor(world.FaceWest))
	case world.ChunkSizeX - 1:
		m.touch(coord.Neighbor(world.FaceEast))
	}
	switch lz {
	case 0:
		m.touch(coord.Neighbor(world.FaceNorth))
	case world.ChunkSizeZ - 1:
		m.touch(coord.Neighbor(world.FaceSouth))
	}
	return true
}

// BreakBlock replaces the block at pos with air.
func (m *ChunkManager) BreakBlock(pos [3]int) bool {
	return m.SetBlock(pos, nil)
}

// PlaceBlock puts block at pos if that cell is currently air.
func (m *ChunkManager) PlaceBlock(pos [3]int, block *world.BlockType) bool {
	if block == nil || !m.IsAir(pos[0], pos[1], pos[2]) {
		return false
	}
	return m.SetBlock(pos, block)
}

// BlockAt returns the block at a world position, nil for air or unloaded.
func (m *ChunkManager) BlockAt(pos [3]int) *world.BlockType {
	return m.store.Get(pos[0], pos[1], pos[2])
}

// IsAir reports whether the world block at x,y,z is empty or unloaded.
func (m *ChunkManager) IsAir(x, y, z int) bool {
	return m.store.IsAir(x, y, z)
}

// ProcessMeshUpdates applies every finished mesh, then dispatches up to
// the per-frame task budget from the update queue. Neither step blocks.
func (m *ChunkManager) ProcessMeshUpdates() {
	defer profiling.Track("game.ProcessMeshUpdates")()

	for {
		r, ok := m.pool.TryResult()
		if !ok {
			break
		}
		m.inflight--
		m.meshes.ApplyResult(r)
	}

	budget := config.GetTasksPerFrame()
	for dispatched := 0; dispatched < budget; {
		pos, ok := m.queue.pop()
		if !ok {
			break
		}
		chunk := m.store.GetChunk(pos)
		if chunk == nil || !chunk.NeedsMeshUpdate() {
			// unloaded since it was queued, or a duplicate already dispatched
			continue
		}

		task := meshing.MeshTask{
			Coord:      pos,
			Generation: m.generation + 1,
			Chunk:      chunk,
			Neighbors:  m.store.Neighbors(pos),
		}
		if !m.pool.Submit(task) {
			m.queue.pushFront(pos)
			metrics.TasksDeferred.Inc()
			break
		}
		m.generation++
		m.inflight++
		chunk.SetClean()
		metrics.TasksDispatched.Inc()
		dispatched++
	}
	metrics.UpdateQueueDepth.Set(float64(m.queue.len()))
}

// Render draws the visible chunk meshes.
func (m *ChunkManager) Render(pass gpu.Pass, cam blocks.Camera) (drawn, culled int) {
	return m.meshes.Render(pass, cam)
}

// Close stops the workers and releases every mesh.
func (m *ChunkManager) Close() {
	m.pool.Shutdown()
	m.meshes.Clear()
	for {
		r, ok := m.pool.TryResult()
		if !ok {
			break
		}
		m.inflight--
		m.meshes.ApplyResult(r)
	}
}

// LoadedChunks returns the number of chunks in the chunk table.
func (m *ChunkManager) LoadedChunks() int { return m.store.Len() }

// PendingUpdates returns the number of queued positions.
func (m *ChunkManager) PendingUpdates() int { return m.queue.len() }

// InFlight returns the number of dispatched tasks whose result has not
// been drained yet.
func (m *ChunkManager) InFlight() int { return m.inflight }

// QueuedTasks returns the number of dispatched tasks no worker has picked up yet.
func (m *ChunkManager) QueuedTasks() int { return m.pool.QueueLength() }

// IsLoaded reports whether the chunk at pos is in the chunk table.
func (m *ChunkManager) IsLoaded(pos world.ChunkCoord) bool { return m.store.HasChunk(pos) }
