package world

import (
	"sync"
)

// ChunkStore holds the loaded chunks, keyed by coordinate.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at coord, or nil when not loaded.
func (cs *ChunkStore) GetChunk(coord ChunkCoord) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// HasChunk checks if a chunk is loaded.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AddChunk inserts a chunk. An existing chunk at the same coordinate is kept
// and false is returned.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	return true
}

// RemoveChunk drops the chunk at coord and returns it, or nil if absent.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) *Chunk {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.chunks[coord]
	if !ok {
		return nil
	}
	delete(cs.chunks, coord)
	cs.modCount++
	return c
}

// Neighbors returns the loaded horizontal neighbors of coord.
func (cs *ChunkStore) Neighbors(coord ChunkCoord) AdjacentChunks {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var adj AdjacentChunks
	for _, f := range HorizontalFaces {
		adj.Set(f, cs.chunks[coord.Neighbor(f)])
	}
	return adj
}

// CoordsOutsideXZ returns loaded coordinates farther than radius (square,
// Chebyshev distance) from (cx, cz).
func (cs *ChunkStore) CoordsOutsideXZ(cx, cz, radius int) []ChunkCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var out []ChunkCoord
	for c := range cs.chunks {
		if abs(c.X-cx) > radius || abs(c.Z-cz) > radius {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// Get returns the block at world coordinates, nil when air or not loaded.
func (cs *ChunkStore) Get(x, y, z int) *BlockType {
	chunk := cs.GetChunk(ChunkCoordFromBlock(x, y, z))
	if chunk == nil {
		return nil
	}
	return chunk.GetBlock(LocalFromBlock(x, y, z))
}

// IsAir checks if the block at the specified world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
