package world

import "sync"

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// Chunk represents a 16x256x16 column of the world.
//
// The owning goroutine mutates a chunk under its write lock; mesh workers
// read it concurrently through RLock/RUnlock or View.
type Chunk struct {
	Coord ChunkCoord

	mu     sync.RWMutex
	blocks []*BlockType
	solid  int
	dirty  bool
}

// NewChunk creates an empty (all air) chunk at the given coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{
		Coord:  coord,
		blocks: make([]*BlockType, ChunkVolume),
		dirty:  true,
	}
}

// Index converts local coordinates to the flat block index.
func Index(x, y, z int) int {
	return x*(ChunkSizeY*ChunkSizeZ) + y*ChunkSizeZ + z
}

// InBounds reports whether local coordinates lie inside a chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// GetBlock returns the block at local coordinates, or nil (air) when out of bounds.
func (c *Chunk) GetBlock(x, y, z int) *BlockType {
	if !InBounds(x, y, z) {
		return nil
	}
	c.mu.RLock()
	b := c.blocks[Index(x, y, z)]
	c.mu.RUnlock()
	return b
}

// SetBlock stores a block (nil for air) at local coordinates.
// Out-of-bounds writes are ignored. Returns whether the cell changed.
func (c *Chunk) SetBlock(x, y, z int, b *BlockType) bool {
	if !InBounds(x, y, z) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(Index(x, y, z), b)
}

func (c *Chunk) setLocked(idx int, b *BlockType) bool {
	old := c.blocks[idx]
	if old.Equal(b) {
		return false
	}
	if old == nil {
		c.solid++
	} else if b == nil {
		c.solid--
	}
	c.blocks[idx] = b
	c.dirty = true
	return true
}

// Fill applies fn to every cell under a single write lock. fn returns the
// block to store; it is used by terrain generators to populate a chunk.
func (c *Chunk) Fill(fn func(x, y, z int) *BlockType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for x := range ChunkSizeX {
		for y := range ChunkSizeY {
			for z := range ChunkSizeZ {
				c.setLocked(Index(x, y, z), fn(x, y, z))
			}
		}
	}
}

// View runs fn with read access to the raw block array. fn must not retain
// or modify the slice.
func (c *Chunk) View(fn func(blocks []*BlockType)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.blocks)
}

// SolidCount returns the number of non-air cells.
func (c *Chunk) SolidCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solid
}

// IsEmpty reports whether every cell is air.
func (c *Chunk) IsEmpty() bool {
	return c.SolidCount() == 0
}

// NeedsMeshUpdate reports whether the chunk changed since its last mesh dispatch.
func (c *Chunk) NeedsMeshUpdate() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// MarkDirty flags the chunk for remeshing.
func (c *Chunk) MarkDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// SetClean clears the remesh flag.
func (c *Chunk) SetClean() {
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}
