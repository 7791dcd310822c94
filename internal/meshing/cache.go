package meshing

import (
	"sync"

	"mini-voxel/internal/world"
)

// The block cache is the chunk plus a one-cell border on every side. The
// horizontal border comes from loaded neighbors; everything else stays nil,
// which reads as air for visibility and as "not occluding" for AO.
const (
	cacheX = world.ChunkSizeX + 2
	cacheY = world.ChunkSizeY + 2
	cacheZ = world.ChunkSizeZ + 2
)

type blockCache struct {
	cells []*world.BlockType
}

var cachePool = sync.Pool{
	New: func() any {
		return &blockCache{cells: make([]*world.BlockType, cacheX*cacheY*cacheZ)}
	},
}

func cacheIndex(x, y, z int) int {
	return (x+1)*(cacheY*cacheZ) + (y+1)*cacheZ + (z + 1)
}

// at reads chunk-local coordinates in [-1, size].
func (c *blockCache) at(x, y, z int) *world.BlockType {
	return c.cells[cacheIndex(x, y, z)]
}

func (c *blockCache) solid(x, y, z int) bool {
	return c.at(x, y, z) != nil
}

// newBlockCache snapshots chunk and the facing border of each loaded
// neighbor, each under that chunk's read lock.
func newBlockCache(chunk *world.Chunk, adj world.AdjacentChunks) *blockCache {
	c := cachePool.Get().(*blockCache)
	clear(c.cells)

	chunk.View(func(blocks []*world.BlockType) {
		for x := 0; x < world.ChunkSizeX; x++ {
			for y := 0; y < world.ChunkSizeY; y++ {
				src := world.Index(x, y, 0)
				dst := cacheIndex(x, y, 0)
				copy(c.cells[dst:dst+world.ChunkSizeZ], blocks[src:src+world.ChunkSizeZ])
			}
		}
	})

	if n := adj.North; n != nil {
		n.View(func(blocks []*world.BlockType) {
			for x := 0; x < world.ChunkSizeX; x++ {
				for y := 0; y < world.ChunkSizeY; y++ {
					c.cells[cacheIndex(x, y, -1)] = blocks[world.Index(x, y, world.ChunkSizeZ-1)]
				}
			}
		})
	}
	if s := adj.South; s != nil {
		s.View(func(blocks []*world.BlockType) {
			for x := 0; x < world.ChunkSizeX; x++ {
				for y := 0; y < world.ChunkSizeY; y++ {
					c.cells[cacheIndex(x, y, world.ChunkSizeZ)] = blocks[world.Index(x, y, 0)]
				}
			}
		})
	}
	if e := adj.East; e != nil {
		e.View(func(blocks []*world.BlockType) {
			for y := 0; y < world.ChunkSizeY; y++ {
				for z := 0; z < world.ChunkSizeZ; z++ {
					c.cells[cacheIndex(world.ChunkSizeX, y, z)] = blocks[world.Index(0, y, z)]
				}
			}
		})
	}
	if w := adj.West; w != nil {
		w.View(func(blocks []*world.BlockType) {
			for y := 0; y < world.ChunkSizeY; y++ {
				for z := 0; z < world.ChunkSizeZ; z++ {
					c.cells[cacheIndex(-1, y, z)] = blocks[world.Index(world.ChunkSizeX-1, y, z)]
				}
			}
		})
	}
	return c
}

func (c *blockCache) release() {
	cachePool.Put(c)
}

// distinctBlocks returns each block type present in the chunk itself once.
func (c *blockCache) distinctBlocks() []*world.BlockType {
	seen := make(map[*world.BlockType]struct{})
	var out []*world.BlockType
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			i := cacheIndex(x, y, 0)
			for _, b := range c.cells[i : i+world.ChunkSizeZ] {
				if b == nil {
					continue
				}
				if _, ok := seen[b]; !ok {
					seen[b] = struct{}{}
					out = append(out, b)
				}
			}
		}
	}
	return out
}
