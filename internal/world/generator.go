package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// TerrainGenerator produces the initial contents of a newly loaded chunk.
type TerrainGenerator interface {
	Fill(coord ChunkCoord) *Chunk
}

// TerrainBlocks are the block types a height-map generator places.
type TerrainBlocks struct {
	Stone, Dirt, Grass *BlockType
}

// PerlinGenerator fills chunks from a 2D Perlin height map: stone deep
// down, a few layers of dirt, grass on top.
type PerlinGenerator struct {
	noise      *perlin.Perlin
	blocks     TerrainBlocks
	scale      float64
	baseHeight int
	amp        float64
	dirtDepth  int
}

// NewPerlinGenerator creates a generator for the given seed.
func NewPerlinGenerator(seed int64, blocks TerrainBlocks, baseHeight int, amplitude float64) *PerlinGenerator {
	return &PerlinGenerator{
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		blocks:     blocks,
		scale:      0.01,
		baseHeight: baseHeight,
		amp:        amplitude,
		dirtDepth:  4,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *PerlinGenerator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	h := int(math.Floor(float64(g.baseHeight) + n*g.amp))
	if h < 0 {
		return 0
	}
	if h >= ChunkSizeY {
		return ChunkSizeY - 1
	}
	return h
}

// Fill implements TerrainGenerator.
func (g *PerlinGenerator) Fill(coord ChunkCoord) *Chunk {
	c := NewChunk(coord)
	ox, oy, oz := coord.Origin()

	var heights [ChunkSizeX][ChunkSizeZ]int
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			heights[lx][lz] = g.HeightAt(ox+lx, oz+lz)
		}
	}

	c.Fill(func(x, y, z int) *BlockType {
		h := heights[x][z]
		wy := oy + y
		switch {
		case wy < h-g.dirtDepth:
			return g.blocks.Stone
		case wy < h:
			return g.blocks.Dirt
		case wy == h:
			return g.blocks.Grass
		}
		return nil
	})
	return c
}

// FlatGenerator fills every chunk with solid ground up to a fixed height.
type FlatGenerator struct {
	Height int
	Ground *BlockType
	Top    *BlockType
}

// Fill implements TerrainGenerator.
func (g FlatGenerator) Fill(coord ChunkCoord) *Chunk {
	c := NewChunk(coord)
	_, oy, _ := coord.Origin()
	c.Fill(func(_, y, _ int) *BlockType {
		wy := oy + y
		switch {
		case wy < g.Height:
			return g.Ground
		case wy == g.Height && g.Top != nil:
			return g.Top
		}
		return nil
	})
	return c
}
