package meshing

import (
	"errors"
	"fmt"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"
)

// AOFactor is subtracted from a corner's light for each solid occluder.
const AOFactor = 0.35

var (
	// ErrVertexOverflow means the chunk needs more vertices than 16-bit indices address.
	ErrVertexOverflow = errors.New("mesh exceeds 16-bit vertex limit")
	// ErrMissingLayer means a face texture has no layer in the chunk atlas.
	ErrMissingLayer = errors.New("texture has no atlas layer")
)

// MeshData is the CPU-side output of mesh generation. Empty Vertices mean
// the chunk has nothing to draw; Atlas is nil in that case.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint16
	Atlas    *texture.ChunkAtlas
}

// Faces returns the number of emitted block faces.
func (m MeshData) Faces() int { return len(m.Vertices) / 4 }

// Mesher turns a chunk and its loaded neighbors into mesh data.
type Mesher interface {
	Generate(chunk *world.Chunk, adj world.AdjacentChunks) (MeshData, error)
}

// Generator culls hidden faces, computes per-vertex ambient occlusion and
// builds the chunk's texture atlas. It is safe for concurrent use.
type Generator struct {
	device gpu.Device
	loader *texture.Loader
}

// NewGenerator creates a generator that builds atlases on device from loader's textures.
func NewGenerator(device gpu.Device, loader *texture.Loader) *Generator {
	return &Generator{device: device, loader: loader}
}

// Generate implements Mesher. It only reads chunk state, under read locks.
func (g *Generator) Generate(chunk *world.Chunk, adj world.AdjacentChunks) (MeshData, error) {
	if chunk.IsEmpty() {
		return MeshData{}, nil
	}
	cache := newBlockCache(chunk, adj)
	defer cache.release()

	names := texture.ScanTextureNames(cache.distinctBlocks())
	if len(names) == 0 {
		return MeshData{}, nil
	}

	c := chunk.Coord
	label := fmt.Sprintf("chunk-atlas(%d,%d,%d)", c.X, c.Y, c.Z)
	atlas := texture.BuildChunkAtlas(g.device, g.loader, label, names)

	verts, idx, err := buildMesh(cache, c, atlas.Layer)
	if err != nil {
		g.device.ReleaseTexture(atlas.Texture)
		return MeshData{}, fmt.Errorf("chunk %v: %w", c, err)
	}
	if len(verts) == 0 {
		// Fully enclosed: blocks exist but no face is visible.
		g.device.ReleaseTexture(atlas.Texture)
		return MeshData{}, nil
	}
	return MeshData{Vertices: verts, Indices: idx, Atlas: atlas}, nil
}

// buildMesh emits every visible face in the cache's interior. layerOf
// resolves texture names to atlas layers.
func buildMesh(cache *blockCache, coord world.ChunkCoord, layerOf func(string) (uint32, bool)) ([]Vertex, []uint16, error) {
	ox, oy, oz := coord.Origin()
	var verts []Vertex
	var idx []uint16

	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				b := cache.at(x, y, z)
				if b == nil {
					continue
				}
				textures := b.Textures()
				for _, f := range world.AllFaces {
					if !faceVisible(cache, x, y, z, f) {
						continue
					}
					name := textures.Face(f)
					layer, ok := layerOf(name)
					if !ok {
						err := fmt.Errorf("%w: %q on %s face of %s", ErrMissingLayer, name, f, b.ID())
						assertContract(err)
						return nil, nil, err
					}
					if len(verts)+4 > MaxVertices {
						return nil, nil, ErrVertexOverflow
					}

					base := uint16(len(verts))
					def := &faceDefs[f]
					ao := cornerOcclusion(cache, x, y, z, def)
					normal := [3]float32{float32(def.normal[0]), float32(def.normal[1]), float32(def.normal[2])}
					for i, corner := range def.corners {
						verts = append(verts, Vertex{
							Position: [3]float32{
								float32(ox+x) + corner[0],
								float32(oy+y) + corner[1],
								float32(oz+z) + corner[2],
							},
							Normal:    normal,
							UV:        faceQuadUVs[i],
							Layer:     layer,
							Occlusion: ao[i],
						})
					}
					for _, i := range faceQuadIndices {
						idx = append(idx, base+i)
					}
				}
			}
		}
	}
	return verts, idx, nil
}

// faceVisible applies the culling rule: a face is drawn when the cell in
// front of it is air. Cells of unloaded neighbors and cells above the world
// read as air. Bottom faces on the world floor are never drawn.
func faceVisible(cache *blockCache, x, y, z int, f world.BlockFace) bool {
	if f == world.FaceBottom && y == 0 {
		return false
	}
	dx, dy, dz := f.Offset()
	return !cache.solid(x+dx, y+dy, z+dz)
}

// cornerOcclusion returns the light factor of each face corner. For every
// corner the two edge cells and the diagonal cell beside it, in the layer
// in front of the face, are tested; each solid one darkens the corner.
func cornerOcclusion(cache *blockCache, x, y, z int, def *faceDef) [4]float32 {
	fx, fy, fz := x+def.normal[0], y+def.normal[1], z+def.normal[2]
	var out [4]float32
	for i, s := range cornerSigns {
		ux, uy, uz := s[0]*def.u[0], s[0]*def.u[1], s[0]*def.u[2]
		vx, vy, vz := s[1]*def.v[0], s[1]*def.v[1], s[1]*def.v[2]

		n := 0
		if cache.solid(fx+ux, fy+uy, fz+uz) {
			n++
		}
		if cache.solid(fx+vx, fy+vy, fz+vz) {
			n++
		}
		if cache.solid(fx+ux+vx, fy+uy+vy, fz+uz+vz) {
			n++
		}
		out[i] = occlusionValue(n)
	}
	return out
}

// occlusionValue maps an occluder count to a light factor in [0, 1].
func occlusionValue(occluders int) float32 {
	v := 1 - AOFactor*float32(occluders)
	if v < 0 {
		return 0
	}
	return v
}
