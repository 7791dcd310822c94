package world

// ChunkCoord identifies a chunk in the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkCoordFromBlock returns the coordinate of the chunk holding the world block (x, y, z).
func ChunkCoordFromBlock(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, ChunkSizeX),
		Y: floorDiv(y, ChunkSizeY),
		Z: floorDiv(z, ChunkSizeZ),
	}
}

// LocalFromBlock converts a world block position to chunk-local coordinates.
func LocalFromBlock(x, y, z int) (lx, ly, lz int) {
	return mod(x, ChunkSizeX), mod(y, ChunkSizeY), mod(z, ChunkSizeZ)
}

// Neighbor returns the chunk coordinate adjacent across a horizontal face.
// Vertical faces return c unchanged since a chunk spans the full height.
func (c ChunkCoord) Neighbor(f BlockFace) ChunkCoord {
	switch f {
	case FaceNorth:
		return ChunkCoord{c.X, c.Y, c.Z - 1}
	case FaceSouth:
		return ChunkCoord{c.X, c.Y, c.Z + 1}
	case FaceEast:
		return ChunkCoord{c.X + 1, c.Y, c.Z}
	case FaceWest:
		return ChunkCoord{c.X - 1, c.Y, c.Z}
	}
	return c
}

// Origin returns the world position of the chunk's minimum corner.
func (c ChunkCoord) Origin() (x, y, z int) {
	return c.X * ChunkSizeX, c.Y * ChunkSizeY, c.Z * ChunkSizeZ
}

// HorizontalFaces are the four sides a chunk can have loaded neighbors on.
var HorizontalFaces = [4]BlockFace{FaceNorth, FaceSouth, FaceEast, FaceWest}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
