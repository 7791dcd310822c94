package world

// AdjacentChunks holds the horizontal neighbors of a chunk. A nil entry
// means the neighbor is not loaded.
type AdjacentChunks struct {
	North, South, East, West *Chunk
}

// Get returns the neighbor across a horizontal face, or nil.
func (a AdjacentChunks) Get(f BlockFace) *Chunk {
	switch f {
	case FaceNorth:
		return a.North
	case FaceSouth:
		return a.South
	case FaceEast:
		return a.East
	case FaceWest:
		return a.West
	}
	return nil
}

// Set stores a neighbor for a horizontal face. Vertical faces are ignored.
func (a *AdjacentChunks) Set(f BlockFace, c *Chunk) {
	switch f {
	case FaceNorth:
		a.North = c
	case FaceSouth:
		a.South = c
	case FaceEast:
		a.East = c
	case FaceWest:
		a.West = c
	}
}
