package world

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth BlockFace = iota // -Z
	FaceSouth                  // +Z
	FaceEast                   // +X
	FaceWest                   // -X
	FaceTop                    // +Y
	FaceBottom                 // -Y
)

// AllFaces lists every face in mesh emission order.
var AllFaces = [6]BlockFace{FaceTop, FaceBottom, FaceNorth, FaceSouth, FaceEast, FaceWest}

// Offset returns the unit step from a cell to the neighbor across this face.
func (f BlockFace) Offset() (dx, dy, dz int) {
	switch f {
	case FaceNorth:
		return 0, 0, -1
	case FaceSouth:
		return 0, 0, 1
	case FaceEast:
		return 1, 0, 0
	case FaceWest:
		return -1, 0, 0
	case FaceTop:
		return 0, 1, 0
	case FaceBottom:
		return 0, -1, 0
	}
	return 0, 0, 0
}

func (f BlockFace) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	}
	return "unknown"
}

// FaceTextures names the texture used on each face of a block.
type FaceTextures struct {
	Top, Bottom, North, South, East, West string
}

// Uniform returns a FaceTextures using name on all six faces.
func Uniform(name string) FaceTextures {
	return FaceTextures{Top: name, Bottom: name, North: name, South: name, East: name, West: name}
}

// Sided returns textures for a block with distinct top, bottom and side faces.
func Sided(top, side, bottom string) FaceTextures {
	return FaceTextures{Top: top, Bottom: bottom, North: side, South: side, East: side, West: side}
}

// Face returns the texture name for a face.
func (t FaceTextures) Face(f BlockFace) string {
	switch f {
	case FaceNorth:
		return t.North
	case FaceSouth:
		return t.South
	case FaceEast:
		return t.East
	case FaceWest:
		return t.West
	case FaceTop:
		return t.Top
	case FaceBottom:
		return t.Bottom
	}
	return ""
}

// Names returns the six face texture names, in AllFaces order.
func (t FaceTextures) Names() [6]string {
	return [6]string{t.Top, t.Bottom, t.North, t.South, t.East, t.West}
}

// BlockType is a solid block kind. Values are immutable once built; a nil
// *BlockType in a chunk means air.
type BlockType struct {
	id       string
	textures FaceTextures
}

// NewBlockType creates a block type with the given identifier and face textures.
func NewBlockType(id string, textures FaceTextures) *BlockType {
	return &BlockType{id: id, textures: textures}
}

// ID returns the block identifier.
func (b *BlockType) ID() string { return b.id }

// Textures returns the per-face texture names.
func (b *BlockType) Textures() FaceTextures { return b.textures }

// Equal compares two block types by value. Two nil blocks (air) are equal.
func (b *BlockType) Equal(o *BlockType) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.id == o.id && b.textures == o.textures
}
