package meshing

import (
	"encoding/binary"
	"math"
)

// Vertex is one corner of a block face as uploaded to the GPU.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	UV        [2]float32
	Layer     uint32  // texture array layer in the chunk atlas
	Occlusion float32 // 1 = fully lit
}

const (
	// VertexSize is the packed size of a Vertex in bytes.
	VertexSize = 40
	// IndexSize is the size of one index in bytes.
	IndexSize = 2

	// MaxVertices is the largest mesh addressable with 16-bit indices.
	MaxVertices = 1 << 16
	// MaxIndices matches MaxVertices at 4 vertices / 6 indices per face.
	MaxIndices = MaxVertices / 4 * 6
)

// AppendVertexBytes packs vertices little-endian, tightly, in field order.
func AppendVertexBytes(dst []byte, vs []Vertex) []byte {
	for i := range vs {
		v := &vs[i]
		for _, f := range v.Position {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.Normal {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.UV {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		dst = binary.LittleEndian.AppendUint32(dst, v.Layer)
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Occlusion))
	}
	return dst
}

// AppendIndexBytes packs indices little-endian.
func AppendIndexBytes(dst []byte, is []uint16) []byte {
	for _, i := range is {
		dst = binary.LittleEndian.AppendUint16(dst, i)
	}
	return dst
}
