package meshing

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestVertexPacking(t *testing.T) {
	v := Vertex{
		Position:  [3]float32{1, 2, 3},
		Normal:    [3]float32{0, -1, 0},
		UV:        [2]float32{1, 0},
		Layer:     7,
		Occlusion: 0.65,
	}
	buf := AppendVertexBytes(nil, []Vertex{v, v})
	if len(buf) != 2*VertexSize {
		t.Fatalf("got %d bytes, want %d", len(buf), 2*VertexSize)
	}

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if f(0) != 1 || f(8) != 3 || f(16) != -1 || f(24) != 1 {
		t.Fatalf("float fields misplaced: % x", buf[:VertexSize])
	}
	if got := binary.LittleEndian.Uint32(buf[32:]); got != 7 {
		t.Fatalf("layer = %d, want 7", got)
	}
	if f(36) != 0.65 {
		t.Fatalf("occlusion = %v, want 0.65", f(36))
	}
	if f(VertexSize) != 1 {
		t.Fatal("second vertex does not start at VertexSize")
	}
}

func TestIndexPacking(t *testing.T) {
	buf := AppendIndexBytes(nil, []uint16{1, 0xfffe})
	if len(buf) != 2*IndexSize {
		t.Fatalf("got %d bytes", len(buf))
	}
	if binary.LittleEndian.Uint16(buf[2:]) != 0xfffe {
		t.Fatalf("got % x", buf)
	}
}

func TestLimits(t *testing.T) {
	if MaxVertices != 65536 || MaxIndices != 98304 {
		t.Fatalf("limits %d/%d", MaxVertices, MaxIndices)
	}
}
