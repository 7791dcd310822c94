package world

import "testing"

var (
	testStone = NewBlockType("stone", Uniform("stone"))
	testDirt  = NewBlockType("dirt", Uniform("dirt"))
	testGrass = NewBlockType("grass", Sided("grass_top", "grass_side", "dirt"))
)

func TestIndexLayout(t *testing.T) {
	if got := Index(0, 0, 1); got != 1 {
		t.Fatalf("Index(0,0,1) = %d, want 1", got)
	}
	if got := Index(0, 1, 0); got != ChunkSizeZ {
		t.Fatalf("Index(0,1,0) = %d, want %d", got, ChunkSizeZ)
	}
	if got := Index(1, 0, 0); got != ChunkSizeY*ChunkSizeZ {
		t.Fatalf("Index(1,0,0) = %d, want %d", got, ChunkSizeY*ChunkSizeZ)
	}
	if got := Index(ChunkSizeX-1, ChunkSizeY-1, ChunkSizeZ-1); got != ChunkVolume-1 {
		t.Fatalf("last index = %d, want %d", got, ChunkVolume-1)
	}
}

func TestChunkSetGetAndDirty(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetClean()

	if !c.SetBlock(3, 70, 9, testStone) {
		t.Fatal("SetBlock returned false for a changed cell")
	}
	if !c.NeedsMeshUpdate() {
		t.Fatal("chunk not dirty after SetBlock")
	}
	if got := c.GetBlock(3, 70, 9); !got.Equal(testStone) {
		t.Fatalf("got %v, want stone", got)
	}
	if c.SolidCount() != 1 {
		t.Fatalf("SolidCount = %d, want 1", c.SolidCount())
	}

	c.SetClean()
	if c.SetBlock(3, 70, 9, NewBlockType("stone", Uniform("stone"))) {
		t.Fatal("equal block reported as a change")
	}
	if c.NeedsMeshUpdate() {
		t.Fatal("chunk dirty after a no-op write")
	}

	c.SetBlock(3, 70, 9, nil)
	if !c.IsEmpty() {
		t.Fatal("chunk should be empty after clearing its only block")
	}
}

func TestChunkOutOfBoundsIsIgnored(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetClean()
	for _, p := range [][3]int{{-1, 0, 0}, {16, 0, 0}, {0, -1, 0}, {0, 256, 0}, {0, 0, 16}} {
		if c.SetBlock(p[0], p[1], p[2], testStone) {
			t.Fatalf("SetBlock%v succeeded", p)
		}
		if c.GetBlock(p[0], p[1], p[2]) != nil {
			t.Fatalf("GetBlock%v returned a block", p)
		}
	}
	if c.NeedsMeshUpdate() {
		t.Fatal("out-of-bounds writes dirtied the chunk")
	}
}

func TestViewSeesLiveBlocks(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetBlock(1, 1, 1, testDirt)
	c.View(func(blocks []*BlockType) {
		if !blocks[Index(1, 1, 1)].Equal(testDirt) {
			t.Fatal("View missed a stored block")
		}
	})
}

func TestBlockTypeEqual(t *testing.T) {
	var air *BlockType
	if !air.Equal(nil) {
		t.Fatal("air should equal air")
	}
	if testStone.Equal(nil) || air.Equal(testStone) {
		t.Fatal("stone should not equal air")
	}
	if testStone.Equal(testDirt) {
		t.Fatal("stone should not equal dirt")
	}
	if testGrass.Equal(NewBlockType("grass", Uniform("grass"))) {
		t.Fatal("blocks with different textures compared equal")
	}
}

func TestChunkCoordFromBlock(t *testing.T) {
	cases := []struct {
		x, y, z int
		want    ChunkCoord
		local   [3]int
	}{
		{0, 0, 0, ChunkCoord{0, 0, 0}, [3]int{0, 0, 0}},
		{15, 255, 15, ChunkCoord{0, 0, 0}, [3]int{15, 255, 15}},
		{16, 10, -1, ChunkCoord{1, 0, -1}, [3]int{0, 10, 15}},
		{-16, 0, -17, ChunkCoord{-1, 0, -2}, [3]int{0, 0, 15}},
		{-1, -1, 0, ChunkCoord{-1, -1, 0}, [3]int{15, 255, 0}},
	}
	for _, tc := range cases {
		if got := ChunkCoordFromBlock(tc.x, tc.y, tc.z); got != tc.want {
			t.Errorf("ChunkCoordFromBlock(%d,%d,%d) = %v, want %v", tc.x, tc.y, tc.z, got, tc.want)
		}
		lx, ly, lz := LocalFromBlock(tc.x, tc.y, tc.z)
		if [3]int{lx, ly, lz} != tc.local {
			t.Errorf("LocalFromBlock(%d,%d,%d) = %v, want %v", tc.x, tc.y, tc.z, [3]int{lx, ly, lz}, tc.local)
		}
	}
}

func TestChunkStoreNeighbors(t *testing.T) {
	cs := NewChunkStore()
	center := NewChunk(ChunkCoord{0, 0, 0})
	north := NewChunk(ChunkCoord{0, 0, -1})
	east := NewChunk(ChunkCoord{1, 0, 0})
	for _, c := range []*Chunk{center, north, east} {
		if !cs.AddChunk(c) {
			t.Fatalf("AddChunk(%v) = false", c.Coord)
		}
	}
	if cs.AddChunk(NewChunk(ChunkCoord{0, 0, 0})) {
		t.Fatal("duplicate AddChunk succeeded")
	}

	adj := cs.Neighbors(center.Coord)
	if adj.North != north || adj.East != east || adj.South != nil || adj.West != nil {
		t.Fatalf("unexpected neighbors: %+v", adj)
	}

	far := cs.CoordsOutsideXZ(0, 0, 0)
	if len(far) != 2 {
		t.Fatalf("CoordsOutsideXZ = %v, want 2 coords", far)
	}
	if cs.RemoveChunk(east.Coord) != east || cs.HasChunk(east.Coord) {
		t.Fatal("RemoveChunk did not remove east")
	}
	if cs.GetModCount() != 4 {
		t.Fatalf("modCount = %d, want 4", cs.GetModCount())
	}
}

func TestChunkStoreWorldAccess(t *testing.T) {
	cs := NewChunkStore()
	c := NewChunk(ChunkCoord{-1, 0, 0})
	c.SetBlock(15, 64, 3, testGrass)
	cs.AddChunk(c)

	if got := cs.Get(-1, 64, 3); !got.Equal(testGrass) {
		t.Fatalf("Get(-1,64,3) = %v, want grass", got)
	}
	if !cs.IsAir(0, 64, 3) {
		t.Fatal("unloaded position should read as air")
	}
}

func BenchmarkFlatFill(b *testing.B) {
	g := FlatGenerator{Height: 64, Ground: testStone, Top: testGrass}
	for i := 0; i < b.N; i++ {
		_ = g.Fill(ChunkCoord{X: i})
	}
}
