package meshing

import "mini-voxel/internal/world"

// faceDef describes one cube face in unit-cube space. Corners run
// c0 = base, c1 = base+u, c2 = base+u+v, c3 = base+v with u x v = normal,
// so (0,1,2) and (2,3,0) are counter-clockwise seen from outside.
type faceDef struct {
	normal  [3]int
	u, v    [3]int
	corners [4][3]float32
}

// faceQuadUVs map the corners to texture space; v runs top-down.
var faceQuadUVs = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// faceQuadIndices are the two triangles of a face relative to its first vertex.
var faceQuadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// cornerSigns give, per corner, the direction along u and v toward the
// cells that can occlude it.
var cornerSigns = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

var faceDefs = func() [6]faceDef {
	var defs [6]faceDef
	add := func(f world.BlockFace, base, u, v [3]int) {
		dx, dy, dz := f.Offset()
		d := faceDef{normal: [3]int{dx, dy, dz}, u: u, v: v}
		steps := [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for i, s := range steps {
			for a := 0; a < 3; a++ {
				d.corners[i][a] = float32(base[a] + s[0]*u[a] + s[1]*v[a])
			}
		}
		defs[f] = d
	}
	add(world.FaceTop, [3]int{0, 1, 0}, [3]int{0, 0, 1}, [3]int{1, 0, 0})
	add(world.FaceBottom, [3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{0, 0, 1})
	add(world.FaceSouth, [3]int{0, 0, 1}, [3]int{1, 0, 0}, [3]int{0, 1, 0})
	add(world.FaceNorth, [3]int{1, 0, 0}, [3]int{-1, 0, 0}, [3]int{0, 1, 0})
	add(world.FaceEast, [3]int{1, 0, 1}, [3]int{0, 0, -1}, [3]int{0, 1, 0})
	add(world.FaceWest, [3]int{0, 0, 0}, [3]int{0, 0, 1}, [3]int{0, 1, 0})
	return defs
}()
