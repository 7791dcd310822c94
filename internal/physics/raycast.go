package physics

import (
	"math"

	"mini-voxel/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 6.0
)

// BlockReader answers whether a world block is empty. Unloaded blocks are air.
type BlockReader interface {
	IsAir(x, y, z int) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast marches from start along direction and reports the first solid
// block within [minDist, maxDist]. Block (x,y,z) occupies the unit cube
// [x,x+1)×[y,y+1)×[z,z+1). AdjacentPosition is the last empty block the ray
// passed through, where a placed block would go.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, blocks BlockReader) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	stepSize := float32(0.02)
	steps := int(maxDist / stepSize)

	lastEmptyPos := blockAt(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		blockPos := blockAt(start.Add(direction.Mul(dist)))
		if !blocks.IsAir(blockPos[0], blockPos[1], blockPos[2]) {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}

func blockAt(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()))),
		int(math.Floor(float64(p.Y()))),
		int(math.Floor(float64(p.Z()))),
	}
}
