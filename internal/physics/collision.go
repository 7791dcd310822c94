package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Collides reports whether a box of the given half-width and height, with
// its feet centred at pos, overlaps any solid block.
func Collides(pos mgl32.Vec3, halfWidth, height float32, blocks BlockReader) bool {
	minX := int(math.Floor(float64(pos.X() - halfWidth)))
	maxX := int(math.Floor(float64(pos.X() + halfWidth)))
	minY := int(math.Floor(float64(pos.Y())))
	maxY := int(math.Floor(float64(pos.Y() + height)))
	minZ := int(math.Floor(float64(pos.Z() - halfWidth)))
	maxZ := int(math.Floor(float64(pos.Z() + halfWidth)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if blocks.IsAir(x, y, z) {
					continue
				}
				if pos.X()-halfWidth < float32(x+1) && pos.X()+halfWidth > float32(x) &&
					pos.Y() < float32(y+1) && pos.Y()+height > float32(y) &&
					pos.Z()-halfWidth < float32(z+1) && pos.Z()+halfWidth > float32(z) {
					return true
				}
			}
		}
	}
	return false
}
