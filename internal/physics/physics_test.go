package physics_test

import (
	"testing"

	"mini-voxel/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

type blockSet map[[3]int]bool

func (s blockSet) IsAir(x, y, z int) bool { return !s[[3]int{x, y, z}] }

func TestRaycast(t *testing.T) {
	w := blockSet{{5, 0, 0}: true}

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(start, dir, 0.1, 10, w)
	if !result.Hit {
		t.Fatalf("Expected hit, got miss")
	}
	if result.HitPosition != [3]int{5, 0, 0} {
		t.Errorf("Expected hit at {5,0,0}, got %v", result.HitPosition)
	}
	if result.AdjacentPosition != [3]int{4, 0, 0} {
		t.Errorf("Expected adjacent at {4,0,0}, got %v", result.AdjacentPosition)
	}
	// Ray starts at X=0.5 and enters the block at X=5.0.
	if result.Distance < 4.49 || result.Distance > 4.53 {
		t.Errorf("Expected distance 4.5, got %f", result.Distance)
	}

	if r := physics.Raycast(start, dir, 0.1, 4, w); r.Hit {
		t.Errorf("Expected miss due to maxDist, got hit at %v", r.HitPosition)
	}
	if r := physics.Raycast(start, mgl32.Vec3{0, 1, 0}, 0.1, 10, w); r.Hit {
		t.Errorf("Expected miss, got hit")
	}

	w[[3]int{2, 2, 2}] = true
	diag := physics.Raycast(start, mgl32.Vec3{1, 1, 1}.Normalize(), 0.1, 10, w)
	if !diag.Hit || diag.HitPosition != [3]int{2, 2, 2} {
		t.Errorf("Expected hit at {2,2,2}, got %+v", diag)
	}
}

func TestRaycastNegativeCoordinates(t *testing.T) {
	w := blockSet{{-3, 10, -1}: true}
	r := physics.Raycast(mgl32.Vec3{-0.5, 10.5, -0.5}, mgl32.Vec3{-1, 0, 0}, 0.1, 6, w)
	if !r.Hit || r.HitPosition != [3]int{-3, 10, -1} {
		t.Fatalf("Expected hit at {-3,10,-1}, got %+v", r)
	}
	if r.AdjacentPosition != [3]int{-2, 10, -1} {
		t.Errorf("Expected adjacent at {-2,10,-1}, got %v", r.AdjacentPosition)
	}
}

func TestCollides(t *testing.T) {
	w := blockSet{{0, 0, 0}: true}
	if !physics.Collides(mgl32.Vec3{0.5, 0.5, 0.5}, 0.3, 1.8, w) {
		t.Errorf("Expected collision inside block")
	}
	if physics.Collides(mgl32.Vec3{0.5, 1.0, 0.5}, 0.3, 1.8, w) {
		t.Errorf("Standing on top of a block should not collide")
	}
	if physics.Collides(mgl32.Vec3{1.3, 0.5, 0.5}, 0.3, 1.8, w) {
		t.Errorf("Touching the side should not collide")
	}
	if !physics.Collides(mgl32.Vec3{1.29, 0.5, 0.5}, 0.3, 1.8, w) {
		t.Errorf("Overlapping the side should collide")
	}
}

func BenchmarkRaycast(b *testing.B) {
	w := blockSet{{0, 0, -5}: true}
	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{0, 0, -1}
	for i := 0; i < b.N; i++ {
		physics.Raycast(start, dir, physics.MinReachDistance, physics.MaxReachDistance, w)
	}
}
