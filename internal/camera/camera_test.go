package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCameraLooksDownNegativeZ(t *testing.T) {
	c := New(1280, 720, mgl32.Vec3{0, 70, 0})
	assert.InDelta(t, -1.0, c.Front().Z(), 1e-5)

	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 70, -10, 1})
	assert.Greater(t, clip.W(), float32(0), "point ahead is in front of the camera")
	clip = c.ViewProjection().Mul4x1(mgl32.Vec4{0, 70, 10, 1})
	assert.Less(t, clip.W(), float32(0))
}

func TestMouseMovementClampsPitch(t *testing.T) {
	c := New(800, 600, mgl32.Vec3{})
	c.HandleMouseMovement(100, 100)
	assert.Equal(t, 0.0, c.Pitch, "first event only records the cursor")

	c.HandleMouseMovement(110, -5000)
	assert.InDelta(t, -89.0, c.Yaw, 1e-9)
	assert.Equal(t, 89.0, c.Pitch)
}

func TestFlyStaysHorizontal(t *testing.T) {
	c := New(800, 600, mgl32.Vec3{0, 50, 0})
	c.Pitch = 60
	c.Fly(Movement{Forward: true}, 1)
	assert.InDelta(t, 50.0, c.Position.Y(), 1e-4)
	assert.InDelta(t, -FlySpeed, c.Position.Z(), 1e-3)

	c.Fly(Movement{Up: true, Sprint: true}, 0.5)
	assert.InDelta(t, 50+FlySpeed*SprintMultiplier*0.5, c.Position.Y(), 1e-3)

	before := c.Position
	c.Fly(Movement{Left: true, Right: true}, 1)
	assert.Equal(t, before, c.Position)
}

func TestBlockPositionFloorsNegatives(t *testing.T) {
	c := New(800, 600, mgl32.Vec3{-0.5, 64.9, 15.99})
	assert.Equal(t, [3]int{-1, 64, 15}, c.BlockPosition())
}
