package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MouseSensitivity = 0.1
	FlySpeed         = 12.0
	SprintMultiplier = 3.0
)

// Movement is the set of fly directions held this frame.
type Movement struct {
	Forward, Back, Left, Right, Up, Down bool
	Sprint                               bool
}

// Camera is a free-flying perspective camera. Yaw and pitch are degrees;
// yaw 0 looks down +X, -90 down -Z.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float64
	Pitch       float64
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	firstMouse bool
	lastX      float64
	lastY      float64
}

func New(width, height int, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		AspectRatio: float32(width) / float32(height),
		FOV:         70.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		firstMouse:  true,
	}
}

// SetViewport updates the aspect ratio after a resize.
func (c *Camera) SetViewport(width, height int) {
	if height == 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// HandleMouseMovement turns cursor motion into yaw and pitch.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastX) * MouseSensitivity
	yoffset := (c.lastY - ypos) * MouseSensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw += xoffset
	c.Pitch += yoffset

	// Constrain pitch
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// Front returns the unit look direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Fly moves the camera. Forward and strafe stay horizontal; up and down
// move along world Y.
func (c *Camera) Fly(m Movement, dt float64) {
	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	right := flat.Cross(mgl32.Vec3{0, 1, 0})

	var dir mgl32.Vec3
	if m.Forward {
		dir = dir.Add(flat)
	}
	if m.Back {
		dir = dir.Sub(flat)
	}
	if m.Right {
		dir = dir.Add(right)
	}
	if m.Left {
		dir = dir.Sub(right)
	}
	if m.Up {
		dir = dir.Add(mgl32.Vec3{0, 1, 0})
	}
	if m.Down {
		dir = dir.Sub(mgl32.Vec3{0, 1, 0})
	}
	if dir.Len() == 0 {
		return
	}

	speed := float32(FlySpeed * dt)
	if m.Sprint {
		speed *= SprintMultiplier
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(speed))
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// BlockPosition returns the integer block containing the camera.
func (c *Camera) BlockPosition() [3]int {
	return [3]int{
		int(math.Floor(float64(c.Position.X()))),
		int(math.Floor(float64(c.Position.Y()))),
		int(math.Floor(float64(c.Position.Z()))),
	}
}
