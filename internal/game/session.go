package game

import (
	"mini-voxel/internal/camera"
	"mini-voxel/internal/gpu"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	eyeHeight  = 1.62
	bodyHeight = 1.8
	bodyRadius = 0.3
)

// FrameInput is the input gathered for one frame.
type FrameInput struct {
	Movement    camera.Movement
	CursorMoved bool
	CursorX     float64
	CursorY     float64
	Break       bool
	Place       bool
	Select      int // hotbar slot pressed this frame, -1 for none
}

// Session is one running world: the camera and the chunks around it.
type Session struct {
	Camera *camera.Camera
	Chunks *ChunkManager

	// Collide keeps the camera out of solid blocks.
	Collide bool

	hotbar   []*world.BlockType
	selected int
}

func NewSession(cam *camera.Camera, chunks *ChunkManager) *Session {
	s := &Session{Camera: cam, Chunks: chunks, Collide: true}
	for _, name := range chunks.Registry().Names() {
		if b, ok := chunks.Registry().Get(name); ok {
			s.hotbar = append(s.hotbar, b)
		}
	}
	return s
}

// Selected returns the block placed by a place action.
func (s *Session) Selected() *world.BlockType {
	if len(s.hotbar) == 0 {
		return nil
	}
	return s.hotbar[s.selected]
}

// Update advances the session by dt seconds.
func (s *Session) Update(dt float64, in FrameInput) {
	defer profiling.Track("game.Session.Update")()

	if in.CursorMoved {
		s.Camera.HandleMouseMovement(in.CursorX, in.CursorY)
	}
	if in.Select >= 0 && in.Select < len(s.hotbar) {
		s.selected = in.Select
	}

	prev := s.Camera.Position
	s.Camera.Fly(in.Movement, dt)
	if s.Collide && s.bodyCollides() {
		s.Camera.Position = prev
	}

	if in.Break || in.Place {
		hit := s.Target()
		switch {
		case !hit.Hit:
		case in.Break:
			s.Chunks.BreakBlock(hit.HitPosition)
		case in.Place:
			s.place(hit.AdjacentPosition)
		}
	}

	s.Chunks.UpdateVisibleChunks(s.Camera.BlockPosition())
	s.Chunks.ProcessMeshUpdates()
}

func (s *Session) place(pos [3]int) {
	prev := s.Chunks.BlockAt(pos)
	if !s.Chunks.PlaceBlock(pos, s.Selected()) {
		return
	}
	// never place a block inside the viewer
	if s.Collide && s.bodyCollides() {
		s.Chunks.SetBlock(pos, prev)
	}
}

func (s *Session) bodyCollides() bool {
	feet := s.Camera.Position.Sub(mgl32.Vec3{0, eyeHeight, 0})
	return physics.Collides(feet, bodyRadius, bodyHeight, s.Chunks)
}

// Target returns the block under the crosshair.
func (s *Session) Target() physics.RaycastResult {
	return physics.Raycast(s.Camera.Position, s.Camera.Front(),
		physics.MinReachDistance, physics.MaxReachDistance, s.Chunks)
}

// Render draws the world; it must run where pass is valid.
func (s *Session) Render(pass gpu.Pass) (drawn, culled int) {
	return s.Chunks.Render(pass, s.Camera)
}

// Close releases the chunk manager.
func (s *Session) Close() {
	s.Chunks.Close()
}
