package main

import (
	"sync/atomic"
	"time"

	"mini-voxel/internal/camera"
	"mini-voxel/internal/game"
	"mini-voxel/internal/gpu/glgpu"
	"mini-voxel/internal/input"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/profiling"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var skyColor = mgl32.Vec3{0.53, 0.74, 0.98}

// GameLoop drives frames from the game goroutine. Anything touching GLFW
// or GL is wrapped in mainthread.Call.
type GameLoop struct {
	window     *glfw.Window
	input      *input.InputManager
	session    *game.Session
	pass       *glgpu.Pass
	crosshair  *glgpu.Crosshair
	fpsLimiter *game.FPSLimiter

	captured     bool
	justCaptured bool
	stop         atomic.Bool
	done         chan struct{}

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func NewGameLoop(window *glfw.Window, im *input.InputManager, session *game.Session, pass *glgpu.Pass, crosshair *glgpu.Crosshair) *GameLoop {
	return &GameLoop{
		window:           window,
		input:            im,
		session:          session,
		pass:             pass,
		crosshair:        crosshair,
		fpsLimiter:       game.NewFPSLimiter(),
		captured:         true,
		done:             make(chan struct{}),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Run ticks until the window is closed or Stop is called.
func (g *GameLoop) Run() {
	defer close(g.done)
	for !g.stop.Load() && g.tick() {
	}
}

// Stop ends Run and waits for the current frame to finish.
func (g *GameLoop) Stop() {
	g.stop.Store(true)
	select {
	case <-g.done:
	case <-time.After(2 * time.Second):
	}
}

func (g *GameLoop) tick() bool {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(g.lastTime).Seconds()
	g.lastTime = now

	var width, height int
	var open bool
	mainthread.Call(func() {
		glfw.PollEvents()
		open = !g.window.ShouldClose()
		width, height = g.window.GetFramebufferSize()
		g.updateCursorCapture()
	})
	if !open {
		return false
	}

	if g.input.JustPressed(input.ActionToggleCollision) {
		g.session.Collide = !g.session.Collide
		logger.Log.Info("collision toggled", zap.Bool("enabled", g.session.Collide))
	}
	if g.input.JustPressed(input.ActionToggleProfiling) {
		logger.Log.Info("frame profile", zap.String("top", profiling.TopN(8)))
	}

	g.session.Camera.SetViewport(width, height)
	g.session.Update(dt, g.frameInput())

	viewProj := g.session.Camera.ViewProjection()
	aspect := g.session.Camera.AspectRatio
	mainthread.Call(func() {
		gl.Viewport(0, 0, int32(width), int32(height))
		g.pass.Begin(viewProj, skyColor)
		g.session.Render(g.pass)
		if g.captured {
			g.crosshair.Draw(aspect)
		}
		g.window.SwapBuffers()
	})

	g.input.PostUpdate()
	g.reportFrame(now)
	g.fpsLimiter.Wait()
	return true
}

// updateCursorCapture releases the cursor on Escape and grabs it again on
// click. Runs on the main thread.
func (g *GameLoop) updateCursorCapture() {
	g.justCaptured = false
	switch {
	case g.captured && g.input.JustPressed(input.ActionReleaseCursor):
		g.captured = false
		g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	case !g.captured && g.input.JustPressed(input.ActionBreak):
		g.captured = true
		g.justCaptured = true
		g.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}
}

func (g *GameLoop) frameInput() game.FrameInput {
	in := game.FrameInput{
		Movement: camera.Movement{
			Forward: g.input.IsActive(input.ActionMoveForward),
			Back:    g.input.IsActive(input.ActionMoveBackward),
			Left:    g.input.IsActive(input.ActionMoveLeft),
			Right:   g.input.IsActive(input.ActionMoveRight),
			Up:      g.input.IsActive(input.ActionFlyUp),
			Down:    g.input.IsActive(input.ActionFlyDown),
			Sprint:  g.input.IsActive(input.ActionSprint),
		},
		Select: g.input.HotbarPressed(),
	}
	if !g.captured {
		return in
	}
	in.CursorX, in.CursorY, in.CursorMoved = g.input.Cursor()
	in.Break = g.input.JustPressed(input.ActionBreak) && !g.justCaptured
	in.Place = g.input.JustPressed(input.ActionPlace)
	return in
}

func (g *GameLoop) reportFrame(start time.Time) {
	if d := time.Since(start); d > 50*time.Millisecond {
		logger.Log.Warn("slow frame",
			zap.Duration("duration", d),
			zap.Duration("world", profiling.SumWithPrefix("game.")),
			zap.String("top", profiling.TopN(5)))
	}

	g.frames++
	if elapsed := time.Since(g.lastFPSCheckTime); elapsed >= time.Second {
		chunks := g.session.Chunks
		logger.Log.Debug("frame stats",
			zap.Float64("fps", float64(g.frames)/elapsed.Seconds()),
			zap.Int("chunks", chunks.LoadedChunks()),
			zap.Int("meshes", chunks.Meshes().Len()),
			zap.Int("pending", chunks.PendingUpdates()),
			zap.Int("inFlight", chunks.InFlight()),
			zap.Int("queuedTasks", chunks.QueuedTasks()))
		g.frames = 0
		g.lastFPSCheckTime = time.Now()
	}
}
