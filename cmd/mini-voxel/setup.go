package main

import (
	"mini-voxel/internal/config"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// setupWindow creates the window and GL context on the main thread.
func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	var window *glfw.Window
	err := mainthread.CallErr(func() error {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

		w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
		if err != nil {
			return err
		}
		w.MakeContextCurrent()

		// Initialize OpenGL bindings
		if err := gl.Init(); err != nil {
			return err
		}

		// Disable V-Sync; the frame loop has its own limiter
		glfw.SwapInterval(0)
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		window = w
		return nil
	})
	return window, err
}
