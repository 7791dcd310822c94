package glgpu

import (
	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const crosshairVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
uniform float aspectRatio;
void main() {
    gl_Position = vec4(aPos.x / aspectRatio, aPos.y, 0.0, 1.0);
}
` + "\x00"

const crosshairFragmentShader = `#version 410 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0, 1.0, 1.0, 0.9);
}
` + "\x00"

var crosshairVertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair draws two lines at the screen centre marking the raycast target.
type Crosshair struct {
	program   uint32
	aspectLoc int32
	vao       uint32
	vbo       uint32
}

// NewCrosshair uploads the crosshair geometry on the main thread.
func NewCrosshair() (*Crosshair, error) {
	c := &Crosshair{}
	err := mainthread.CallErr(func() error {
		prog, err := compileProgram(crosshairVertexShader, crosshairFragmentShader)
		if err != nil {
			return err
		}
		c.program = prog
		c.aspectLoc = gl.GetUniformLocation(prog, gl.Str("aspectRatio\x00"))

		gl.GenVertexArrays(1, &c.vao)
		gl.BindVertexArray(c.vao)
		gl.GenBuffers(1, &c.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(crosshairVertices)*4, gl.Ptr(crosshairVertices), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
		gl.BindVertexArray(0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Draw renders the crosshair over the frame. Call it from inside
// mainthread.Call after the chunk pass.
func (c *Crosshair) Draw(aspectRatio float32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(c.program)
	gl.Uniform1f(c.aspectLoc, aspectRatio)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, 4)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose frees the GL objects. Call it from inside mainthread.Call.
func (c *Crosshair) Dispose() {
	gl.DeleteVertexArrays(1, &c.vao)
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteProgram(c.program)
}
