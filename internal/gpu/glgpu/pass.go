package glgpu

import (
	"mini-voxel/internal/gpu"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex layout shared with meshing.Vertex: position, normal, uv, layer, occlusion.
const (
	vertexStride    = 40
	offsetNormal    = 12
	offsetUV        = 24
	offsetLayer     = 32
	offsetOcclusion = 36
)

// Pass draws chunk meshes with the chunk shader. Create it with NewPass and
// call its methods only on the main thread.
type Pass struct {
	program     uint32
	viewProjLoc int32
	atlasLoc    int32
	vaos        map[uint32]uint32 // vertex buffer id -> vao
}

// NewPass compiles the chunk shader. It blocks until the main thread has run it.
func NewPass() (*Pass, error) {
	p := &Pass{vaos: make(map[uint32]uint32)}
	err := mainthread.CallErr(func() error {
		prog, err := compileProgram(chunkVertexShader, chunkFragmentShader)
		if err != nil {
			return err
		}
		p.program = prog
		p.viewProjLoc = gl.GetUniformLocation(prog, gl.Str("viewProj\x00"))
		p.atlasLoc = gl.GetUniformLocation(prog, gl.Str("atlas\x00"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Begin clears the frame and prepares the shader for chunk draws.
func (p *Pass) Begin(viewProj mgl32.Mat4, sky mgl32.Vec3) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(sky.X(), sky.Y(), sky.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.viewProjLoc, 1, false, &viewProj[0])
	gl.Uniform1i(p.atlasLoc, 0)
}

func (p *Pass) BindTexture(gt gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, gt.(*texture).id)
}

func (p *Pass) DrawIndexed(vertices, indices gpu.Buffer, indexCount int) {
	gl.BindVertexArray(p.vao(vertices.(*buffer), indices.(*buffer)))
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)
}

// vao returns the vertex array for a buffer pair, creating it on first use.
// Pooled pairs are never split, so the vertex buffer id identifies the pair.
func (p *Pass) vao(vb, ib *buffer) uint32 {
	if id, ok := p.vaos[vb.id]; ok {
		return id
	}
	var id uint32
	gl.GenVertexArrays(1, &id)
	gl.BindVertexArray(id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, offsetNormal)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, offsetUV)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribIPointerWithOffset(3, 1, gl.UNSIGNED_INT, vertexStride, offsetLayer)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 1, gl.FLOAT, false, vertexStride, offsetOcclusion)

	gl.BindVertexArray(0)
	p.vaos[vb.id] = id
	return id
}
