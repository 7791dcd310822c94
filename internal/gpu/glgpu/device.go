// Package glgpu implements gpu.Device and gpu.Pass on OpenGL 4.1 core.
//
// Every GL call runs on the OS main thread through github.com/faiface/mainthread,
// so the program must be started with mainthread.Run. Device methods can be
// called from any goroutine except the main thread itself; Pass methods must
// only be called from inside a mainthread.Call.
package glgpu

import (
	"fmt"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/logger"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

type buffer struct {
	id     uint32
	label  string
	usage  gpu.BufferUsage
	size   int
	target uint32
}

func (b *buffer) Label() string          { return b.label }
func (b *buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *buffer) Size() int              { return b.size }

type texture struct {
	id     uint32
	label  string
	size   int
	layers int
}

func (t *texture) Label() string { return t.label }
func (t *texture) Size() int     { return t.size }
func (t *texture) Layers() int   { return t.layers }

// Device is a gpu.Device backed by the current GL context.
type Device struct{}

// NewDevice returns a device. gl.Init must already have run on the main thread.
func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateBuffer(label string, usage gpu.BufferUsage, size int) gpu.Buffer {
	b := &buffer{label: label, usage: usage, size: size, target: gl.ARRAY_BUFFER}
	if usage == gpu.UsageIndex {
		b.target = gl.ELEMENT_ARRAY_BUFFER
	}
	mainthread.Call(func() {
		gl.GenBuffers(1, &b.id)
		gl.BindBuffer(b.target, b.id)
		gl.BufferData(b.target, size, nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(b.target, 0)
	})
	logger.Log.Debug("buffer created",
		zap.String("label", label),
		zap.Stringer("usage", usage),
		zap.Int("bytes", size))
	return b
}

func (d *Device) WriteBuffer(gb gpu.Buffer, offset int, data []byte) {
	b := gb.(*buffer)
	if offset < 0 || offset+len(data) > b.size {
		panic(fmt.Sprintf("glgpu: write of %d bytes at %d overflows %q (%d bytes)", len(data), offset, b.label, b.size))
	}
	if len(data) == 0 {
		return
	}
	mainthread.Call(func() {
		gl.BindBuffer(b.target, b.id)
		gl.BufferSubData(b.target, offset, len(data), gl.Ptr(data))
		gl.BindBuffer(b.target, 0)
	})
}

func (d *Device) CreateTextureArray(label string, size, layers int) gpu.Texture {
	t := &texture{label: label, size: size, layers: layers}
	mainthread.Call(func() {
		gl.GenTextures(1, &t.id)
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
		gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8,
			int32(size), int32(size), int32(layers),
			0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	})
	return t
}

func (d *Device) WriteTextureLayer(gt gpu.Texture, layer int, rgba []byte) {
	t := gt.(*texture)
	if layer < 0 || layer >= t.layers {
		panic(fmt.Sprintf("glgpu: layer %d out of range for %q (%d layers)", layer, t.label, t.layers))
	}
	mainthread.Call(func() {
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0,
			0, 0, int32(layer),
			int32(t.size), int32(t.size), 1,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	})
}

func (d *Device) ReleaseTexture(gt gpu.Texture) {
	t := gt.(*texture)
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.id)
	})
}
