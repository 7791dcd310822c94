package blocks

import (
	"fmt"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
)

// BufferPool recycles fixed-capacity buffer pairs so chunk remeshing never
// allocates GPU memory in steady state. It is owned by the render goroutine.
type BufferPool struct {
	device    gpu.Device
	free      []*BufferPair
	allocated int
}

// NewBufferPool pre-allocates initial buffer pairs.
func NewBufferPool(device gpu.Device, initial int) *BufferPool {
	p := &BufferPool{device: device, free: make([]*BufferPair, 0, initial)}
	for range initial {
		p.free = append(p.free, p.allocate())
	}
	p.report()
	return p
}

func (p *BufferPool) allocate() *BufferPair {
	id := p.allocated
	p.allocated++
	return &BufferPair{
		Vertices: p.device.CreateBuffer(fmt.Sprintf("chunk-vertices-%d", id), gpu.UsageVertex, meshing.MaxVertices*meshing.VertexSize),
		Indices:  p.device.CreateBuffer(fmt.Sprintf("chunk-indices-%d", id), gpu.UsageIndex, meshing.MaxIndices*meshing.IndexSize),
		id:       id,
	}
}

// Acquire pops a free pair, allocating a new one when the free list is empty.
func (p *BufferPool) Acquire() *BufferPair {
	var bp *BufferPair
	if n := len(p.free); n > 0 {
		bp = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		bp = p.allocate()
	}
	p.report()
	return bp
}

// Release returns a pair to the free list.
func (p *BufferPool) Release(bp *BufferPair) {
	p.free = append(p.free, bp)
	p.report()
}

// Allocated returns the number of pairs ever created.
func (p *BufferPool) Allocated() int { return p.allocated }

// Free returns the number of pairs waiting in the free list.
func (p *BufferPool) Free() int { return len(p.free) }

func (p *BufferPool) report() {
	metrics.BuffersAllocated.Set(float64(p.allocated))
	metrics.BuffersFree.Set(float64(len(p.free)))
}
