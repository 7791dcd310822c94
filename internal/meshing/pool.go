package meshing

import (
	"context"
	"sync"
	"time"

	"mini-voxel/internal/logger"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

// MeshTask asks a worker to mesh one chunk.
type MeshTask struct {
	Coord      world.ChunkCoord
	Generation uint64
	Chunk      *world.Chunk
	Neighbors  world.AdjacentChunks
}

// MeshResult carries a finished mesh back to the render goroutine.
type MeshResult struct {
	Coord      world.ChunkCoord
	Generation uint64
	Vertices   []Vertex
	Indices    []uint16
	Atlas      *texture.ChunkAtlas
	Err        error
}

// Empty reports whether the result has nothing to draw.
func (r MeshResult) Empty() bool { return len(r.Vertices) == 0 }

// WorkerPool runs mesh generation on a fixed set of goroutines. Tasks and
// results travel on two buffered channels; neither Submit nor draining
// Results ever blocks the caller.
type WorkerPool struct {
	tasks   chan MeshTask
	results chan MeshResult
	mesher  Mesher
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts workers goroutines reading from a task queue of
// taskQueue entries and writing to a result queue of resultQueue entries.
func NewWorkerPool(workers, taskQueue, resultQueue int, mesher Mesher) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		tasks:   make(chan MeshTask, taskQueue),
		results: make(chan MeshResult, resultQueue),
		mesher:  mesher,
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	logger.Log.Info("mesh worker pool started",
		zap.Int("workers", workers),
		zap.Int("taskQueue", taskQueue),
		zap.Int("resultQueue", resultQueue))
	return pool
}

// Submit queues a task. Returns false if the queue is full or the pool is shut down.
func (p *WorkerPool) Submit(task MeshTask) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// TryResult returns the next finished mesh without blocking.
func (p *WorkerPool) TryResult() (MeshResult, bool) {
	select {
	case r := <-p.results:
		return r, true
	default:
		return MeshResult{}, false
	}
}

// QueueLength returns the number of tasks waiting for a worker.
func (p *WorkerPool) QueueLength() int {
	return len(p.tasks)
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		if p.ctx.Err() != nil {
			return
		}

		start := time.Now()
		data, err := p.mesher.Generate(task.Chunk, task.Neighbors)
		metrics.MeshBuildSeconds.Observe(time.Since(start).Seconds())
		if err != nil {
			logger.Log.Error("mesh generation failed",
				zap.Int("worker", id),
				zap.Int("chunkX", task.Coord.X),
				zap.Int("chunkZ", task.Coord.Z),
				zap.Error(err))
		}

		result := MeshResult{
			Coord:      task.Coord,
			Generation: task.Generation,
			Vertices:   data.Vertices,
			Indices:    data.Indices,
			Atlas:      data.Atlas,
			Err:        err,
		}

		select {
		case p.results <- result:
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops accepting tasks, closes the task channel and waits for the
// workers to exit. Results still buffered are left in the channel.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	logger.Log.Info("mesh worker pool stopped")
}
