package metrics

import (
	"errors"
	"net/http"

	"mini-voxel/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "voxel"

var (
	ChunksLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chunks_loaded",
		Help:      "Chunks currently held by the chunk manager.",
	})
	ChunksUnloaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunks_unloaded_total",
		Help:      "Chunks dropped for leaving the render distance.",
	})
	UpdateQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mesh_update_queue_depth",
		Help:      "Chunk positions waiting to be dispatched for meshing.",
	})
	TasksDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mesh_tasks_dispatched_total",
		Help:      "Mesh tasks handed to the worker pool.",
	})
	TasksDeferred = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mesh_tasks_deferred_total",
		Help:      "Dispatch attempts pushed back because the task queue was full.",
	})
	ResultsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mesh_results_total",
		Help:      "Mesh results drained from the worker pool, by outcome.",
	}, []string{"outcome"})
	MeshBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mesh_build_seconds",
		Help:      "Time a worker spent generating one chunk mesh.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	ActiveMeshes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_meshes",
		Help:      "Entries in the active mesh map.",
	})
	BuffersAllocated = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mesh_buffers_allocated",
		Help:      "Buffer pairs ever allocated by the mesh buffer pool.",
	})
	BuffersFree = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mesh_buffers_free",
		Help:      "Buffer pairs sitting in the pool free list.",
	})
	DrawCalls = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "draw_calls",
		Help:      "Chunk draw calls issued in the last rendered frame.",
	})
	ChunksCulled = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chunks_culled",
		Help:      "Chunk meshes skipped by frustum culling in the last rendered frame.",
	})
	StageSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_seconds",
		Help:      "CPU time of tracked per-frame stages.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
	}, []string{"stage"})
)

// Result outcomes for ResultsApplied.
const (
	OutcomeApplied = "applied"
	OutcomeRemoved = "removed"
	OutcomeStale   = "stale"
	OutcomeFailed  = "failed"
)

// Serve exposes the default registry on addr under /metrics. It does not
// block; the returned server can be shut down by the caller.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Log.Info("metrics endpoint listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
	return srv
}
