// Command meshbench runs the chunk streaming pipeline without a window: it
// loads a world around a moving viewer on the in-memory device, applies
// random block edits and reports how long meshing took to settle.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/gpu"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults to $"+config.EnvConfigPath+")")
	distance   = flag.Int("distance", 0, "override render distance in chunks")
	steps      = flag.Int("steps", 8, "viewer moves along +X, one chunk per step")
	edits      = flag.Int("edits", 200, "random block edits after the world settles")
	timeout    = flag.Duration("timeout", time.Minute, "give up waiting for meshes after this long")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}
	defer logger.Sync()
	config.Apply(cfg)
	if *distance > 0 {
		config.SetRenderDistance(*distance)
	}
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer srv.Close()
	}

	reg, err := registry.Load(cfg.Textures.Blocks)
	if err != nil {
		return err
	}
	stone, _ := reg.Get("stone")
	dirt, _ := reg.Get("dirt")
	grass, _ := reg.Get("grass")
	terrain := world.NewPerlinGenerator(cfg.World.Seed,
		world.TerrainBlocks{Stone: stone, Dirt: dirt, Grass: grass},
		cfg.World.BaseHeight, cfg.World.Amplitude)

	device := gpu.NewMemoryDevice()
	loader := texture.NewLoader(cfg.Textures.Dir, cfg.Textures.LayerSize)
	chunks := game.NewChunkManager(cfg.Meshing, device, reg, loader, terrain)
	defer chunks.Close()

	start := time.Now()
	for step := range *steps {
		viewer := [3]int{step * world.ChunkSizeX, 0, 0}
		chunks.UpdateVisibleChunks(viewer)
		frames, err := settle(chunks, *timeout)
		if err != nil {
			return err
		}
		logger.Log.Info("step settled",
			zap.Int("step", step),
			zap.Int("frames", frames),
			zap.Int("chunks", chunks.LoadedChunks()),
			zap.Int("meshes", chunks.Meshes().Len()))
	}
	streamTime := time.Since(start)

	rng := rand.New(rand.NewSource(cfg.World.Seed))
	names := reg.Names()
	applied := 0
	start = time.Now()
	for range *edits {
		pos := randomSurfacePos(rng, terrain, (*steps-1)*world.ChunkSizeX)
		var ok bool
		if rng.Intn(2) == 0 {
			ok = chunks.BreakBlock(pos)
		} else {
			block, _ := reg.Get(names[rng.Intn(len(names))])
			pos[1]++
			ok = chunks.PlaceBlock(pos, block)
		}
		if ok {
			applied++
		}
		chunks.ProcessMeshUpdates()
	}
	if _, err := settle(chunks, *timeout); err != nil {
		return err
	}
	editTime := time.Since(start)

	pool := chunks.Meshes().Pool()
	tex := loader.Stats()
	logger.Log.Info("meshbench finished",
		zap.Duration("stream", streamTime),
		zap.Duration("edits", editTime),
		zap.Int("editsApplied", applied),
		zap.Int("meshes", chunks.Meshes().Len()),
		zap.Int("buffersAllocated", pool.Allocated()),
		zap.Int("buffersFree", pool.Free()),
		zap.Int("liveTextures", device.LiveTextures()),
		zap.Int("releasedTextures", device.ReleasedTextures()),
		zap.Int("textureFallbacks", tex.Fallbacks),
		zap.String("top", profiling.TopN(5)))
	return nil
}

// settle runs frames until the update queue is empty and nothing is in flight.
func settle(chunks *game.ChunkManager, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	for frames := 1; ; frames++ {
		profiling.ResetFrame()
		chunks.ProcessMeshUpdates()
		if chunks.PendingUpdates() == 0 && chunks.InFlight() == 0 {
			return frames, nil
		}
		if time.Now().After(deadline) {
			return frames, fmt.Errorf("meshing did not settle within %v: %d pending, %d in flight",
				timeout, chunks.PendingUpdates(), chunks.InFlight())
		}
		time.Sleep(time.Millisecond)
	}
}

func randomSurfacePos(rng *rand.Rand, terrain *world.PerlinGenerator, viewerX int) [3]int {
	r := config.GetRenderDistance() * world.ChunkSizeX
	x := viewerX + rng.Intn(2*r) - r
	z := rng.Intn(2*r) - r
	return [3]int{x, terrain.HeightAt(x, z), z}
}
