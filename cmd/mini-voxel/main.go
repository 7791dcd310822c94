package main

import (
	"flag"
	"fmt"
	"os"

	"mini-voxel/internal/camera"
	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/gpu/glgpu"
	"mini-voxel/internal/input"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "YAML config file (defaults to $"+config.EnvConfigPath+")")

func main() {
	flag.Parse()
	// GL and GLFW calls are funneled to the main OS thread; the game runs in run.
	mainthread.Run(run)
}

func run() {
	defer closer.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		closer.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closer.Exit(1)
	}
	closer.Bind(logger.Sync)
	config.Apply(cfg)

	if err := start(cfg); err != nil {
		logger.Log.Error("mini-voxel stopped", zap.Error(err))
		closer.Exit(1)
	}
}

func start(cfg *config.Config) error {
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		closer.Bind(func() { srv.Close() })
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

	if err := mainthread.CallErr(glfw.Init); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer mainthread.Call(glfw.Terminate)

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	im := input.NewInputManager()
	mainthread.Call(func() { im.Install(window) })

	pass, err := glgpu.NewPass()
	if err != nil {
		return err
	}
	crosshair, err := glgpu.NewCrosshair()
	if err != nil {
		return err
	}
	defer mainthread.Call(crosshair.Dispose)
	device := glgpu.NewDevice()
	loader := texture.NewLoader(cfg.Textures.Dir, cfg.Textures.LayerSize)
	chunks := game.NewChunkManager(cfg.Meshing, device, reg, loader, terrain)

	spawnY := terrain.HeightAt(0, 0) + 4
	cam := camera.New(cfg.Window.Width, cfg.Window.Height, mgl32.Vec3{0.5, float32(spawnY), 0.5})
	session := game.NewSession(cam, chunks)
	defer session.Close()

	logger.Log.Info("world ready",
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("renderDistance", config.GetRenderDistance()),
		zap.Int("spawnY", spawnY),
		zap.Strings("blocks", reg.Names()))

	loop := NewGameLoop(window, im, session, pass, crosshair)
	closer.Bind(loop.Stop)
	loop.Run()
	return nil
}
