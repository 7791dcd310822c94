package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load gets an empty path.
const EnvConfigPath = "MINIVOXEL_CONFIG"

// Config is the root of the YAML configuration file.
type Config struct {
	Render   RenderConfig  `yaml:"render"`
	Meshing  MeshingConfig `yaml:"meshing"`
	Textures TextureConfig `yaml:"textures"`
	World    WorldConfig   `yaml:"world"`
	Log      LogConfig     `yaml:"log"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Window   WindowConfig  `yaml:"window"`
}

type RenderConfig struct {
	Distance      int `yaml:"distance"`
	TasksPerFrame int `yaml:"tasks_per_frame"`
	FPSLimit      int `yaml:"fps_limit"`
}

type MeshingConfig struct {
	Workers        int `yaml:"workers"`
	TaskQueue      int `yaml:"task_queue"`
	ResultQueue    int `yaml:"result_queue"`
	InitialBuffers int `yaml:"initial_buffers"`
}

type TextureConfig struct {
	Dir       string `yaml:"dir"`
	LayerSize int    `yaml:"layer_size"`
	Blocks    string `yaml:"blocks"` // optional block definition file
}

type WorldConfig struct {
	Seed       int64   `yaml:"seed"`
	BaseHeight int     `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the /metrics endpoint
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Distance: 5, TasksPerFrame: 4, FPSLimit: 120},
		Meshing: MeshingConfig{
			Workers:        2,
			TaskQueue:      256,
			ResultQueue:    256,
			InitialBuffers: 64,
		},
		Textures: TextureConfig{Dir: "assets/textures/blocks", LayerSize: 16},
		World:    WorldConfig{Seed: 12133, BaseHeight: 64, Amplitude: 32},
		Log:      LogConfig{Level: "info"},
		Metrics:  MetricsConfig{Addr: ":2112"},
		Window:   WindowConfig{Width: 1280, Height: 720, Title: "mini-voxel"},
	}
}

// Load reads a YAML config on top of Default. If path is empty it falls back
// to $MINIVOXEL_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be clamped into a sane range.
func (c *Config) Validate() error {
	switch {
	case c.Meshing.Workers < 1:
		return fmt.Errorf("meshing.workers must be at least 1, got %d", c.Meshing.Workers)
	case c.Meshing.TaskQueue < 1:
		return fmt.Errorf("meshing.task_queue must be at least 1, got %d", c.Meshing.TaskQueue)
	case c.Meshing.ResultQueue < 1:
		return fmt.Errorf("meshing.result_queue must be at least 1, got %d", c.Meshing.ResultQueue)
	case c.Meshing.InitialBuffers < 0:
		return fmt.Errorf("meshing.initial_buffers must not be negative, got %d", c.Meshing.InitialBuffers)
	case c.Textures.LayerSize < 1:
		return fmt.Errorf("textures.layer_size must be positive, got %d", c.Textures.LayerSize)
	}
	return nil
}
