package registry

import (
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"dirt", "grass", "stone"}, r.Names())
	assert.Equal(t, []string{"dirt", "grass_side", "grass_top", "stone"}, r.TexturePaths())

	grass, ok := r.Get("grass")
	require.True(t, ok)
	tex := r.FaceTextures(grass)
	assert.Equal(t, "grass_top", tex.Top)
	assert.Equal(t, "dirt", tex.Bottom)
	assert.Equal(t, "grass_side", tex.Face(world.FaceEast))
}

func TestRegisterRejectsDuplicatesAndMissingFaces(t *testing.T) {
	r := New()
	_, err := r.Register("stone", world.Uniform("stone"))
	require.NoError(t, err)

	_, err = r.Register("stone", world.Uniform("stone"))
	assert.Error(t, err)

	_, err = r.Register("glass", world.FaceTextures{Top: "glass"})
	assert.Error(t, err)

	_, err = r.Register("", world.Uniform("x"))
	assert.Error(t, err)
}

func TestLoadDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := `blocks:
  - name: log
    side: log_side
    top: log_top
    bottom: log_top
  - name: planks
    texture: planks
  - name: furnace
    texture: furnace_side
    north: furnace_front
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r := New()
	n, err := r.LoadDefinitions(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	logBlock, ok := r.Get("log")
	require.True(t, ok)
	assert.Equal(t, world.Sided("log_top", "log_side", "log_top"), logBlock.Textures())

	furnace, _ := r.Get("furnace")
	assert.Equal(t, "furnace_front", furnace.Textures().North)
	assert.Equal(t, "furnace_side", furnace.Textures().South)
}

func TestLoadDefinitionsErrors(t *testing.T) {
	r := New()
	_, err := r.LoadDefinitions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  - name: half\n    top: x\n"), 0o644))
	_, err = r.LoadDefinitions(path)
	assert.Error(t, err)
}

func TestLoadExtendsDefaults(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), r.Names())

	path := filepath.Join(t.TempDir(), "blocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  - name: sand\n    texture: sand\n"), 0o644))
	r, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dirt", "grass", "sand", "stone"}, r.Names())

	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  - name: stone\n    texture: stone\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err, "redefining a default block")
}
