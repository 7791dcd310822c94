package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/gpu"
	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, size int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func pixel(pix []byte, size, x, y int) color.RGBA {
	i := (y*size + x) * 4
	return color.RGBA{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestLoaderScalesToLayerSize(t *testing.T) {
	dir := t.TempDir()
	green := color.RGBA{G: 200, A: 255}
	writePNG(t, dir, "grass_top.png", 32, green)

	l := NewLoader(dir, 16)
	pix := l.Load("grass_top")
	require.Len(t, pix, 16*16*4)
	assert.Equal(t, green, pixel(pix, 16, 0, 0))
	assert.Equal(t, green, pixel(pix, 16, 15, 15))
}

func TestLoaderFallbackForMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))

	l := NewLoader(dir, 4)
	for _, name := range []string{"missing", "broken"} {
		pix := l.Load(name)
		require.Len(t, pix, 4*4*4, name)
		assert.Equal(t, FallbackColor, pixel(pix, 4, 3, 2), name)
	}
	assert.Equal(t, 2, l.Stats().Fallbacks)
}

func TestLoaderCachesAndPreloads(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "stone.png", 16, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	l := NewLoader(dir, 16)
	failed := l.Preload([]string{"stone", "dirt"})
	assert.Equal(t, 1, failed)

	first := l.Load("stone")
	second := l.Load("stone")
	assert.Same(t, &first[0], &second[0])

	st := l.Stats()
	assert.Equal(t, 2, st.Cached)
	assert.Equal(t, 2, st.Misses)
	assert.Equal(t, 2, st.Hits)
}

func TestScanTextureNames(t *testing.T) {
	grass := world.NewBlockType("grass", world.Sided("grass_top", "grass_side", "dirt"))
	dirt := world.NewBlockType("dirt", world.Uniform("dirt"))
	blocks := []*world.BlockType{nil, grass, dirt, nil, grass}

	assert.Equal(t, []string{"dirt", "grass_side", "grass_top"}, ScanTextureNames(blocks))
	assert.Empty(t, ScanTextureNames(make([]*world.BlockType, 8)))
}

func TestBuildChunkAtlas(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	writePNG(t, dir, "b.png", 2, red)

	dev := gpu.NewMemoryDevice()
	l := NewLoader(dir, 2)
	atlas := BuildChunkAtlas(dev, l, "chunk", []string{"b", "a", "b"})
	require.NotNil(t, atlas)

	assert.Equal(t, 2, atlas.Len())
	assert.Equal(t, 2, atlas.Texture.Layers())
	assert.Equal(t, []string{"a", "b"}, atlas.Names())

	layer, ok := atlas.Layer("b")
	require.True(t, ok)
	assert.Equal(t, uint32(1), layer)
	assert.Equal(t, red, pixel(dev.Layer(atlas.Texture, 1), 2, 1, 1))
	assert.Equal(t, FallbackColor, pixel(dev.Layer(atlas.Texture, 0), 2, 0, 0))

	_, ok = atlas.Layer("c")
	assert.False(t, ok)

	assert.Nil(t, BuildChunkAtlas(dev, l, "empty", nil))
	assert.Equal(t, 1, dev.LiveTextures())
}
