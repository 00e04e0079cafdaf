package main

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/pixelcore"
	"github.com/BeatGlow/pixelcore/framebuffer"
	"github.com/BeatGlow/pixelcore/pixel"
)

func TestNewKernel(t *testing.T) {
	for _, name := range []string{"box", "adaptive", "dpid", "ssim", "BOX"} {
		k, err := newKernel(name, 3, float32(math.NaN()))
		require.NoError(t, err, name)
		x, y := k.Ratio()
		assert.Equal(t, 3, x)
		assert.Equal(t, 3, y)
	}
	_, err := newKernel("lanczos", 2, 0)
	assert.Error(t, err)
	_, err = newKernel("box", 7, 0)
	assert.Error(t, err)
}

func TestParseMetric(t *testing.T) {
	for _, name := range []string{"euclidean", "manhattan", "chebyshev", "weighted-euclidean"} {
		m, err := parseMetric(name)
		require.NoError(t, err, name)
		assert.NotNil(t, m)
	}
	_, err := parseMetric("cosine")
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	o, err := parseOrder("LE")
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, o)
	_, err = parseOrder("middle")
	assert.Error(t, err)
}

func TestDumpers(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.White)
	for name, dump := range dumpers {
		var buf bytes.Buffer
		require.NoError(t, dump(&buf, src, pixelcore.Rotate90, binary.BigEndian), name)

		info, err := framebuffer.ReadInfo(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err, name)
		assert.Equal(t, name, info.Format.String())
		assert.Equal(t, 2, info.Width, name)
		assert.Equal(t, 3, info.Height, name)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img, err := pixel.NewBitmap[pixel.RGBA32](4, 4)
	require.NoError(t, err)
	img.Fill(color.White)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		name = filepath.Join(dir, name)
		require.NoError(t, save(name, img))
		loaded, err := load(name)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), loaded.Bounds())
		r, _, _, a := loaded.At(1, 1).RGBA()
		assert.Equal(t, uint32(0xffff), r)
		assert.Equal(t, uint32(0xffff), a)
	}
}

func TestRotated(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	out, err := rotated[pixel.RGBA32](img, pixelcore.Rotate270)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 4), out.Bounds())

	same, err := rotated[pixel.RGBA32](img, pixelcore.NoRotation)
	require.NoError(t, err)
	assert.Same(t, img, same.(*image.RGBA))
}
