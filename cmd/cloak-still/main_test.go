package main

import (
	"image"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/kmmndr/invisibility_cloak/internal/config"
	"github.com/kmmndr/invisibility_cloak/internal/frame"
	"github.com/kmmndr/invisibility_cloak/internal/video"
)

func writeStill(t *testing.T, path string, paint func(*gocv.Mat)) {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), 40, 60, gocv.MatTypeCV8UC3)
	paint(&mat)

	f, err := frame.NewFrame(0, &mat)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, video.SaveImage(path, f))
}

func TestComposite(t *testing.T) {
	dir := t.TempDir()
	backgroundPath := filepath.Join(dir, "background.png")
	imagePath := filepath.Join(dir, "image.png")
	outputPath := filepath.Join(dir, "output.png")
	maskPath := filepath.Join(dir, "mask.png")

	writeStill(t, backgroundPath, func(*gocv.Mat) {})
	writeStill(t, imagePath, func(m *gocv.Mat) {
		region := m.Region(image.Rect(10, 10, 40, 30))
		defer region.Close()
		region.SetTo(gocv.NewScalar(0, 0, 255, 0))
	})

	logger, hook := logtest.NewNullLogger()
	require.NoError(t, composite(config.Default(), backgroundPath, imagePath, outputPath, maskPath, logger))

	output, err := video.LoadImage(outputPath)
	require.NoError(t, err)
	defer output.Close()
	assert.Equal(t, []uint8{255, 0, 0}, []uint8(output.Mat().GetVecbAt(20, 25)))

	mask := gocv.IMRead(maskPath, gocv.IMReadGrayScale)
	defer mask.Close()
	assert.Equal(t, 30*20, gocv.CountNonZero(mask))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Composite written", hook.LastEntry().Message)
}

func TestComposite_MissingBackground(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := t.TempDir()

	err := composite(config.Default(), filepath.Join(dir, "none.png"), filepath.Join(dir, "image.png"),
		filepath.Join(dir, "out.png"), "", logger)
	assert.ErrorIs(t, err, frame.ErrEmpty)
}
