package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmmndr/invisibility_cloak/internal/cloak"
	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	opts := Default()

	require.NoError(t, opts.Validate())
	assert.Equal(t, "0", opts.Device)
	assert.Equal(t, 30, opts.WarmupFrames)
	assert.Equal(t, 3*time.Second, opts.WarmupDelay())
	assert.Equal(t, 10*time.Millisecond, opts.PollInterval())
	assert.Equal(t, frame.PolicyLast, opts.Policy())
	assert.Equal(t, cloak.RedRanges(), opts.Ranges)
	assert.False(t, opts.ShowMask)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "cloak.yaml", `
device: clip.mp4
warmup_frames: 10
warmup_delay_sec: 0.5
background_policy: average
morph_kernel_size: 3
show_mask: true
ranges:
  - lower: [100, 150, 50]
    upper: [130, 255, 255]
`)

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", opts.Device)
	assert.Equal(t, 10, opts.WarmupFrames)
	assert.Equal(t, 500*time.Millisecond, opts.WarmupDelay())
	assert.Equal(t, frame.PolicyAverage, opts.Policy())
	assert.Equal(t, 3, opts.MorphKernelSize)
	assert.True(t, opts.ShowMask)
	assert.Equal(t, []cloak.ColorRange{
		{Lower: cloak.HSV{100, 150, 50}, Upper: cloak.HSV{130, 255, 255}},
	}, opts.Ranges)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultBlurKernelSize, opts.BlurKernelSize)
	assert.Equal(t, DefaultQuitKey, opts.QuitKey)
}

func TestLoad_YAMLOutOfRangeChannel(t *testing.T) {
	path := writeFile(t, "cloak.yml", `
ranges:
  - lower: [0, 120, 70]
    upper: [10, 300, 255]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_INI(t *testing.T) {
	path := writeFile(t, "cloak.ini", `
[cloak]
device = 1
warmup_frames = 45
poll_interval_ms = 20
quit_key = x
window_name = Cloak
range1_lower = 0,100,60
range1_upper = 8,255,255
range2_lower = 172,100,60
range2_upper = 180,255,255
`)

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", opts.Device)
	assert.Equal(t, 45, opts.WarmupFrames)
	assert.Equal(t, 20*time.Millisecond, opts.PollInterval())
	assert.Equal(t, "x", opts.QuitKey)
	assert.Equal(t, "Cloak", opts.WindowName)
	assert.Equal(t, DefaultWarmupDelaySec, opts.WarmupDelaySec)
	assert.Equal(t, []cloak.ColorRange{
		{Lower: cloak.HSV{0, 100, 60}, Upper: cloak.HSV{8, 255, 255}},
		{Lower: cloak.HSV{172, 100, 60}, Upper: cloak.HSV{180, 255, 255}},
	}, opts.Ranges)
}

func TestLoad_INIDefaultsRanges(t *testing.T) {
	path := writeFile(t, "cloak.ini", "[cloak]\nshow_mask = true\n")

	opts, err := Load(path)
	require.NoError(t, err)

	assert.True(t, opts.ShowMask)
	assert.Equal(t, cloak.RedRanges(), opts.Ranges)
}

func TestLoad_INIBadRange(t *testing.T) {
	tests := map[string]string{
		"missing upper": "[cloak]\nrange1_lower = 0,120,70\n",
		"two values":    "[cloak]\nrange1_lower = 0,120\nrange1_upper = 10,255,255\n",
		"not a number":  "[cloak]\nrange1_lower = 0,abc,70\nrange1_upper = 10,255,255\n",
		"too large":     "[cloak]\nrange1_lower = 0,120,70\nrange1_upper = 10,256,255\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "cloak.ini", content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "cloak.toml", "device = 0"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "cloak.yaml", "warmup_frames: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		errMsg string
	}{
		{"empty device", func(o *Options) { o.Device = "" }, "device"},
		{"negative delay", func(o *Options) { o.WarmupDelaySec = -1 }, "warmup_delay_sec"},
		{"unknown policy", func(o *Options) { o.BackgroundPolicy = "median" }, "median"},
		{"no ranges", func(o *Options) { o.Ranges = nil }, "color range"},
		{"inverted range", func(o *Options) {
			o.Ranges = []cloak.ColorRange{{Lower: cloak.HSV{20, 0, 0}, Upper: cloak.HSV{10, 255, 255}}}
		}, "lower bound"},
		{"zero morph kernel", func(o *Options) { o.MorphKernelSize = 0 }, "morph_kernel_size"},
		{"even blur kernel", func(o *Options) { o.BlurKernelSize = 4 }, "blur_kernel_size"},
		{"zero poll interval", func(o *Options) { o.PollIntervalMs = 0 }, "poll_interval_ms"},
		{"long quit key", func(o *Options) { o.QuitKey = "quit" }, "quit_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.modify(&opts)

			err := opts.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	opts := Default()
	opts.BlurKernelSize = 0
	assert.NoError(t, opts.Validate())
}
