package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kmmndr/invisibility_cloak/internal/cloak"
	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

const (
	DefaultDevice           = "0"
	DefaultWarmupFrames     = 30
	DefaultWarmupDelaySec   = 3.0
	DefaultBackgroundPolicy = string(frame.PolicyLast)
	DefaultMorphKernelSize  = 5
	DefaultBlurKernelSize   = 5
	DefaultPollIntervalMs   = 10
	DefaultQuitKey          = "q"
	DefaultWindowName       = "Display"
)

var ErrInvalid = errors.New("invalid configuration")

// Options holds every tunable of a cloak run.
type Options struct {
	Device           string             `yaml:"device"`
	WarmupFrames     int                `yaml:"warmup_frames"`
	WarmupDelaySec   float64            `yaml:"warmup_delay_sec"`
	BackgroundPolicy string             `yaml:"background_policy"`
	Ranges           []cloak.ColorRange `yaml:"ranges"`
	MorphKernelSize  int                `yaml:"morph_kernel_size"`
	BlurKernelSize   int                `yaml:"blur_kernel_size"`
	PollIntervalMs   int                `yaml:"poll_interval_ms"`
	QuitKey          string             `yaml:"quit_key"`
	WindowName       string             `yaml:"window_name"`
	ShowMask         bool               `yaml:"show_mask"`
}

func Default() Options {
	return Options{
		Device:           DefaultDevice,
		WarmupFrames:     DefaultWarmupFrames,
		WarmupDelaySec:   DefaultWarmupDelaySec,
		BackgroundPolicy: DefaultBackgroundPolicy,
		Ranges:           cloak.RedRanges(),
		MorphKernelSize:  DefaultMorphKernelSize,
		BlurKernelSize:   DefaultBlurKernelSize,
		PollIntervalMs:   DefaultPollIntervalMs,
		QuitKey:          DefaultQuitKey,
		WindowName:       DefaultWindowName,
	}
}

// Load overlays the file at path on the defaults. The format follows the
// extension: .yaml/.yml or .ini. The result is validated.
func Load(path string) (Options, error) {
	opts := Default()

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = loadYAML(path, &opts)
	case ".ini":
		err = loadINI(path, &opts)
	default:
		return opts, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}
	if err != nil {
		return opts, err
	}

	return opts, opts.Validate()
}

func loadYAML(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (o Options) WarmupDelay() time.Duration {
	return time.Duration(o.WarmupDelaySec * float64(time.Second))
}

func (o Options) PollInterval() time.Duration {
	return time.Duration(o.PollIntervalMs) * time.Millisecond
}

func (o Options) Policy() frame.Policy {
	return frame.Policy(o.BackgroundPolicy)
}

func (o Options) Validate() error {
	var errs []error

	if o.Device == "" {
		errs = append(errs, errors.New("device must not be empty"))
	}
	if o.WarmupFrames < 1 {
		errs = append(errs, fmt.Errorf("warmup_frames must be at least 1, got %d", o.WarmupFrames))
	}
	if o.WarmupDelaySec < 0 {
		errs = append(errs, fmt.Errorf("warmup_delay_sec must not be negative, got %g", o.WarmupDelaySec))
	}
	if _, err := frame.ParsePolicy(o.BackgroundPolicy); err != nil {
		errs = append(errs, err)
	}
	if len(o.Ranges) == 0 {
		errs = append(errs, errors.New("at least one color range is required"))
	}
	for _, r := range o.Ranges {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.MorphKernelSize < 1 {
		errs = append(errs, fmt.Errorf("morph_kernel_size must be at least 1, got %d", o.MorphKernelSize))
	}
	if o.BlurKernelSize < 0 || (o.BlurKernelSize > 0 && o.BlurKernelSize%2 == 0) {
		errs = append(errs, fmt.Errorf("blur_kernel_size must be 0 or a positive odd number, got %d", o.BlurKernelSize))
	}
	if o.PollIntervalMs < 1 {
		errs = append(errs, fmt.Errorf("poll_interval_ms must be at least 1, got %d", o.PollIntervalMs))
	}
	if len(o.QuitKey) != 1 {
		errs = append(errs, fmt.Errorf("quit_key must be a single character, got %q", o.QuitKey))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
