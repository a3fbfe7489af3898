package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/kmmndr/invisibility_cloak/internal/cloak"
)

const iniSection = "cloak"

// loadINI reads the [cloak] section. Color ranges are numbered keys:
//
//	range1_lower = 0,120,70
//	range1_upper = 10,255,255
//
// and replace the default ranges when range1_lower is present.
func loadINI(path string, opts *Options) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	section := cfg.Section(iniSection)

	opts.Device = section.Key("device").MustString(opts.Device)
	opts.WarmupFrames = section.Key("warmup_frames").MustInt(opts.WarmupFrames)
	opts.WarmupDelaySec = section.Key("warmup_delay_sec").MustFloat64(opts.WarmupDelaySec)
	opts.BackgroundPolicy = section.Key("background_policy").MustString(opts.BackgroundPolicy)
	opts.MorphKernelSize = section.Key("morph_kernel_size").MustInt(opts.MorphKernelSize)
	opts.BlurKernelSize = section.Key("blur_kernel_size").MustInt(opts.BlurKernelSize)
	opts.PollIntervalMs = section.Key("poll_interval_ms").MustInt(opts.PollIntervalMs)
	opts.QuitKey = section.Key("quit_key").MustString(opts.QuitKey)
	opts.WindowName = section.Key("window_name").MustString(opts.WindowName)
	opts.ShowMask = section.Key("show_mask").MustBool(opts.ShowMask)

	if !section.HasKey("range1_lower") {
		return nil
	}

	var ranges []cloak.ColorRange
	for i := 1; section.HasKey(fmt.Sprintf("range%d_lower", i)); i++ {
		lower, err := parseHSV(section, fmt.Sprintf("range%d_lower", i))
		if err != nil {
			return err
		}
		upper, err := parseHSV(section, fmt.Sprintf("range%d_upper", i))
		if err != nil {
			return err
		}
		ranges = append(ranges, cloak.ColorRange{Lower: lower, Upper: upper})
	}
	opts.Ranges = ranges

	return nil
}

func parseHSV(section *ini.Section, name string) (cloak.HSV, error) {
	var c cloak.HSV

	if !section.HasKey(name) {
		return c, fmt.Errorf("missing key %s in [%s]", name, iniSection)
	}
	values, err := section.Key(name).StrictInts(",")
	if err != nil {
		return c, fmt.Errorf("key %s: %w", name, err)
	}
	if len(values) != len(c) {
		return c, fmt.Errorf("key %s: expected %d values, got %d", name, len(c), len(values))
	}
	for i, v := range values {
		if v < 0 || v > 255 {
			return c, fmt.Errorf("key %s: value %d out of range 0..255", name, v)
		}
		c[i] = uint8(v)
	}

	return c, nil
}
