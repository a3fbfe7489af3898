package cloak

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MaxHue is the upper end of the 8-bit OpenCV hue axis.
const MaxHue = 180

// HSV is a color in OpenCV's 8-bit HSV encoding: hue in 0..180,
// saturation and value in 0..255.
type HSV [3]uint8

func (c HSV) H() uint8 { return c[0] }

func (c HSV) Scalar() gocv.Scalar {
	return gocv.NewScalar(float64(c[0]), float64(c[1]), float64(c[2]), 0)
}

func (c HSV) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c[0], c[1], c[2])
}

// ColorRange is an inclusive box in HSV space.
type ColorRange struct {
	Lower HSV `yaml:"lower"`
	Upper HSV `yaml:"upper"`
}

func (r ColorRange) Contains(c HSV) bool {
	for i := range c {
		if c[i] < r.Lower[i] || c[i] > r.Upper[i] {
			return false
		}
	}
	return true
}

func (r ColorRange) Validate() error {
	for i := range r.Lower {
		if r.Lower[i] > r.Upper[i] {
			return fmt.Errorf("color range %s-%s: lower bound above upper bound", r.Lower, r.Upper)
		}
	}
	if r.Upper.H() > MaxHue {
		return fmt.Errorf("color range %s-%s: hue above %d", r.Lower, r.Upper, MaxHue)
	}
	return nil
}

func (r ColorRange) String() string {
	return r.Lower.String() + "-" + r.Upper.String()
}

// RedRanges covers red on both sides of the hue origin. The narrow hue bands
// keep skin tones out; the value floor still catches shadowed folds.
func RedRanges() []ColorRange {
	return []ColorRange{
		{Lower: HSV{0, 120, 70}, Upper: HSV{10, 255, 255}},
		{Lower: HSV{170, 120, 70}, Upper: HSV{180, 255, 255}},
	}
}
