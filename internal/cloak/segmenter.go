package cloak

import (
	"image"

	"github.com/kmmndr/invisibility_cloak/internal/frame"

	"gocv.io/x/gocv"
)

const maskSelected = 255

// Segmenter marks the pixels of a frame whose color falls in any of its
// ranges.
type Segmenter struct {
	ranges   []ColorRange
	blurSize int
}

// NewSegmenter smooths saturation and value with a blurSize x blurSize
// Gaussian kernel before thresholding; blurSize 0 disables smoothing.
func NewSegmenter(ranges []ColorRange, blurSize int) *Segmenter {
	return &Segmenter{
		ranges:   append([]ColorRange(nil), ranges...),
		blurSize: blurSize,
	}
}

func (s *Segmenter) Ranges() []ColorRange {
	return append([]ColorRange(nil), s.ranges...)
}

// Classify is the per-pixel rule Segment applies to every pixel.
func (s *Segmenter) Classify(c HSV) bool {
	for _, r := range s.ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Segment returns a single channel mask of live's size where selected
// pixels are 255 and all others 0.
func (s *Segmenter) Segment(live *frame.Frame) (*frame.Frame, error) {
	hsv, err := live.HSV()
	if err != nil {
		return nil, err
	}
	defer hsv.Close()

	return s.segmentHSV(hsv)
}

func (s *Segmenter) segmentHSV(hsv *frame.Frame) (*frame.Frame, error) {
	smoothed := s.smooth(hsv)
	defer smoothed.Close()

	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), hsv.Height(), hsv.Width(), gocv.MatTypeCV8UC1)

	rangeMask := gocv.NewMat()
	defer rangeMask.Close()

	for _, r := range s.ranges {
		gocv.InRangeWithScalar(smoothed, r.Lower.Scalar(), r.Upper.Scalar(), &rangeMask)
		gocv.BitwiseOr(mask, rangeMask, &mask)
	}

	result, err := frame.NewFrame(hsv.FrameIndex(), &mask)
	if err != nil {
		mask.Close()
		return nil, err
	}
	return result, nil
}

// smooth blurs the saturation and value channels only. Hue is circular, so
// averaging across the 0/180 seam would invent hues that belong to neither
// side.
func (s *Segmenter) smooth(hsv *frame.Frame) gocv.Mat {
	if s.blurSize <= 0 {
		return hsv.Mat().Clone()
	}

	channels := gocv.Split(*hsv.Mat())
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()

	kernel := image.Pt(s.blurSize, s.blurSize)
	for i := 1; i < len(channels); i++ {
		gocv.GaussianBlur(channels[i], &channels[i], kernel, 0, 0, gocv.BorderDefault)
	}

	merged := gocv.NewMat()
	gocv.Merge(channels, &merged)

	return merged
}
