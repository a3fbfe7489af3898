package cloak

import (
	"fmt"

	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

// Composite returns a new frame taking plate pixels where mask is non-zero
// and live pixels everywhere else.
func Composite(live, plate, mask *frame.Frame) (*frame.Frame, error) {
	if !live.SameShape(plate) {
		return nil, fmt.Errorf("%w: live %dx%dx%d, background %dx%dx%d", ErrShapeMismatch,
			live.Width(), live.Height(), live.Channels(), plate.Width(), plate.Height(), plate.Channels())
	}
	if !live.SameSize(mask) || mask.Channels() != 1 {
		return nil, fmt.Errorf("%w: live %dx%d, mask %dx%dx%d", ErrShapeMismatch,
			live.Width(), live.Height(), mask.Width(), mask.Height(), mask.Channels())
	}

	output := live.Mat().Clone()
	plate.Mat().CopyToWithMask(&output, *mask.Mat())

	result, err := frame.NewFrame(live.FrameIndex(), &output)
	if err != nil {
		output.Close()
		return nil, err
	}
	return result, nil
}
