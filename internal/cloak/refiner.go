package cloak

import (
	"image"

	"github.com/kmmndr/invisibility_cloak/internal/frame"

	"gocv.io/x/gocv"
)

// Refiner removes speckle from a mask with a morphological opening. Regions
// smaller than the structuring element disappear entirely.
type Refiner struct {
	kernelSize int
	kernel     gocv.Mat
}

func NewRefiner(kernelSize int) *Refiner {
	return &Refiner{
		kernelSize: kernelSize,
		kernel:     gocv.GetStructuringElement(gocv.MorphRect, image.Pt(kernelSize, kernelSize)),
	}
}

func (r *Refiner) KernelSize() int {
	return r.kernelSize
}

func (r *Refiner) Refine(mask *frame.Frame) (*frame.Frame, error) {
	refined := gocv.NewMat()
	gocv.MorphologyEx(*mask.Mat(), &refined, gocv.MorphOpen, r.kernel)

	result, err := frame.NewFrame(mask.FrameIndex(), &refined)
	if err != nil {
		refined.Close()
		return nil, err
	}
	return result, nil
}

func (r *Refiner) Close() {
	r.kernel.Close()
}
