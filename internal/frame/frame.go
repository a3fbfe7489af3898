package frame

import (
	"errors"

	"gocv.io/x/gocv"
)

var ErrEmpty = errors.New("frame is empty")

type Frame struct {
	frameIndex int
	mat        *gocv.Mat
}

func NewFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmpty
	}

	return &Frame{frameIndex: frameIndex, mat: mat}, nil
}

// derive wraps a Mat computed from f, releasing it if it came out empty.
func (f *Frame) derive(mat gocv.Mat) (*Frame, error) {
	derived, err := NewFrame(f.frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil, err
	}

	return derived, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

// HSV converts a BGR frame to OpenCV's 8-bit HSV encoding (H in 0..180).
func (f *Frame) HSV() (*Frame, error) {
	hsv := gocv.NewMat()
	gocv.CvtColor(*f.mat, &hsv, gocv.ColorBGRToHSV)

	return f.derive(hsv)
}

// Mirror flips the frame around its vertical axis.
func (f *Frame) Mirror() (*Frame, error) {
	mirrored := gocv.NewMat()
	gocv.Flip(*f.mat, &mirrored, 1)

	return f.derive(mirrored)
}

func (f *Frame) Clone() (*Frame, error) {
	return f.derive(f.mat.Clone())
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Channels() int {
	return f.mat.Channels()
}

func (f *Frame) Pixels() int {
	return f.Height() * f.Width()
}

// SameSize reports whether both frames share width and height.
func (f *Frame) SameSize(other *Frame) bool {
	return f.Width() == other.Width() && f.Height() == other.Height()
}

// SameShape additionally requires the same element type, which covers the
// channel count and bit depth.
func (f *Frame) SameShape(other *Frame) bool {
	return f.SameSize(other) && f.mat.Type() == other.mat.Type()
}

// CoveragePercentage is the share of non-zero pixels of a single channel
// frame, typically a mask.
func (f *Frame) CoveragePercentage() float64 {
	return float64(gocv.CountNonZero(*f.mat)) * 100.0 / float64(f.Pixels())
}

func (f *Frame) Close() {
	f.mat.Close()
}
