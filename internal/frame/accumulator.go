package frame

import (
	"fmt"

	"gocv.io/x/gocv"
)

type Policy string

const (
	// PolicyLast keeps only the most recent frame.
	PolicyLast Policy = "last"
	// PolicyAverage keeps the per-pixel mean of every frame added.
	PolicyAverage Policy = "average"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyLast, PolicyAverage:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown background policy %q", s)
}

// Accumulator folds a sequence of frames into a single reference frame.
type Accumulator struct {
	policy   Policy
	count    int
	restarts int
	last   *Frame
	sumMat *gocv.Mat
}

func NewAccumulator(policy Policy) *Accumulator {
	sumMat := gocv.NewMat()

	return &Accumulator{
		policy: policy,
		sumMat: &sumMat,
	}
}

func (a *Accumulator) Count() int {
	return a.count
}

// Restarts counts how often a frame of a new shape discarded everything
// accumulated before it.
func (a *Accumulator) Restarts() int {
	return a.restarts
}

// Add records a copy of currentFrame; the caller keeps ownership of it. A
// frame whose shape differs from the previous ones starts the accumulation
// over from that frame.
func (a *Accumulator) Add(currentFrame *Frame) error {
	if a.last != nil && !a.last.SameShape(currentFrame) {
		a.reset()
		a.restarts++
	}

	clone, err := currentFrame.Clone()
	if err != nil {
		return err
	}
	if a.last != nil {
		a.last.Close()
	}
	a.last = clone

	if a.policy == PolicyAverage {
		if a.sumMat.Empty() {
			currentFrame.mat.ConvertTo(a.sumMat, gocv.MatTypeCV64F)
		} else {
			gocv.Accumulate(*currentFrame.mat, a.sumMat)
		}
	}
	a.count++

	return nil
}

// Result returns a new frame owned by the caller.
func (a *Accumulator) Result() (*Frame, error) {
	if a.count == 0 {
		return nil, ErrEmpty
	}

	if a.policy != PolicyAverage {
		return a.last.Clone()
	}

	mean := a.sumMat.Clone()
	defer mean.Close()
	mean.DivideFloat(float32(a.count))

	result := gocv.NewMat()
	mean.ConvertTo(&result, a.last.mat.Type())

	return a.last.derive(result)
}

func (a *Accumulator) reset() {
	if a.last != nil {
		a.last.Close()
		a.last = nil
	}
	a.sumMat.Close()
	sumMat := gocv.NewMat()
	a.sumMat = &sumMat
	a.count = 0
}

func (a *Accumulator) Close() {
	if a.last != nil {
		a.last.Close()
		a.last = nil
	}
	a.sumMat.Close()
}
