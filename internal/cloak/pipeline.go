package cloak

import (
	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

// Pipeline chains segmentation, refinement and compositing for one frame.
type Pipeline struct {
	segmenter *Segmenter
	refiner   *Refiner
}

func NewPipeline(segmenter *Segmenter, refiner *Refiner) *Pipeline {
	return &Pipeline{segmenter: segmenter, refiner: refiner}
}

// Process returns the composited output and the refined mask. Both are owned
// by the caller.
func (p *Pipeline) Process(live, plate *frame.Frame) (*frame.Frame, *frame.Frame, error) {
	mask, err := p.segmenter.Segment(live)
	if err != nil {
		return nil, nil, err
	}
	defer mask.Close()

	refined, err := p.refiner.Refine(mask)
	if err != nil {
		return nil, nil, err
	}

	output, err := Composite(live, plate, refined)
	if err != nil {
		refined.Close()
		return nil, nil, err
	}

	return output, refined, nil
}

func (p *Pipeline) Close() {
	p.refiner.Close()
}
