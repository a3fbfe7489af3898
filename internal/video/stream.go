package video

import (
	"fmt"

	"github.com/kmmndr/invisibility_cloak/internal/frame"

	"gocv.io/x/gocv"
)

// Stream is a mirrored frame source over a camera or a video file.
type Stream struct {
	capture    *gocv.VideoCapture
	device     string
	frameIndex int
	closed     bool
}

// OpenStream opens a camera when device is an integer index ("0", "1", ...)
// and a video file or URL otherwise.
func OpenStream(device string) (*Stream, error) {
	video, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("unable to open video device %q: %w", device, err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("unable to open video device %q", device)
	}

	return &Stream{capture: video, device: device}, nil
}

func (s *Stream) Device() string {
	return s.device
}

func (s *Stream) Fps() float64 {
	return s.capture.Get(gocv.VideoCaptureFPS)
}

// Read returns the next frame flipped horizontally. ok is false once the
// stream is exhausted or broken.
func (s *Stream) Read() (*frame.Frame, bool) {
	if s.closed {
		return nil, false
	}

	raw := gocv.NewMat()
	defer raw.Close()

	if ok := s.capture.Read(&raw); !ok || raw.Empty() {
		return nil, false
	}

	current, err := frame.NewFrame(s.frameIndex, &raw)
	if err != nil {
		return nil, false
	}

	mirrored, err := current.Mirror()
	if err != nil {
		return nil, false
	}
	s.frameIndex++

	return mirrored, true
}

func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	return s.capture.Close()
}
