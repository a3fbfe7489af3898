package video

import (
	"time"

	"github.com/kmmndr/invisibility_cloak/internal/frame"

	"gocv.io/x/gocv"
)

type Window struct {
	window *gocv.Window
	closed bool
}

func NewWindow(name string) *Window {
	return &Window{window: gocv.NewWindow(name)}
}

func (w *Window) Show(f *frame.Frame) {
	w.window.IMShow(*f.Mat())
}

// WaitKey blocks for at most wait and returns the pressed key, or -1.
func (w *Window) WaitKey(wait time.Duration) int {
	delay := int(wait / time.Millisecond)
	if delay < 1 {
		delay = 1
	}

	return w.window.WaitKey(delay)
}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	return w.window.Close()
}
