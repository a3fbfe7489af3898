package cloak

import (
	"time"

	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

// Source produces frames until Read reports false.
type Source interface {
	Read() (*frame.Frame, bool)
	Close() error
}

// Display renders frames and reports key presses.
type Display interface {
	Show(f *frame.Frame)
	// WaitKey blocks for at most wait and returns the key pressed, or -1.
	WaitKey(wait time.Duration) int
	Close() error
}

type SourceOpener func(device string) (Source, error)

type DisplayFactory func(name string) Display
