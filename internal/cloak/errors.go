package cloak

import "errors"

var (
	// ErrSourceUnavailable means the camera or video file could not be opened.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrCaptureFailed means no background frame was read during warm-up.
	ErrCaptureFailed = errors.New("background capture failed")
	// ErrFrameRead means a live frame could not be read while running.
	ErrFrameRead = errors.New("frame read failed")
	// ErrShapeMismatch means frames or masks of different dimensions were combined.
	ErrShapeMismatch = errors.New("frame shape mismatch")
)
