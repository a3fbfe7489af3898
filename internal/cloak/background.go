package cloak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

// BackgroundCapture builds the background plate from the first frames of a
// source, after giving the camera time to settle exposure and white balance.
type BackgroundCapture struct {
	frames int
	delay  time.Duration
	policy frame.Policy
	sleep  func(ctx context.Context, d time.Duration) error
	log    logrus.FieldLogger
}

func NewBackgroundCapture(frames int, delay time.Duration, policy frame.Policy, logger logrus.FieldLogger) *BackgroundCapture {
	return &BackgroundCapture{
		frames: frames,
		delay:  delay,
		policy: policy,
		sleep:  sleepContext,
		log:    logger,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Capture reads the warm-up frames and returns the plate, owned by the
// caller. Unreadable frames are skipped; it fails only when none was read.
// If the frame size changes, the plate is rebuilt from the frames of the
// latest size. A cancelled ctx aborts the warm-up with ctx.Err().
func (bc *BackgroundCapture) Capture(ctx context.Context, src Source) (*frame.Frame, error) {
	if bc.delay > 0 {
		bc.log.WithField("delay", bc.delay.String()).Info("Waiting for camera to settle")
		if err := bc.sleep(ctx, bc.delay); err != nil {
			return nil, err
		}
	}

	acc := frame.NewAccumulator(bc.policy)
	defer acc.Close()

	failed := 0
	for i := 0; i < bc.frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current, ok := src.Read()
		if !ok {
			failed++
			continue
		}

		restarts := acc.Restarts()
		err := acc.Add(current)
		if acc.Restarts() > restarts {
			bc.log.WithFields(logrus.Fields{
				"width":  current.Width(),
				"height": current.Height(),
			}).Warn("Frame size changed during warm-up, restarting background")
		}
		current.Close()
		if err != nil {
			bc.log.WithError(err).Warn("Skipping warm-up frame")
			failed++
		}
	}

	plate, err := acc.Result()
	if errors.Is(err, frame.ErrEmpty) {
		return nil, fmt.Errorf("%w: none of %d warm-up frames could be read", ErrCaptureFailed, bc.frames)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	bc.log.WithFields(logrus.Fields{
		"frames":   acc.Count(),
		"skipped":  failed,
		"restarts": acc.Restarts(),
		"policy":   string(bc.policy),
		"width":    plate.Width(),
		"height":   plate.Height(),
	}).Info("Background captured")

	return plate, nil
}
