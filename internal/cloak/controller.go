package cloak

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

type State int

const (
	StateInit State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type ControllerOptions struct {
	Device       string
	PollInterval time.Duration
	QuitKey      byte
	WindowName   string
	ShowMask     bool
}

// Controller drives the INIT -> RUNNING -> STOPPED cycle: it opens the
// source, captures the background, then processes and renders one frame per
// tick until the quit key, a cancelled context or a read failure.
type Controller struct {
	opts       ControllerOptions
	open       SourceOpener
	newDisplay DisplayFactory
	background *BackgroundCapture
	pipeline   *Pipeline
	runID      string
	state      State
	now        func() time.Time
	log        logrus.FieldLogger
}

func NewController(opts ControllerOptions, open SourceOpener, newDisplay DisplayFactory,
	background *BackgroundCapture, pipeline *Pipeline, logger logrus.FieldLogger) *Controller {
	runID := uuid.Must(uuid.NewV4()).String()

	return &Controller{
		opts:       opts,
		open:       open,
		newDisplay: newDisplay,
		background: background,
		pipeline:   pipeline,
		runID:      runID,
		state:      StateInit,
		now:        time.Now,
		log:        logger.WithField("run_id", runID),
	}
}

func (c *Controller) RunID() string {
	return c.runID
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) setState(s State) {
	c.state = s
	c.log.WithField("state", s.String()).Debug("State changed")
}

// Run blocks until the run stops. A quit key or a cancelled ctx ends the run
// without error; every other stop returns the cause. The source and the
// displays are released on every path.
func (c *Controller) Run(ctx context.Context) (*RunReport, error) {
	c.setState(StateInit)
	report := NewRunReport(c.runID, c.now())
	defer func() {
		report.finish(c.now())
		c.setState(StateStopped)
		c.log.WithFields(report.Fields()).Info("Run stopped")
	}()

	src, err := c.open(c.opts.Device)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			c.log.WithError(err).Warn("Unable to release source")
		}
	}()
	c.log.WithField("device", c.opts.Device).Info("Source opened")

	plate, err := c.background.Capture(ctx, src)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if plate != nil {
			plate.Close()
		}
		c.log.WithError(ctxErr).Info("Run interrupted during warm-up")
		return report, nil
	}
	if err != nil {
		return report, err
	}
	defer plate.Close()

	output := c.newDisplay(c.opts.WindowName)
	defer c.closeDisplay(output)

	var maskOutput Display
	if c.opts.ShowMask {
		maskOutput = c.newDisplay(c.opts.WindowName + " mask")
		defer c.closeDisplay(maskOutput)
	}

	c.setState(StateRunning)
	for {
		if err := ctx.Err(); err != nil {
			c.log.WithError(err).Info("Run interrupted")
			return report, nil
		}

		live, ok := src.Read()
		if !ok {
			return report, fmt.Errorf("%w: after %d frames", ErrFrameRead, report.Frames)
		}

		quit, err := c.tick(live, plate, output, maskOutput, report)
		live.Close()
		if err != nil {
			return report, err
		}
		if quit {
			c.log.Info("Quit requested")
			return report, nil
		}
	}
}

func (c *Controller) tick(live, plate *frame.Frame, output, maskOutput Display, report *RunReport) (bool, error) {
	composite, mask, err := c.pipeline.Process(live, plate)
	if err != nil {
		return false, err
	}
	defer composite.Close()
	defer mask.Close()

	report.observe(mask.CoveragePercentage())

	output.Show(composite)
	if maskOutput != nil {
		maskOutput.Show(mask)
	}

	key := output.WaitKey(c.opts.PollInterval)
	return key >= 0 && byte(key&0xFF) == c.opts.QuitKey, nil
}

func (c *Controller) closeDisplay(d Display) {
	if err := d.Close(); err != nil {
		c.log.WithError(err).Warn("Unable to close display")
	}
}
