package cloak

import (
	"image"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/kmmndr/invisibility_cloak/internal/frame"
)

var (
	bgrRed   = gocv.NewScalar(0, 0, 255, 0)
	bgrBlue  = gocv.NewScalar(255, 0, 0, 0)
	bgrGreen = gocv.NewScalar(0, 255, 0, 0)
	bgrGray  = gocv.NewScalar(128, 128, 128, 0)
)

func newSolid(t *testing.T, rows, cols int, s gocv.Scalar, mt gocv.MatType) *frame.Frame {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(s, rows, cols, mt)
	f, err := frame.NewFrame(0, &mat)
	require.NoError(t, err)

	return f
}

// solidBGR returns a frame closed automatically at the end of the test.
func solidBGR(t *testing.T, rows, cols int, s gocv.Scalar) *frame.Frame {
	t.Helper()

	f := newSolid(t, rows, cols, s, gocv.MatTypeCV8UC3)
	t.Cleanup(f.Close)

	return f
}

func solidMask(t *testing.T, rows, cols int) *frame.Frame {
	t.Helper()

	f := newSolid(t, rows, cols, gocv.NewScalar(0, 0, 0, 0), gocv.MatTypeCV8UC1)
	t.Cleanup(f.Close)

	return f
}

func paint(f *frame.Frame, rect image.Rectangle, s gocv.Scalar) {
	region := f.Mat().Region(rect)
	defer region.Close()
	region.SetTo(s)
}

func identical(t *testing.T, a, b *frame.Frame) bool {
	t.Helper()

	require.True(t, a.SameShape(b), "frames differ in shape")

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(*a.Mat(), *b.Mat(), &diff)

	return gocv.Norm(diff, gocv.NormInf) == 0
}

func nullLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// fakeSource serves solid frames. readable decides, per read attempt, whether
// the read succeeds; colorAt gives the frame color for that attempt.
type fakeSource struct {
	rows, cols int
	readable   func(i int) bool
	colorAt    func(i int) gocv.Scalar
	sizeAt     func(i int) (int, int)

	reads  int
	closes int
}

func newFakeSource(rows, cols int) *fakeSource {
	return &fakeSource{
		rows:     rows,
		cols:     cols,
		readable: func(int) bool { return true },
		colorAt:  func(int) gocv.Scalar { return bgrBlue },
	}
}

func (s *fakeSource) Read() (*frame.Frame, bool) {
	i := s.reads
	s.reads++
	if !s.readable(i) {
		return nil, false
	}

	rows, cols := s.rows, s.cols
	if s.sizeAt != nil {
		rows, cols = s.sizeAt(i)
	}

	mat := gocv.NewMatWithSizeFromScalar(s.colorAt(i), rows, cols, gocv.MatTypeCV8UC3)
	f, err := frame.NewFrame(i, &mat)
	if err != nil {
		mat.Close()
		return nil, false
	}
	return f, true
}

func (s *fakeSource) Close() error {
	s.closes++
	return nil
}

type fakeDisplay struct {
	name   string
	keys   func(call int) int
	shown  int
	waits  []time.Duration
	closes int
}

func (d *fakeDisplay) Show(*frame.Frame) {
	d.shown++
}

func (d *fakeDisplay) WaitKey(wait time.Duration) int {
	d.waits = append(d.waits, wait)
	if d.keys == nil {
		return -1
	}
	return d.keys(len(d.waits))
}

func (d *fakeDisplay) Close() error {
	d.closes++
	return nil
}
