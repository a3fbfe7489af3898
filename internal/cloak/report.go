package cloak

import (
	"time"

	"github.com/sirupsen/logrus"
)

type RunReport struct {
	RunID                  string  `json:"run_id"`
	Frames                 int     `json:"frames"`
	Duration               float64 `json:"duration"`
	Fps                    float64 `json:"fps"`
	MeanCoveragePercentage float64 `json:"mean_coverage_percentage"`

	started     time.Time
	coverageSum float64
}

func NewRunReport(runID string, started time.Time) *RunReport {
	return &RunReport{RunID: runID, started: started}
}

func (r *RunReport) observe(coveragePercentage float64) {
	r.Frames++
	r.coverageSum += coveragePercentage
}

func (r *RunReport) finish(now time.Time) {
	r.Duration = now.Sub(r.started).Seconds()
	if r.Duration > 0 {
		r.Fps = float64(r.Frames) / r.Duration
	}
	if r.Frames > 0 {
		r.MeanCoveragePercentage = r.coverageSum / float64(r.Frames)
	}
}

func (r *RunReport) Fields() logrus.Fields {
	return logrus.Fields{
		"frames":                   r.Frames,
		"duration":                 r.Duration,
		"fps":                      r.Fps,
		"mean_coverage_percentage": r.MeanCoveragePercentage,
	}
}
