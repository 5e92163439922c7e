package netsync

import "math"

// Corrector is the only thing that touches the rendered position of the
// local entity. It closes the gap between what is on screen and the
// reconciler's freshly rederived prediction over several frames, so normal
// jitter never reads as a teleport. Runs every render frame, independent of
// network and input rates.
type Corrector struct {
	snapThreshold  float64
	correctionRate float64
	deadband       float64
}

// NewCorrector builds a corrector from tuning config.
func NewCorrector(cfg Config) *Corrector {
	return &Corrector{
		snapThreshold:  cfg.SnapThreshold,
		correctionRate: cfg.CorrectionRate,
		deadband:       cfg.Deadband,
	}
}

// Update returns the next rendered position. Error beyond the snap threshold
// snaps outright (blending across a teleport would look like sliding through
// geometry); error below the deadband is ignored; everything in between
// approaches the prediction exponentially without ever overshooting.
func (c *Corrector) Update(renderedX, renderedY, predictedX, predictedY, dt float64) (float64, float64) {
	errX := predictedX - renderedX
	errY := predictedY - renderedY
	dist := math.Hypot(errX, errY)

	if dist > c.snapThreshold {
		return predictedX, predictedY
	}
	if dist < c.deadband {
		return renderedX, renderedY
	}

	step := c.correctionRate * dt
	if step > 1 {
		step = 1
	}
	return renderedX + errX*step, renderedY + errY*step
}
