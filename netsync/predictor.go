package netsync

import (
	"github.com/solarlune/resolv"
	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/messages"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

const tagWall = "wall"

// PredictedState is the locally derived kinematic state of the controlled
// entity. The reconciler may overwrite it wholesale; nothing else mutates it
// outside Apply.
type PredictedState = gamemath.MoveState

// Wall is an axis-aligned solid rectangle in the playable area.
type Wall struct {
	X, Y, W, H float64
}

// Predictor applies commands to a shadow copy of the controlled entity's
// kinematic state using the exact integration rule the server uses, so a
// replay over the same commands lands on the same result. Apply depends only
// on its arguments and the static collision geometry.
type Predictor struct {
	state  PredictedState
	dt     float64
	bounds gamemath.Bounds

	space     *resolv.Space
	playerObj *resolv.Object
}

// NewPredictor returns a predictor with no collision geometry; movement is
// clamped to bounds only until InitCollision is called.
func NewPredictor(cfg Config, bounds gamemath.Bounds) *Predictor {
	return &Predictor{
		dt:     cfg.CommandDt,
		bounds: bounds,
	}
}

// InitCollision builds a resolv space from the arena's wall tiles so
// prediction resolves against the same solids the server does.
func (p *Predictor) InitCollision(walls []Wall, areaW, areaH int) {
	p.space = resolv.NewSpace(areaW, areaH, 16, 16)

	for _, w := range walls {
		obj := resolv.NewObject(w.X, w.Y, w.W, w.H, tagWall)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.H))
		p.space.Add(obj)
	}

	size := float64(netconfig.PlayerCollisionSize)
	p.playerObj = resolv.NewObject(p.state.X, p.state.Y, size, size, "player")
	p.playerObj.SetShape(resolv.NewRectangle(0, 0, size, size))
	p.space.Add(p.playerObj)
}

// Apply folds one command into a base state over a fixed step. Pure with
// respect to its inputs: no wall clock, no accumulated state beyond the
// static collision space.
func (p *Predictor) Apply(base PredictedState, cmd messages.MoveCommand, dt float64) PredictedState {
	st := gamemath.Step(base, cmd.MoveX, cmd.MoveY, cmd.Speed, cmd.Flags, cmd.AimAngle, dt, p.bounds)

	if p.playerObj != nil {
		x, y := p.moveWithWalls(base.X, base.Y, st.VelX*dt, st.VelY*dt)
		st.X, st.Y = p.bounds.Clamp(x, y)
	}
	return st
}

// PredictFrame is the hot path: folds a freshly issued command into the
// current predicted state.
func (p *Predictor) PredictFrame(cmd messages.MoveCommand) PredictedState {
	p.state = p.Apply(p.state, cmd, p.dt)
	return p.state
}

// State returns the current predicted state.
func (p *Predictor) State() PredictedState { return p.state }

// Reset overwrites the predicted state wholesale. Called by the reconciler
// after a replay pass and on spawn.
func (p *Predictor) Reset(st PredictedState) {
	p.state = st
	if p.playerObj != nil {
		p.playerObj.X = st.X
		p.playerObj.Y = st.Y
		p.playerObj.Update()
	}
}

// moveWithWalls moves the collision box per axis, stopping at wall contacts.
func (p *Predictor) moveWithWalls(x, y, dx, dy float64) (float64, float64) {
	p.playerObj.X = x
	p.playerObj.Y = y
	p.playerObj.Update()

	if dx != 0 {
		if check := p.playerObj.Check(dx, 0, tagWall); check != nil {
			if walls := check.ObjectsByTags(tagWall); len(walls) > 0 {
				dx = check.ContactWithObject(walls[0]).X()
			}
		}
		p.playerObj.X += dx
		p.playerObj.Update()
	}

	if dy != 0 {
		if check := p.playerObj.Check(0, dy, tagWall); check != nil {
			if walls := check.ObjectsByTags(tagWall); len(walls) > 0 {
				dy = check.ContactWithObject(walls[0]).Y()
			}
		}
		p.playerObj.Y += dy
		p.playerObj.Update()
	}

	return p.playerObj.X, p.playerObj.Y
}
