package netsync

import (
	"errors"
	"log"

	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/messages"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

// Context owns the complete synchronization state for one connection: clock,
// input buffer, predictor, reconciler, corrector, and remote interpolator.
// Exactly one snapshot stream feeds exactly one reconciler; UI and gameplay
// layers observe derived state through the accessors, never the transport.
//
// Lifecycle is tied to the connection, not to scene transitions: create it
// on join, drop it on disconnect.
type Context struct {
	cfg Config

	clock      *Clock
	buffer     *InputBuffer
	predictor  *Predictor
	reconciler *Reconciler
	corrector  *Corrector
	remote     *RemoteInterpolator

	localID  uint64
	nextSeq  uint64
	spawned  bool
	rendered struct{ x, y float64 }
	facing   float64
}

// NewContext assembles a sync context for a playable area.
func NewContext(cfg Config, bounds gamemath.Bounds) *Context {
	return &Context{
		cfg:        cfg,
		clock:      NewClock(cfg),
		buffer:     NewInputBuffer(),
		predictor:  NewPredictor(cfg, bounds),
		reconciler: NewReconciler(),
		corrector:  NewCorrector(cfg),
		remote:     NewRemoteInterpolator(cfg),
	}
}

// SetLocalID binds the controlled entity's network id, assigned at join.
func (c *Context) SetLocalID(id uint64) { c.localID = id }

// LocalID returns the controlled entity's network id.
func (c *Context) LocalID() uint64 { return c.localID }

// Clock exposes the time synchronizer (probe scheduling lives in the frame
// loop; see systems).
func (c *Context) Clock() *Clock { return c.clock }

// InitCollision forwards arena geometry to the predictor.
func (c *Context) InitCollision(walls []Wall, areaW, areaH int) {
	c.predictor.InitCollision(walls, areaW, areaH)
}

// IssueCommand converts one input sample into a timestamped, sequenced
// command, folds it into the prediction, and returns it for sending. It
// refuses to issue before the first clock sync completes.
func (c *Context) IssueCommand(moveX, moveY float64, mode netconfig.SpeedMode, flags netconfig.AuxFlags, aim float64) (messages.MoveCommand, error) {
	if !c.clock.Synchronized() {
		return messages.MoveCommand{}, ErrNotSynchronized
	}

	c.nextSeq++
	cmd := messages.MoveCommand{
		Sequence:        c.nextSeq,
		ServerTimestamp: c.clock.NowServer(),
		MoveX:           moveX,
		MoveY:           moveY,
		Speed:           mode,
		Flags:           flags,
		AimAngle:        aim,
	}

	c.buffer.Push(cmd)
	st := c.predictor.PredictFrame(cmd)
	c.facing = st.Facing
	return cmd, nil
}

// HandleLocalSnapshot feeds one authoritative snapshot for the controlled
// entity through reconciliation. Stale snapshots are dropped quietly; the
// first snapshot ever also seeds the rendered position so the corrector has
// nothing to blend.
func (c *Context) HandleLocalSnapshot(snap Snapshot) {
	st, err := c.reconciler.Reconcile(snap, c.buffer, c.predictor)
	if err != nil {
		if !errors.Is(err, ErrStaleSnapshot) {
			log.Printf("[netsync] reconcile: %v", err)
		}
		return
	}

	// A hard reset may have restarted the server-side sequence counter;
	// keep issuing from the acknowledged point.
	if c.buffer.LastIssued() == 0 && c.nextSeq != c.reconciler.AckedSequence() {
		c.nextSeq = c.reconciler.AckedSequence()
	}

	if !c.spawned {
		c.rendered.x, c.rendered.y = st.X, st.Y
		c.spawned = true
	}
	c.facing = st.Facing
}

// HandleRemoteSnapshot buffers a snapshot for a non-local entity.
func (c *Context) HandleRemoteSnapshot(snap Snapshot, localNowMs float64) {
	c.remote.OnSnapshot(snap.EntityID, snap, localNowMs)
}

// RenderLocal advances the corrected on-screen position by one render frame
// and returns it with the current facing.
func (c *Context) RenderLocal(dt float64) (x, y, facing float64) {
	st := c.predictor.State()
	c.rendered.x, c.rendered.y = c.corrector.Update(c.rendered.x, c.rendered.y, st.X, st.Y, dt)
	return c.rendered.x, c.rendered.y, c.facing
}

// RenderRemote returns the interpolated pose for a remote entity.
func (c *Context) RenderRemote(id uint64, localNowMs float64) (x, y, facing float64, ok bool) {
	return c.remote.Render(id, localNowMs)
}

// Maintain runs the per-frame housekeeping: input-buffer retention and
// remote-entity eviction. Returns ids of remote entities that timed out.
func (c *Context) Maintain(localNowMs float64) []uint64 {
	if c.clock.Synchronized() {
		if dropped := c.buffer.EvictStale(c.cfg.RetentionMs, c.clock.NowServer()); dropped > 0 {
			log.Printf("[netsync] retention horizon dropped %d pending commands", dropped)
		}
	}
	return c.remote.Evict(localNowMs)
}

// ForgetRemote drops a remote entity on explicit despawn.
func (c *Context) ForgetRemote(id uint64) { c.remote.Forget(id) }

// Predicted returns the current predicted state of the controlled entity.
// Gameplay systems combine this with AckedSequence to decide whether an
// effect is confirmed or locally predicted only.
func (c *Context) Predicted() PredictedState { return c.predictor.State() }

// AckedSequence returns the highest sequence the server has confirmed.
func (c *Context) AckedSequence() uint64 { return c.reconciler.AckedSequence() }

// IssuedSequence returns the highest sequence issued locally.
func (c *Context) IssuedSequence() uint64 { return c.nextSeq }

// PendingCommands returns how many commands await acknowledgment.
func (c *Context) PendingCommands() int { return c.buffer.Len() }
