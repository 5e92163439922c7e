package systems

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stormfell/vantage-mp/config"
	"github.com/stormfell/vantage-mp/netsync"
	"github.com/stormfell/vantage-mp/network"
	"github.com/stormfell/vantage-mp/shared/netconfig"
	"github.com/yohamta/donburi/ecs"
)

type netInputState struct {
	lastMoveX, lastMoveY float64
	lastMode             netconfig.SpeedMode
	lastFlags            netconfig.AuxFlags
	lastSendTime         time.Time
}

// NewNetworkInputSystem returns an ECS system that samples keyboard and
// mouse state once per update, folds the resulting command into local
// prediction, and sends it to the server when the input changed or the
// resend interval elapsed.
func NewNetworkInputSystem(client *network.Client, sync *netsync.Context) func(*ecs.ECS) {
	state := &netInputState{}
	resendInterval := time.Duration(config.Net.ResendIntervalMs * float64(time.Millisecond))
	bindings := config.Input.Bindings

	return func(e *ecs.ECS) {
		var moveX, moveY float64
		if anyKeyPressed(bindings[config.ActionMoveLeft].Keys) {
			moveX -= 1
		}
		if anyKeyPressed(bindings[config.ActionMoveRight].Keys) {
			moveX += 1
		}
		if anyKeyPressed(bindings[config.ActionMoveUp].Keys) {
			moveY -= 1
		}
		if anyKeyPressed(bindings[config.ActionMoveDown].Keys) {
			moveY += 1
		}

		mode := netconfig.SpeedWalk
		if anyKeyPressed(bindings[config.ActionSneak].Keys) {
			mode = netconfig.SpeedSneak
		} else if anyKeyPressed(bindings[config.ActionSprint].Keys) {
			mode = netconfig.SpeedSprint
		}

		var flags netconfig.AuxFlags
		if anyKeyPressed(bindings[config.ActionAim].Keys) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			flags |= netconfig.FlagAiming
		}
		if anyKeyPressed(bindings[config.ActionFire].Keys) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			flags |= netconfig.FlagFiring
		}
		if anyKeyPressed(bindings[config.ActionInteract].Keys) {
			flags |= netconfig.FlagInteracting
		}

		aim := aimAngle(e, sync)

		cmd, err := sync.IssueCommand(moveX, moveY, mode, flags, aim)
		if err != nil {
			if !errors.Is(err, netsync.ErrNotSynchronized) {
				log.Printf("[netinput] issue: %v", err)
			}
			return
		}

		changed := moveX != state.lastMoveX || moveY != state.lastMoveY ||
			mode != state.lastMode || flags != state.lastFlags

		now := time.Now()
		if !changed && now.Sub(state.lastSendTime) < resendInterval {
			return
		}

		sent, err := client.SendCommand(cmd)
		if err != nil {
			log.Printf("[netinput] send error: %v", err)
			return
		}
		if !sent {
			return
		}

		state.lastMoveX, state.lastMoveY = moveX, moveY
		state.lastMode = mode
		state.lastFlags = flags
		state.lastSendTime = now
	}
}

// aimAngle returns the angle from the predicted player position to the
// cursor in world space.
func aimAngle(e *ecs.ECS, sync *netsync.Context) float64 {
	offX, offY := CameraOffset(e)
	cx, cy := ebiten.CursorPosition()
	worldX := float64(cx) + offX
	worldY := float64(cy) + offY

	st := sync.Predicted()
	half := netconfig.PlayerCollisionSize / 2
	return math.Atan2(worldY-(st.Y+half), worldX-(st.X+half))
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
