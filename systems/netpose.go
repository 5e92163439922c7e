package systems

import (
	"time"

	"github.com/leap-fish/necs/esync"
	"github.com/stormfell/vantage-mp/netsync"
	"github.com/stormfell/vantage-mp/shared/netcomponents"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// frameDt is the fixed update step ebiten drives systems at.
const frameDt = 1.0 / 60.0

// NewNetPoseSystem returns the system that writes render poses each frame:
// the corrected position for the local player and the interpolated pose for
// every remote entity. It also evicts remotes that went silent past the
// timeout.
func NewNetPoseSystem(sync *netsync.Context, localNetID func() esync.NetworkId) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		nowMs := float64(time.Now().UnixNano()) / float64(time.Millisecond)

		for _, id := range sync.Maintain(nowMs) {
			entity := esync.FindByNetworkId(e.World, esync.NetworkId(id))
			if e.World.Valid(entity) {
				e.World.Entry(entity).Remove()
			}
		}

		localID := localNetID()
		esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
			idPtr := esync.GetNetworkId(entry)
			if idPtr == nil || !entry.HasComponent(netcomponents.NetPosition) {
				return
			}
			pos := netcomponents.NetPosition.Get(entry)

			var x, y, facing float64
			if *idPtr == localID {
				x, y, facing = sync.RenderLocal(frameDt)
			} else {
				var ok bool
				x, y, facing, ok = sync.RenderRemote(uint64(*idPtr), nowMs)
				if !ok {
					return
				}
			}

			pos.X = x
			pos.Y = y
			if entry.HasComponent(netcomponents.NetPlayerState) {
				netcomponents.NetPlayerState.Get(entry).Facing = facing
			}
		})
	}
}
