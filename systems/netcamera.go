package systems

import (
	"math"

	"github.com/leap-fish/necs/esync"
	"github.com/stormfell/vantage-mp/components"
	"github.com/stormfell/vantage-mp/config"
	"github.com/stormfell/vantage-mp/shared/netcomponents"
	"github.com/yohamta/donburi/ecs"
)

// NewNetCameraSystem returns an update system that follows the local player
// and clamps the view to the arena bounds.
func NewNetCameraSystem(localNetID func() esync.NetworkId) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		cameraEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		camera := components.Camera.Get(cameraEntry)

		arenaEntry, ok := components.Arena.First(e.World)
		if !ok {
			return
		}
		arenaData := components.Arena.Get(arenaEntry)
		if arenaData.Current == nil {
			return
		}

		entity := esync.FindByNetworkId(e.World, localNetID())
		if !e.World.Valid(entity) {
			return
		}
		entry := e.World.Entry(entity)
		if !entry.HasComponent(netcomponents.NetPosition) {
			return
		}
		pos := netcomponents.NetPosition.Get(entry)

		zoom := camera.Zoom
		if zoom == 0 {
			zoom = 1.0
		}
		visibleW := float64(config.C.Width) / zoom
		visibleH := float64(config.C.Height) / zoom

		minX, maxX := visibleW/2, float64(arenaData.Current.Width)-visibleW/2
		minY, maxY := visibleH/2, float64(arenaData.Current.Height)-visibleH/2
		if minX > maxX {
			minX = float64(arenaData.Current.Width) / 2
			maxX = minX
		}
		if minY > maxY {
			minY = float64(arenaData.Current.Height) / 2
			maxY = minY
		}

		targetX := math.Max(minX, math.Min(maxX, pos.X))
		targetY := math.Max(minY, math.Min(maxY, pos.Y))

		camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
		camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
	}
}

// CameraOffset returns the world-space coordinate of the screen's top-left
// corner, for converting between screen and world positions.
func CameraOffset(e *ecs.ECS) (float64, float64) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return 0, 0
	}
	camera := components.Camera.Get(cameraEntry)
	return camera.Position.X - float64(config.C.Width)/2,
		camera.Position.Y - float64(config.C.Height)/2
}
