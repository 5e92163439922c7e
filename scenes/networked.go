package scenes

import (
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/stormfell/vantage-mp/arena"
	"github.com/stormfell/vantage-mp/components"
	"github.com/stormfell/vantage-mp/netsync"
	"github.com/stormfell/vantage-mp/network"
	"github.com/stormfell/vantage-mp/shared/netcomponents"
	"github.com/stormfell/vantage-mp/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/stormfell/vantage-mp/config"
)

// NetworkedScene runs an online match: it owns the sync context for the
// connection and feeds server snapshots through it every frame.
type NetworkedScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	syncCtx      *netsync.Context
	hud          *systems.NetworkHUD
	once         sync.Once
	presentIDs   map[esync.NetworkId]bool
}

func NewNetworkedScene(sc SceneChanger, client *network.Client) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		netClient:    client,
		presentIDs:   make(map[esync.NetworkId]bool),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.netClient.State()
	if state == network.StateDisconnected || state == network.StateError {
		log.Println("[networked] disconnected, returning to connect screen")
		ns.netClient.Disconnect()
		ns.sceneChanger.ChangeScene(NewConnectScene(ns.sceneChanger))
		return
	}

	if snap := ns.netClient.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())

	a, err := arena.Load(ns.netClient.Arena())
	if err != nil {
		log.Printf("[networked] arena %q unavailable: %v", ns.netClient.Arena(), err)
		names := arena.Names()
		if len(names) == 0 {
			panic("no arenas bundled")
		}
		a, err = arena.Load(names[0])
		if err != nil {
			panic("failed to load fallback arena: " + err.Error())
		}
	}

	arenaEntry := ns.ecsWorld.World.Entry(ns.ecsWorld.World.Create(components.Arena))
	components.Arena.SetValue(arenaEntry, components.ArenaData{Current: a})

	spawn := a.DefaultSpawn()
	cameraEntry := ns.ecsWorld.World.Entry(ns.ecsWorld.World.Create(components.Camera))
	cameraData := components.Camera.Get(cameraEntry)
	cameraData.Position.X = spawn.X
	cameraData.Position.Y = spawn.Y
	cameraData.Zoom = 1.0

	ns.syncCtx = netsync.NewContext(cfg.Net.SyncConfig(), a.PlayerBounds())
	ns.syncCtx.SetLocalID(uint64(ns.netClient.NetworkID()))

	walls := make([]netsync.Wall, len(a.Walls))
	for i, w := range a.Walls {
		walls[i] = netsync.Wall{X: w.X, Y: w.Y, W: w.W, H: w.H}
	}
	ns.syncCtx.InitCollision(walls, a.Width, a.Height)

	ns.hud = systems.NewNetworkHUD(ns.syncCtx)
	ns.hud.ShowBanner("Connected to " + ns.netClient.Arena())

	localNetID := func() esync.NetworkId {
		return ns.netClient.NetworkID()
	}
	ns.ecsWorld.AddSystem(systems.NewClockSyncSystem(ns.netClient, ns.syncCtx))
	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(ns.netClient, ns.syncCtx))
	ns.ecsWorld.AddSystem(systems.NewNetPoseSystem(ns.syncCtx, localNetID))
	ns.ecsWorld.AddSystem(systems.NewNetCameraSystem(localNetID))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawArena)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawNetworkedPlayers)
	ns.ecsWorld.AddRenderer(cfg.Default, ns.hud.Draw)
}

func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := ns.ecsWorld.World
	myNetID := ns.netClient.NetworkID()
	nowMs := float64(time.Now().UnixNano()) / float64(time.Millisecond)

	clear(ns.presentIDs)

	for _, ent := range snapshot {
		ns.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			ctypes := componentTypesFromInstances(compData)
			entity = world.Create(ctypes...)

			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
		}

		entry := world.Entry(entity)

		snap, hasPose := poseFromInstances(uint64(ent.Id), compData)

		if ent.Id == myNetID {
			ns.applyLocal(entry, compData, snap, hasPose)
		} else {
			if hasPose {
				ns.syncCtx.HandleRemoteSnapshot(snap, nowMs)
			}
			// Non-pose state applies directly; the pose itself is written
			// by the interpolation system each frame.
			for _, data := range compData {
				if _, isPos := data.(netcomponents.NetPositionData); isPos {
					ensureComponent(entry, netcomponents.NetPosition)
					continue
				}
				applyComponentToEntry(entry, data)
			}
		}
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ns.presentIDs[*id] {
			if *id != myNetID {
				ns.syncCtx.ForgetRemote(uint64(*id))
			}
			entry.Remove()
		}
	})
}

// applyLocal feeds the authoritative pose through reconciliation and applies
// the rest of the state directly. The local render position is owned by the
// corrector, so NetPosition is only ensured to exist here.
func (ns *NetworkedScene) applyLocal(entry *donburi.Entry, compData []any, snap netsync.Snapshot, hasPose bool) {
	if hasPose {
		ns.syncCtx.HandleLocalSnapshot(snap)
	}

	ensureComponent(entry, netcomponents.NetPosition)

	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetPositionData:
			// Owned by prediction.
		case netcomponents.NetVelocityData:
			ensureComponent(entry, netcomponents.NetVelocity)
			netcomponents.NetVelocity.SetValue(entry, v)
		case netcomponents.NetPlayerStateData:
			ensureComponent(entry, netcomponents.NetPlayerState)
			local := netcomponents.NetPlayerState.Get(entry)
			local.Name = v.Name
			local.Speed = v.Speed
			local.Flags = v.Flags
			local.Health = v.Health
			local.LastSequence = v.LastSequence
			local.ServerTick = v.ServerTick
			local.IsLocal = true
			// Facing stays locally predicted.
		}
	}
}

// poseFromInstances assembles a sync snapshot from the deserialized
// components, when both position and player state are present.
func poseFromInstances(id uint64, compData []any) (netsync.Snapshot, bool) {
	var pos *netcomponents.NetPositionData
	var vel *netcomponents.NetVelocityData
	var state *netcomponents.NetPlayerStateData

	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetPositionData:
			cp := v
			pos = &cp
		case netcomponents.NetVelocityData:
			cp := v
			vel = &cp
		case netcomponents.NetPlayerStateData:
			cp := v
			state = &cp
		}
	}

	if pos == nil || state == nil {
		return netsync.Snapshot{}, false
	}

	snap := netsync.Snapshot{
		EntityID:     id,
		X:            pos.X,
		Y:            pos.Y,
		Facing:       state.Facing,
		LastSequence: state.LastSequence,
		ServerTick:   state.ServerTick,
	}
	if vel != nil {
		snap.VelX = vel.SpeedX
		snap.VelY = vel.SpeedY
	}
	return snap, true
}

func componentTypesFromInstances(compData []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetVelocityData:
			ctypes = append(ctypes, netcomponents.NetVelocity)
		case netcomponents.NetPlayerStateData:
			ctypes = append(ctypes, netcomponents.NetPlayerState)
		}
	}
	return ctypes
}

func ensureComponent(entry *donburi.Entry, ctype donburi.IComponentType) {
	if !entry.HasComponent(ctype) {
		entry.AddComponent(ctype)
	}
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		ensureComponent(entry, netcomponents.NetPosition)
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetVelocityData:
		ensureComponent(entry, netcomponents.NetVelocity)
		netcomponents.NetVelocity.SetValue(entry, v)
	case netcomponents.NetPlayerStateData:
		ensureComponent(entry, netcomponents.NetPlayerState)
		netcomponents.NetPlayerState.SetValue(entry, v)
	}
}
