package netcomponents

import (
	"github.com/stormfell/vantage-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Name         string
	Facing       float64 // Radians
	Speed        netconfig.SpeedMode
	Flags        netconfig.AuxFlags
	Health       int
	LastSequence uint64 // Last input sequence processed by the server (for prediction reconciliation)
	ServerTick   uint64 // Simulation tick this state was captured at
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
