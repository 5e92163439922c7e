package components

import (
	"github.com/stormfell/vantage-mp/arena"
	"github.com/yohamta/donburi"
)

// ArenaData holds the loaded static map geometry for the active match.
type ArenaData struct {
	Current *arena.Arena
}

var Arena = donburi.NewComponentType[ArenaData]()
