package systems

import (
	"errors"
	"log"

	"github.com/stormfell/vantage-mp/netsync"
	"github.com/stormfell/vantage-mp/network"
	"github.com/yohamta/donburi/ecs"
)

// NewClockSyncSystem drives the time synchronizer: it consumes probe
// responses queued by the transport and fires a new probe whenever one is
// due. Probes are fire-and-forget; nothing here blocks the frame.
func NewClockSyncSystem(client *network.Client, sync *netsync.Context) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		if resp := client.LatestTimeSync(); resp != nil {
			sync.Clock().HandleResponse(*resp)
		}

		req, err := sync.Clock().Update()
		if err != nil && !errors.Is(err, netsync.ErrSyncTimeout) {
			log.Printf("[netsync] clock: %v", err)
		}
		if req == nil {
			return
		}
		if err := client.SendMessage(*req); err != nil {
			log.Printf("[netsync] probe send: %v", err)
		}
	}
}
