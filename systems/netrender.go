package systems

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/stormfell/vantage-mp/components"
	"github.com/stormfell/vantage-mp/config"
	"github.com/stormfell/vantage-mp/fonts"
	"github.com/stormfell/vantage-mp/netsync"
	"github.com/stormfell/vantage-mp/shared/netcomponents"
	"github.com/stormfell/vantage-mp/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const aimLineLength = 96

// DrawArena renders the floor and wall geometry of the active arena with
// the camera offset applied.
func DrawArena(e *ecs.ECS, screen *ebiten.Image) {
	arenaEntry, ok := components.Arena.First(e.World)
	if !ok {
		return
	}
	arenaData := components.Arena.Get(arenaEntry)
	if arenaData.Current == nil {
		return
	}

	offX, offY := CameraOffset(e)
	a := arenaData.Current

	vector.DrawFilledRect(screen,
		float32(-offX), float32(-offY),
		float32(a.Width), float32(a.Height),
		config.FloorGray, false)

	for _, w := range a.Walls {
		vector.DrawFilledRect(screen,
			float32(w.X-offX), float32(w.Y-offY),
			float32(w.W), float32(w.H),
			config.WallGray, false)
	}
}

// DrawNetworkedPlayers renders every networked player as a colored box with
// a facing marker and a name label. The local player is drawn green, remote
// players cycle through the remote palette.
func DrawNetworkedPlayers(e *ecs.ECS, screen *ebiten.Image) {
	size := float32(netconfig.PlayerCollisionSize)
	half := float64(size) / 2
	smallFont := fonts.Small.Get()
	offX, offY := CameraOffset(e)
	colorIndex := 0

	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetPosition) {
			return
		}
		pos := netcomponents.NetPosition.Get(entry)

		var state *netcomponents.NetPlayerStateData
		if entry.HasComponent(netcomponents.NetPlayerState) {
			state = netcomponents.NetPlayerState.Get(entry)
		}

		rectColor := config.PlayerColors[colorIndex%len(config.PlayerColors)]
		if state != nil && state.IsLocal {
			rectColor = config.BrightGreen
		} else {
			colorIndex++
		}

		x := float32(pos.X - offX)
		y := float32(pos.Y - offY)
		vector.DrawFilledRect(screen, x, y, size, size, rectColor, false)

		if state != nil {
			cx := pos.X + half - offX
			cy := pos.Y + half - offY
			fx := cx + math.Cos(state.Facing)*half
			fy := cy + math.Sin(state.Facing)*half
			vector.DrawFilledRect(screen, float32(fx)-2, float32(fy)-2, 4, 4, config.White, false)

			if state.Flags.Has(netconfig.FlagAiming) {
				ex := cx + math.Cos(state.Facing)*aimLineLength
				ey := cy + math.Sin(state.Facing)*aimLineLength
				vector.StrokeLine(screen, float32(cx), float32(cy), float32(ex), float32(ey), 1, config.AimLine, false)
			}

			if state.Name != "" {
				labelX := int(pos.X-offX) + int(half) - len(state.Name)*3
				labelY := int(pos.Y-offY) - 6
				text.Draw(screen, state.Name, smallFont, labelX, labelY, config.White)
			}
		}
	})
}

// NetworkHUD draws the sync diagnostics line and a fading banner shown on
// connection events.
type NetworkHUD struct {
	sync *netsync.Context

	banner      string
	bannerFade  *gween.Tween
	bannerAlpha float32
}

func NewNetworkHUD(sync *netsync.Context) *NetworkHUD {
	return &NetworkHUD{sync: sync}
}

// ShowBanner displays a message centered near the top of the screen and
// fades it out over the configured duration.
func (h *NetworkHUD) ShowBanner(msg string) {
	h.banner = msg
	h.bannerAlpha = 1
	h.bannerFade = gween.New(1, 0, float32(config.HUD.BannerFadeSec), ease.OutQuad)
}

func (h *NetworkHUD) Draw(e *ecs.ECS, screen *ebiten.Image) {
	entityCount := 0
	esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
		entityCount++
	})

	clock := h.sync.Clock()
	var info string
	if clock.Synchronized() {
		info = fmt.Sprintf("rtt %.0fms  offset %+.0fms  seq %d/%d  pending %d  entities %d",
			clock.RTT(), clock.Offset(),
			h.sync.AckedSequence(), h.sync.IssuedSequence(),
			h.sync.PendingCommands(), entityCount)
	} else {
		info = "synchronizing clock..."
	}
	text.Draw(screen, info, fonts.Small.Get(), 4, 12, config.LightGreen)

	if h.bannerFade != nil {
		alpha, done := h.bannerFade.Update(frameDt)
		h.bannerAlpha = alpha
		if done {
			h.bannerFade = nil
		}
	}
	if h.banner != "" && h.bannerAlpha > 0 {
		c := config.White
		c.A = uint8(h.bannerAlpha * 255)
		x := config.C.Width/2 - len(h.banner)*4
		text.Draw(screen, h.banner, fonts.Regular.Get(), x, 40, c)
	}
}
