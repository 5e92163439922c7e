package scenes

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stormfell/vantage-mp/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/stormfell/vantage-mp/config"
)

// MenuScene displays the main menu.
type MenuScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	once         sync.Once
}

func NewMenuScene(sc SceneChanger) *MenuScene {
	return &MenuScene{sceneChanger: sc}
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)
}

func (ms *MenuScene) configure() {
	ms.ecs = ecs.NewECS(donburi.NewWorld())

	createConnectScene := func() interface{} {
		return NewConnectScene(ms.sceneChanger)
	}

	ms.ecs.AddSystem(systems.NewUpdateMenu(ms.sceneChanger, createConnectScene))
	ms.ecs.AddRenderer(cfg.Default, systems.DrawMenu)
}
