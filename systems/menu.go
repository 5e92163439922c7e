package systems

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/stormfell/vantage-mp/components"
	"github.com/stormfell/vantage-mp/config"
	"github.com/stormfell/vantage-mp/fonts"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows systems to trigger scene transitions.
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// NewUpdateMenu returns the main menu navigation system.
func NewUpdateMenu(sceneChanger SceneChanger, createConnectScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		menu := GetOrCreateMenu(e)
		numOptions := len(menu.Options)
		if numOptions == 0 {
			return
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			switch menu.Options[menu.SelectedIndex] {
			case components.MainMenuPlay:
				sceneChanger.ChangeScene(createConnectScene())
			case components.MainMenuQuit:
				SaveCurrentSettings()
				os.Exit(0)
			}
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			SaveCurrentSettings()
			os.Exit(0)
		}
	}
}

// DrawMenu renders the main menu screen.
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height),
		config.FloorGray, false)

	titleFont := fonts.Title.Get()
	title := config.C.Title
	titleWidth := len(title) * 18
	titleX := int((width - float64(titleWidth)) / 2)
	text.Draw(screen, title, titleFont, titleX, int(height)/3, config.White)

	menuFont := fonts.Regular.Get()
	for i, option := range menu.Options {
		label := menuOptionLabel(option)
		textColor := config.LightGreen
		if i == menu.SelectedIndex {
			textColor = config.BrightGreen
			label = "> " + label
		}
		textWidth := len(label) * 8
		x := int((width - float64(textWidth)) / 2)
		y := int(height)/2 + i*28
		text.Draw(screen, label, menuFont, x, y, textColor)
	}

	hint := "Arrows: Navigate   Enter: Select"
	hintFont := fonts.Small.Get()
	hintWidth := len(hint) * 6
	hintX := int((width - float64(hintWidth)) / 2)
	text.Draw(screen, hint, hintFont, hintX, int(height)-12, config.LightGreen)
}

// GetOrCreateMenu returns the menu entity's data, creating it on first use.
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if entry, ok := components.Menu.First(e.World); ok {
		return components.Menu.Get(entry)
	}
	ent := e.World.Entry(e.World.Create(components.Menu))
	components.Menu.SetValue(ent, components.MenuData{
		Options: []components.MainMenuOption{
			components.MainMenuPlay,
			components.MainMenuQuit,
		},
	})
	return components.Menu.Get(ent)
}

func menuOptionLabel(option components.MainMenuOption) string {
	switch option {
	case components.MainMenuPlay:
		return "Play"
	case components.MainMenuQuit:
		return "Quit"
	default:
		return ""
	}
}
