package components

import "github.com/yohamta/donburi"

type MainMenuOption int

const (
	MainMenuPlay MainMenuOption = iota
	MainMenuQuit
)

type MenuData struct {
	Options       []MainMenuOption
	SelectedIndex int
}

var Menu = donburi.NewComponentType[MenuData]()
