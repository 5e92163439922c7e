package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSneak
	ActionSprint
	ActionAim
	ActionFire
	ActionInteract
	ActionPause
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the key bindings for an action
type InputBinding struct {
	Keys []ebiten.Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft:  {Keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}},
			ActionMoveRight: {Keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyRight}},
			ActionMoveUp:    {Keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyUp}},
			ActionMoveDown:  {Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyDown}},
			ActionSneak:     {Keys: []ebiten.Key{ebiten.KeyControl}},
			ActionSprint:    {Keys: []ebiten.Key{ebiten.KeyShift}},
			ActionAim:       {Keys: []ebiten.Key{ebiten.KeyAlt}},
			ActionFire:      {Keys: []ebiten.Key{ebiten.KeySpace}},
			ActionInteract:  {Keys: []ebiten.Key{ebiten.KeyE}},
			ActionPause:     {Keys: []ebiten.Key{ebiten.KeyEscape}},
		},
	}
}
