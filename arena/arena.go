// Package arena loads playable-area geometry from embedded TMX maps: the
// wall tiles the predictor collides against and the spawn points the
// renderer uses before the first snapshot arrives.
package arena

import (
	"embed"
	"fmt"

	"github.com/lafriks/go-tiled"
	"github.com/stormfell/vantage-mp/shared/gamemath"
	"github.com/stormfell/vantage-mp/shared/netconfig"
)

//go:embed maps/*.tmx
var mapsFS embed.FS

// Wall is one solid tile in pixel coordinates.
type Wall struct {
	X, Y, W, H float64
}

// Spawn is a player spawn point.
type Spawn struct {
	X, Y float64
}

// Arena is the static geometry of one map.
type Arena struct {
	Name     string
	Width    int // pixels
	Height   int
	TileSize int
	Walls    []Wall
	Spawns   []Spawn
}

// Load parses an embedded TMX map by name (without extension).
func Load(name string) (*Arena, error) {
	path := "maps/" + name + ".tmx"
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(mapsFS))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	a := &Arena{
		Name:     name,
		Width:    m.Width * m.TileWidth,
		Height:   m.Height * m.TileHeight,
		TileSize: m.TileWidth,
	}

	tileW := float64(m.TileWidth)
	tileH := float64(m.TileHeight)
	for _, layer := range m.Layers {
		if layer.Name != "walls" {
			continue
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if layer.Tiles[y*m.Width+x].IsNil() {
					continue
				}
				a.Walls = append(a.Walls, Wall{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	for _, og := range m.ObjectGroups {
		if og.Name != "spawns" {
			continue
		}
		for _, obj := range og.Objects {
			a.Spawns = append(a.Spawns, Spawn{X: obj.X, Y: obj.Y})
		}
	}

	if len(a.Walls) == 0 {
		return nil, fmt.Errorf("map %s has no walls layer", name)
	}
	return a, nil
}

// PlayerBounds returns the rectangle a player's collision box top-left may
// occupy, inset so the box stays inside the map.
func (a *Arena) PlayerBounds() gamemath.Bounds {
	return gamemath.Bounds{
		MinX: 0,
		MinY: 0,
		MaxX: float64(a.Width) - netconfig.PlayerCollisionSize,
		MaxY: float64(a.Height) - netconfig.PlayerCollisionSize,
	}
}

// DefaultSpawn returns the first spawn point, or the map center when the
// map defines none.
func (a *Arena) DefaultSpawn() Spawn {
	if len(a.Spawns) > 0 {
		return a.Spawns[0]
	}
	return Spawn{X: float64(a.Width) / 2, Y: float64(a.Height) / 2}
}

// Names lists the embedded map names.
func Names() []string {
	entries, err := mapsFS.ReadDir("maps")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if len(n) > 4 && n[len(n)-4:] == ".tmx" {
			names = append(names, n[:len(n)-4])
		}
	}
	return names
}
