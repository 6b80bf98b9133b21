package obj

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
)

// Passability is the movement class of a collision tile. The zero value is
// Floor so terrain and objective tiles are passable without setup.
type Passability uint8

const (
	Floor Passability = iota
	Wall
	Hole
)

func (p Passability) String() string {
	switch p {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Hole:
		return "hole"
	}
	return fmt.Sprintf("passability(%d)", p)
}

// Attribute marks what an objective tile is used for. The numeric values are
// the codes written in objective files.
type Attribute int

const (
	PointOfInterest Attribute = iota
	EnemySpawn
	PlayerSpawn
)

func (a Attribute) Valid() bool {
	return a >= PointOfInterest && a <= PlayerSpawn
}

func (a Attribute) String() string {
	switch a {
	case PointOfInterest:
		return "poi"
	case EnemySpawn:
		return "enemy_spawn"
	case PlayerSpawn:
		return "player_spawn"
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// Tile is one grid cell on a layer. X and Y are world coordinates of the
// cell's top-left corner and are always multiples of common.TileSize.
type Tile struct {
	X, Y    int
	Texture string
	Pass    Passability
	Attr    Attribute
}

// NewTile snaps x, y down onto the grid.
func NewTile(x, y float64) *Tile {
	return &Tile{X: common.Snap(x), Y: common.Snap(y)}
}

func (t *Tile) Box() cp.BB {
	return common.BoxAt(float64(t.X), float64(t.Y), common.TileSize, common.TileSize)
}

func (t *Tile) Center() cp.Vector {
	return common.BoxCenter(t.Box())
}

// Passable reports whether a tank may drive through the tile.
func (t *Tile) Passable() bool {
	return t != nil && t.Pass == Floor
}

// BlocksSight reports whether rays and projectiles stop at the tile.
func (t *Tile) BlocksSight() bool {
	return t != nil && t.Pass == Wall
}

func (t *Tile) cell() cellKey {
	return cellKey{t.X / common.TileSize, t.Y / common.TileSize}
}

type cellKey struct {
	col, row int
}

func keyAt(p cp.Vector) cellKey {
	c, r := common.Cell(p)
	return cellKey{c, r}
}
