package system

import (
	"fmt"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/obj"
	"github.com/milk9111/tankgame/prefabs"
	"github.com/stretchr/testify/require"
)

// arena builds a level from a picture whose top-left character sits at
// cell (1, 1). '#' is a wall, 'o' a hole and everything else floor. 'P',
// 'E' and '*' also place a player spawn, an enemy spawn and a point of
// interest.
func arena(t *testing.T, rows ...string) *obj.Level {
	t.Helper()
	lvl := obj.NewLevel(obj.NewTextureSet("grass"))
	for r, row := range rows {
		for c, ch := range row {
			x, y := (c+1)*common.TileSize, (r+1)*common.TileSize
			lvl.Terrain.Add(&obj.Tile{X: x, Y: y, Texture: "grass"})
			switch ch {
			case '#':
				lvl.Collision.Add(&obj.Tile{X: x, Y: y, Pass: obj.Wall})
			case 'o':
				lvl.Collision.Add(&obj.Tile{X: x, Y: y, Pass: obj.Hole})
			case 'P':
				lvl.Objective.Add(&obj.Tile{X: x, Y: y, Attr: obj.PlayerSpawn})
			case 'E':
				lvl.Objective.Add(&obj.Tile{X: x, Y: y, Attr: obj.EnemySpawn})
			case '*':
				lvl.Objective.Add(&obj.Tile{X: x, Y: y, Attr: obj.PointOfInterest})
			}
		}
	}
	return lvl
}

// cellCentre is the centre of picture cell (c, r).
func cellCentre(c, r int) cp.Vector {
	return cp.Vector{X: float64((c+1)*common.TileSize) + 16, Y: float64((r+1)*common.TileSize) + 16}
}

type target struct {
	pos    cp.Vector
	health *component.Health
}

func newTarget(pos cp.Vector) *target {
	return &target{pos: pos, health: component.NewHealth(100)}
}

func (d *target) ID() int                    { return PlayerID }
func (d *target) Faction() component.Faction { return component.FactionPlayer }
func (d *target) Position() cp.Vector        { return d.pos }
func (d *target) Visual() string             { return "target" }
func (d *target) Box() cp.BB                 { return common.CenteredBox(d.pos, 12, 12) }
func (d *target) Alive() bool                { return d.health.IsAlive() }
func (d *target) TakeDamage(amount float32, evt component.CombatEvent) bool {
	return d.health.ApplyDamage(amount, evt)
}

func testEnemy(reg *Registry, lvl *obj.Level, pos cp.Vector) *Enemy {
	return NewEnemy(reg, EnemyParams{
		ID:     1,
		Kind:   KindTank,
		Pos:    pos,
		Health: 60,
		Control: ControllerConfig{
			SightRange:    320,
			Speed:         1,
			TurnRate:      3,
			SweepRate:     1.5,
			ProbeDistance: 16,
		},
		Grid: lvl,
	})
}

const testGun = `WeaponName=gun
Damage=25
ClipSize=3
ReloadDelay=500
FiringDelay=100
Texture=shell.png
`

// files is a weapon file store for armories in tests.
type files map[string]string

func (f files) load(name string) ([]byte, error) {
	s, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("no file %s", name)
	}
	return []byte(s), nil
}

func testSettings(t *testing.T) *prefabs.Settings {
	t.Helper()
	s := &prefabs.Settings{}
	s.Player.Primary = "gun.wpn"
	s.Enemy.Primary = "gun.wpn"
	s.Enemy.Health = 10
	require.NoError(t, s.Validate())
	return s
}
