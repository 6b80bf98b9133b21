package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/obj"
)

// spawnPlayer places the player on the first player spawn tile, or the
// middle of the window when the level has none.
func (w *World) spawnPlayer() error {
	spec := w.Settings.Player
	pos := cp.Vector{X: float64(w.Settings.Window.Width) / 2, Y: float64(w.Settings.Window.Height) / 2}
	if spawns := w.Level.Spawns(obj.PlayerSpawn); len(spawns) > 0 {
		pos = spawns[0].Center()
	}

	p := NewPlayer(pos, spec.Texture, spec.TowerTexture, spec.Health, spec.Speed, spec.TurnRate)
	var err error
	if p.Primary, err = w.weapon(spec.Primary); err != nil {
		return fmt.Errorf("system: spawn player: %w", err)
	}
	if p.Secondary, err = w.weapon(spec.Secondary); err != nil {
		return fmt.Errorf("system: spawn player: %w", err)
	}
	w.Player = p
	return nil
}

func (w *World) spawnEnemies() error {
	for _, t := range w.Level.Spawns(obj.EnemySpawn) {
		if _, err := w.SpawnEnemy(KindTank, t.Center()); err != nil {
			return err
		}
	}
	return nil
}

// SpawnEnemy builds an enemy of kind at pos, registers it and adds it to
// the world.
func (w *World) SpawnEnemy(kind EnemyKind, pos cp.Vector) (*Enemy, error) {
	spec := w.Settings.Enemy
	primary, err := w.weapon(spec.Primary)
	if err != nil {
		return nil, fmt.Errorf("system: spawn %s: %w", kind, err)
	}
	secondary, err := w.weapon(spec.Secondary)
	if err != nil {
		return nil, fmt.Errorf("system: spawn %s: %w", kind, err)
	}

	e := NewEnemy(w.Registry, EnemyParams{
		ID:        w.nextID,
		Kind:      kind,
		Pos:       pos,
		Texture:   spec.SpawnTexture,
		Tower:     spec.TowerTexture,
		Health:    spec.Health,
		Primary:   primary,
		Secondary: secondary,
		Control: ControllerConfig{
			SightRange:    spec.SightRange,
			Speed:         spec.Speed,
			TurnRate:      spec.TurnRate,
			SweepRate:     spec.SweepRate,
			ProbeDistance: spec.ProbeDistance,
		},
		Grid:   w.Level,
		Script: w.script.Clone(),
	})
	w.nextID++
	w.Enemies = append(w.Enemies, e)
	return e, nil
}

func (w *World) weapon(file string) (*component.Weapon, error) {
	if w.armory == nil {
		return nil, nil
	}
	return w.armory.Weapon(file)
}
