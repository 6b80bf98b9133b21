package system

import (
	"fmt"
	"slices"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/obj"
	"github.com/milk9111/tankgame/prefabs"
	"github.com/sirupsen/logrus"
)

// World owns the level, the tanks and the combat resolver, and steps them
// one frame at a time.
type World struct {
	Level    *obj.Level
	Player   *Player
	Enemies  []*Enemy
	Registry *Registry
	Combat   *component.CombatResolver
	Settings *prefabs.Settings

	// GameOver stops the simulation once the player is dead.
	GameOver bool

	armory *Armory
	script *component.TacticScript
	clock  time.Duration
	frame  int
	nextID int
}

// NewWorld spawns the player and one enemy per enemy spawn tile of level.
func NewWorld(level *obj.Level, settings *prefabs.Settings, armory *Armory) (*World, error) {
	if level == nil {
		return nil, fmt.Errorf("system: new world: nil level")
	}
	if settings == nil {
		return nil, fmt.Errorf("system: new world: nil settings")
	}
	w := &World{
		Level:    level,
		Registry: NewRegistry(),
		Combat:   component.NewCombatResolver(settings.Projectile.Speed, settings.Projectile.Lifetime),
		Settings: settings,
		armory:   armory,
		nextID:   PlayerID + 1,
	}
	w.Combat.Emitter.Subscribe(w.onCombatEvent)

	if err := w.spawnPlayer(); err != nil {
		return nil, err
	}
	if err := w.spawnEnemies(); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"enemies": len(w.Enemies),
		"player":  w.Player.Body.Pos,
	}).Info("world ready")
	return w, nil
}

// Clock is the simulated time since the world started.
func (w *World) Clock() time.Duration { return w.clock }

func (w *World) Frame() int { return w.frame }

func (w *World) context() *Context {
	return &Context{
		Level:  w.Level,
		Target: w.Player,
		Combat: w.Combat,
		Now:    w.clock,
		Frame:  w.frame,
	}
}

// Update advances the world by one frame.
func (w *World) Update(in Input) {
	if w.GameOver {
		return
	}
	if d, ok := w.Level.Pan(w.Player.Body.Pos); ok {
		w.shift(d)
	}

	ctx := w.context()
	w.Player.Apply(in, ctx)
	for _, e := range w.Registry.Live() {
		e.Update(ctx)
	}
	w.resolveCombat()
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e *Enemy) bool {
		if e.Alive() {
			return false
		}
		e.Destroy()
		return true
	})

	w.clock += time.Second / common.TPS
	w.frame++

	if !w.Player.Alive() {
		w.GameOver = true
		logger.Log.WithField("frame", w.frame).Info("player destroyed")
	}
}

// shift moves everything that lives in level coordinates after a pan.
func (w *World) shift(d cp.Vector) {
	w.Player.shift(d)
	for _, e := range w.Enemies {
		e.shift(d)
	}
	w.Combat.Shift(d)
}

// Won reports whether every enemy the level spawned is gone.
func (w *World) Won() bool {
	return !w.GameOver && w.Registry.Len() == 0 && len(w.Level.Spawns(obj.EnemySpawn)) > 0
}

// SetTacticScript gives every enemy its own copy of script. Enemies spawned
// later get one too.
func (w *World) SetTacticScript(script *component.TacticScript) {
	w.script = script
	for _, e := range w.Enemies {
		e.Controller.script = script.Clone()
	}
}

// ReloadWeapon re-reads a weapon file and swaps the data into every weapon
// built from it.
func (w *World) ReloadWeapon(file string) error {
	if w.armory == nil {
		return fmt.Errorf("system: reload weapon %s: no armory", file)
	}
	data, err := w.armory.Reload(file)
	if err != nil {
		return err
	}
	n := 0
	for _, wp := range w.weapons() {
		if wp.Source == file {
			wp.SetData(data)
			n++
		}
	}
	logger.Log.WithFields(logrus.Fields{"file": file, "weapons": n}).Info("weapon reloaded")
	return nil
}

func (w *World) weapons() []*component.Weapon {
	var out []*component.Weapon
	add := func(ws ...*component.Weapon) {
		for _, wp := range ws {
			if wp != nil {
				out = append(out, wp)
			}
		}
	}
	add(w.Player.Primary, w.Player.Secondary)
	for _, e := range w.Enemies {
		add(e.Primary, e.Secondary)
	}
	return out
}
