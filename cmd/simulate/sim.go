package main

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/system"
	"github.com/sirupsen/logrus"
)

// Pilot produces the player's input for the next frame.
type Pilot func(w *system.World) system.Input

// Idle leaves the player tank parked.
func Idle(*system.World) system.Input { return system.Input{} }

// Turret keeps the player in place, aims at the nearest live enemy and fires
// the primary weapon, falling back to the secondary.
func Turret(w *system.World) system.Input {
	target, ok := nearestEnemy(w)
	if !ok {
		return system.Input{}
	}
	return system.Input{Aim: target, AimValid: true, FirePrimary: true, FireSecondary: true}
}

func nearestEnemy(w *system.World) (cp.Vector, bool) {
	from := w.Player.Body.Pos
	var best cp.Vector
	found := false
	for _, e := range w.Registry.Live() {
		p := e.Position()
		if !found || p.DistanceSq(from) < best.DistanceSq(from) {
			best, found = p, true
		}
	}
	return best, found
}

type Outcome string

const (
	OutcomeRunning Outcome = "running"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// Stats summarises a run.
type Stats struct {
	Frames       int
	Clock        time.Duration
	Outcome      Outcome
	Shots        map[component.Faction]int
	Hits         map[component.Faction]int
	Walls        int
	Kills        int
	PlayerHealth float32
	EnemiesLeft  int
}

// Run steps w until it is won or lost, or for at most frames frames.
// progress > 0 logs the enemies' tactics every progress frames.
func Run(w *system.World, frames int, pilot Pilot, progress int) Stats {
	st := Stats{
		Shots: map[component.Faction]int{},
		Hits:  map[component.Faction]int{},
	}
	w.Combat.Emitter.Subscribe(func(evt component.CombatEvent) {
		switch evt.Type {
		case component.EventFired:
			st.Shots[evt.Attacker]++
		case component.EventHit:
			st.Hits[evt.Attacker]++
		case component.EventWallDestroyed:
			st.Walls++
		case component.EventDeath:
			if evt.Attacker == component.FactionPlayer {
				st.Kills++
			}
		}
	})

	for w.Frame() < frames && !w.GameOver && !w.Won() {
		w.Update(pilot(w))
		if progress > 0 && w.Frame()%progress == 0 {
			logProgress(w)
		}
	}

	st.Frames = w.Frame()
	st.Clock = w.Clock()
	st.PlayerHealth = w.Player.Health.Current
	st.EnemiesLeft = w.Registry.Len()
	switch {
	case w.GameOver:
		st.Outcome = OutcomeLost
	case w.Won():
		st.Outcome = OutcomeWon
	default:
		st.Outcome = OutcomeRunning
	}
	return st
}

func logProgress(w *system.World) {
	tactics := map[string]int{}
	for _, e := range w.Registry.Live() {
		tactics[e.Controller.State.Tactic.String()]++
	}
	logger.Log.WithFields(logrus.Fields{
		"frame":   w.Frame(),
		"hp":      w.Player.Health.Current,
		"enemies": w.Registry.Len(),
		"tactics": tactics,
	}).Debug("progress")
}

func (s Stats) Fields() logrus.Fields {
	return logrus.Fields{
		"frames":        s.Frames,
		"clock":         s.Clock.String(),
		"outcome":       s.Outcome,
		"player_shots":  s.Shots[component.FactionPlayer],
		"player_hits":   s.Hits[component.FactionPlayer],
		"enemy_shots":   s.Shots[component.FactionEnemy],
		"enemy_hits":    s.Hits[component.FactionEnemy],
		"walls":         s.Walls,
		"kills":         s.Kills,
		"player_health": s.PlayerHealth,
		"enemies_left":  s.EnemiesLeft,
	}
}
