package system

import (
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/logger"
	"github.com/sirupsen/logrus"
)

// resolveCombat hands the resolver this frame's walls and live combatants.
func (w *World) resolveCombat() {
	live := w.Registry.Live()
	targets := make([]component.Combatant, 0, len(live))
	for _, e := range live {
		targets = append(targets, e)
	}
	w.Combat.Update(w.Level.Collision, w.Player, targets)
}

func (w *World) onCombatEvent(evt component.CombatEvent) {
	entry := logger.Log.WithFields(logrus.Fields{
		"event":  evt.Type,
		"weapon": evt.Weapon,
		"frame":  w.frame,
	})
	switch evt.Type {
	case component.EventDeath:
		if e, ok := evt.Target.(*Enemy); ok {
			e.Destroy()
		}
		entry.WithField("target", evt.TargetID).Info("tank destroyed")
	case component.EventHit:
		entry.WithFields(logrus.Fields{"target": evt.TargetID, "damage": evt.Damage}).Debug("hit")
	case component.EventWallDestroyed:
		entry.WithField("pos", evt.Pos).Debug("wall destroyed")
	}
}
