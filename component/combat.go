package component

import "github.com/jakecoffman/cp"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	}
	return "neutral"
}

func factionCanHit(attacker, target Faction) bool {
	return attacker != FactionNeutral && target != FactionNeutral && attacker != target
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventFired         CombatEventType = "fired"
	EventHit           CombatEventType = "hit"
	EventDeath         CombatEventType = "death"
	EventWallDestroyed CombatEventType = "wall_destroyed"
	EventExpired       CombatEventType = "expired"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type     CombatEventType
	Attacker Faction
	TargetID int
	Weapon   string
	Sound    string
	Damage   float32
	Frame    int
	Pos      cp.Vector
	Target   Combatant
}

type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans events out to its handlers in order.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
