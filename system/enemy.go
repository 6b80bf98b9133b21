package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/component"
)

// EnemyKind tags the enemy variant. Behaviour that differs per kind
// switches on it instead of on a type hierarchy.
type EnemyKind int

const (
	KindTank EnemyKind = iota
)

func (k EnemyKind) String() string {
	switch k {
	case KindTank:
		return "tank"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// Enemy is an AI tank: a body, health, two weapon slots and the controller
// that drives them.
type Enemy struct {
	id   int
	Kind EnemyKind

	Body       *component.TankBody
	Health     *component.Health
	Primary    *component.Weapon
	Secondary  *component.Weapon
	Controller *Controller

	registry *Registry
}

// EnemyParams groups what NewEnemy needs besides the registry.
type EnemyParams struct {
	ID        int
	Kind      EnemyKind
	Pos       cp.Vector
	Texture   string
	Tower     string
	Health    float32
	Primary   *component.Weapon
	Secondary *component.Weapon
	Control   ControllerConfig
	Grid      component.NavGrid
	Script    *component.TacticScript
}

// NewEnemy builds an enemy and registers it as live.
func NewEnemy(reg *Registry, p EnemyParams) *Enemy {
	e := &Enemy{
		id:        p.ID,
		Kind:      p.Kind,
		Body:      component.NewTankBody(p.Pos, p.Texture, p.Tower),
		Health:    component.NewHealth(p.Health),
		Primary:   p.Primary,
		Secondary: p.Secondary,
		registry:  reg,
	}
	e.Controller = NewController(p.Grid, p.Control, p.Script)
	reg.Register(e)
	return e
}

// Destroy removes the enemy from the live registry.
func (e *Enemy) Destroy() {
	if e.registry != nil {
		e.registry.Deregister(e)
	}
}

func (e *Enemy) ID() int { return e.id }

func (e *Enemy) Faction() component.Faction { return component.FactionEnemy }

func (e *Enemy) Position() cp.Vector {
	switch e.Kind {
	case KindTank:
		return e.Body.Pos
	default:
		return e.Body.Pos
	}
}

// Visual is the hull texture to draw for the enemy.
func (e *Enemy) Visual() string {
	switch e.Kind {
	case KindTank:
		return e.Body.Texture
	default:
		return ""
	}
}

func (e *Enemy) Box() cp.BB { return e.Body.Box() }

func (e *Enemy) TakeDamage(amount float32, evt component.CombatEvent) bool {
	return e.Health.ApplyDamage(amount, evt)
}

func (e *Enemy) Alive() bool { return e.Health.IsAlive() }

func (e *Enemy) Update(ctx *Context) {
	if e.Controller == nil || !e.Alive() {
		return
	}
	e.Controller.Update(e, ctx)
}

func (e *Enemy) shift(d cp.Vector) {
	e.Body.Shift(d)
	if e.Controller != nil {
		e.Controller.shift(d)
	}
}
