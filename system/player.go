package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
)

const (
	PlayerID = 0
	// reverse runs slower than forward
	reverseFactor = 0.6
	aimReach      = 100
)

// Player is the user-driven tank.
type Player struct {
	Body      *component.TankBody
	Health    *component.Health
	Primary   *component.Weapon
	Secondary *component.Weapon

	speed    float64
	turnRate float64
}

func NewPlayer(pos cp.Vector, texture, tower string, health float32, speed, turnRate float64) *Player {
	return &Player{
		Body:     component.NewTankBody(pos, texture, tower),
		Health:   component.NewHealth(health),
		speed:    speed,
		turnRate: turnRate,
	}
}

func (p *Player) ID() int                    { return PlayerID }
func (p *Player) Faction() component.Faction { return component.FactionPlayer }
func (p *Player) Position() cp.Vector        { return p.Body.Pos }
func (p *Player) Visual() string             { return p.Body.Texture }
func (p *Player) Box() cp.BB                 { return p.Body.Box() }
func (p *Player) Alive() bool                { return p.Health.IsAlive() }

func (p *Player) TakeDamage(amount float32, evt component.CombatEvent) bool {
	return p.Health.ApplyDamage(amount, evt)
}

// Apply turns and drives the hull, aims the tower and fires.
func (p *Player) Apply(in Input, ctx *Context) {
	if !p.Alive() {
		return
	}
	tower := p.Body.TowerHeading()
	switch {
	case in.Left && !in.Right:
		p.Body.Turn(-p.turnRate)
	case in.Right && !in.Left:
		p.Body.Turn(p.turnRate)
	}
	p.Body.SetTowerHeading(tower)

	blocked := func(cp.Vector) bool { return ctx.Level.BlockedArea(p.Body.Box()) }
	switch {
	case in.Forward && !in.Back:
		p.Body.Drive(p.speed, blocked)
	case in.Back && !in.Forward:
		p.Body.Drive(-p.speed*reverseFactor, blocked)
	}

	if in.AimValid {
		p.Body.AimAt(in.Aim)
	}

	target := p.Body.BarrelPoint().Add(common.Forward(p.Body.TowerHeading()).Mult(aimReach))
	if in.FirePrimary && p.Primary.Fire(ctx.Now) {
		ctx.Combat.Fire(p.Faction(), p.Primary, p.Body.BarrelPoint(), target)
		return
	}
	if in.FireSecondary && p.Secondary.Fire(ctx.Now) {
		ctx.Combat.Fire(p.Faction(), p.Secondary, p.Body.BarrelPoint(), target)
	}
}

func (p *Player) shift(d cp.Vector) {
	p.Body.Shift(d)
}
