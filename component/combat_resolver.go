package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/obj"
)

const (
	projectileHalfSize  = 3
	DefaultImpactFrames = 20
)

// Projectile is a live shot. Life counts frames down to zero, at which point
// the projectile is removed.
type Projectile struct {
	Pos           cp.Vector
	Vel           cp.Vector
	Damage        float32
	Life          int
	Rotation      float64
	Texture       string
	ImpactTexture string
	ImpactSound   string
	Weapon        string
	Owner         Faction
}

func (p *Projectile) Box() cp.BB {
	return common.CenteredBox(p.Pos, projectileHalfSize, projectileHalfSize)
}

// Impact is the effect left where a projectile struck a wall.
type Impact struct {
	Pos     cp.Vector
	Texture string
	Frames  int
}

// CombatResolver owns every projectile in flight and resolves them against
// walls and combatants once per frame.
type CombatResolver struct {
	Emitter      *CombatEventEmitter
	Speed        float64
	Lifetime     int
	ImpactFrames int

	frame       int
	projectiles []*Projectile
	impacts     []*Impact
}

func NewCombatResolver(speed float64, lifetime int) *CombatResolver {
	return &CombatResolver{
		Emitter:      &CombatEventEmitter{},
		Speed:        speed,
		Lifetime:     lifetime,
		ImpactFrames: DefaultImpactFrames,
	}
}

// Fire spawns a projectile at from heading for target using the weapon's
// damage and textures. The weapon's own readiness is not checked here.
func (r *CombatResolver) Fire(owner Faction, w *Weapon, from, target cp.Vector) *Projectile {
	if r == nil || w == nil {
		return nil
	}
	dir := target.Sub(from)
	if dir.Length() < epsilon {
		return nil
	}
	p := &Projectile{
		Pos:           from,
		Vel:           dir.Normalize().Mult(r.Speed),
		Damage:        w.Data.Damage,
		Life:          r.Lifetime,
		Rotation:      common.AngleTo(from, target),
		Texture:       w.Data.Texture,
		ImpactTexture: w.Data.ImpactTexture,
		ImpactSound:   w.Data.ImpactSound,
		Weapon:        w.Data.Name,
		Owner:         owner,
	}
	r.projectiles = append(r.projectiles, p)
	r.Emitter.Emit(CombatEvent{Type: EventFired, Attacker: owner, Weapon: p.Weapon, Sound: w.Data.FireSound, Frame: r.frame, Pos: from})
	return p
}

// Update resolves every projectile once: expired shots are dropped, shots
// inside a wall destroy that wall tile, shots inside an opposing combatant
// damage it, and the rest move on. Player shots are tested against enemies
// and enemy shots against the player.
func (r *CombatResolver) Update(walls *obj.Layer, player Combatant, enemies []Combatant) {
	if r == nil {
		return
	}
	r.frame++
	r.tickImpacts()

	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		if p.Life <= 0 {
			r.Emitter.Emit(CombatEvent{Type: EventExpired, Attacker: p.Owner, Weapon: p.Weapon, Frame: r.frame, Pos: p.Pos})
			continue
		}
		if wall := firstWall(walls, p.Box()); wall != nil {
			r.impacts = append(r.impacts, &Impact{Pos: p.Pos, Texture: p.ImpactTexture, Frames: r.ImpactFrames})
			walls.Remove(wall)
			r.Emitter.Emit(CombatEvent{Type: EventWallDestroyed, Attacker: p.Owner, Weapon: p.Weapon, Sound: p.ImpactSound, Frame: r.frame, Pos: wall.Center()})
			continue
		}
		if target := hitTarget(p, player, enemies); target != nil {
			evt := CombatEvent{
				Type:     EventHit,
				Attacker: p.Owner,
				TargetID: target.ID(),
				Weapon:   p.Weapon,
				Sound:    p.ImpactSound,
				Damage:   p.Damage,
				Frame:    r.frame,
				Pos:      p.Pos,
				Target:   target,
			}
			target.TakeDamage(p.Damage, evt)
			r.Emitter.Emit(evt)
			if !target.Alive() {
				evt.Type = EventDeath
				r.Emitter.Emit(evt)
			}
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Life--
		kept = append(kept, p)
	}
	clear(r.projectiles[len(kept):])
	r.projectiles = kept
}

func firstWall(walls *obj.Layer, bb cp.BB) *obj.Tile {
	if walls == nil {
		return nil
	}
	for _, t := range walls.TilesInArea(bb) {
		if t.BlocksSight() {
			return t
		}
	}
	return nil
}

func hitTarget(p *Projectile, player Combatant, enemies []Combatant) Combatant {
	box := p.Box()
	if p.Owner == FactionPlayer {
		for _, e := range enemies {
			if e != nil && e.Alive() && factionCanHit(p.Owner, e.Faction()) && common.Overlaps(box, e.Box()) {
				return e
			}
		}
		return nil
	}
	if player != nil && player.Alive() && factionCanHit(p.Owner, player.Faction()) && common.Overlaps(box, player.Box()) {
		return player
	}
	return nil
}

func (r *CombatResolver) tickImpacts() {
	kept := r.impacts[:0]
	for _, im := range r.impacts {
		im.Frames--
		if im.Frames > 0 {
			kept = append(kept, im)
		}
	}
	clear(r.impacts[len(kept):])
	r.impacts = kept
}

// Shift moves projectiles and impacts along with a panned level.
func (r *CombatResolver) Shift(d cp.Vector) {
	for _, p := range r.projectiles {
		p.Pos = p.Pos.Add(d)
	}
	for _, im := range r.impacts {
		im.Pos = im.Pos.Add(d)
	}
}

func (r *CombatResolver) Projectiles() []*Projectile { return r.projectiles }

func (r *CombatResolver) Impacts() []*Impact { return r.impacts }

func (r *CombatResolver) Frame() int { return r.frame }
