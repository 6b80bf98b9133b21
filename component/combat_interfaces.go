package component

import "github.com/jakecoffman/cp"

// Combatant is what the combat resolver needs from anything that can be
// shot: the player tank and every enemy kind.
type Combatant interface {
	ID() int
	Faction() Faction
	Position() cp.Vector
	// Visual names the texture the combatant is drawn with.
	Visual() string
	Box() cp.BB
	TakeDamage(amount float32, evt CombatEvent) bool
	Alive() bool
}
