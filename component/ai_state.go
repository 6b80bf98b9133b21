package component

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransition = errors.New("invalid tactic transition")

// Tactic is an enemy's top-level behaviour. Exactly one is active.
type Tactic uint8

const (
	Patrolling Tactic = iota
	Searching
	Attacking
)

func (t Tactic) String() string {
	switch t {
	case Patrolling:
		return "patrolling"
	case Searching:
		return "searching"
	case Attacking:
		return "attacking"
	}
	return fmt.Sprintf("tactic(%d)", t)
}

// AIState is a set of independent progress flags kept alongside the tactic.
type AIState uint8

const (
	Pathfinding AIState = 1 << iota
	Done
	NoPath
	FiringPrimary
	FiringSecondary
	ReloadingPrimary
	ReloadingSecondary
)

const weaponFlags = FiringPrimary | FiringSecondary | ReloadingPrimary | ReloadingSecondary

var flagNames = []struct {
	flag AIState
	name string
}{
	{Pathfinding, "pathfinding"},
	{Done, "done"},
	{NoPath, "no_path"},
	{FiringPrimary, "firing_primary"},
	{FiringSecondary, "firing_secondary"},
	{ReloadingPrimary, "reloading_primary"},
	{ReloadingSecondary, "reloading_secondary"},
}

func (s AIState) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, f := range flagNames {
		if s&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// tacticTransitions lists the allowed tactic changes. Staying in the same
// tactic is always allowed.
//
//	Patrolling -> Attacking   player enters line of sight
//	Attacking  -> Searching   player leaves line of sight
//	Searching  -> Attacking   player re-acquired
//	Searching  -> Patrolling  last known position reached
var tacticTransitions = map[Tactic][]Tactic{
	Patrolling: {Attacking},
	Attacking:  {Searching},
	Searching:  {Attacking, Patrolling},
}

// CanTransition reports whether from may change to to.
func CanTransition(from, to Tactic) bool {
	if from == to {
		return true
	}
	for _, t := range tacticTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TacticState is the controller's state record: the tactic and its flags.
type TacticState struct {
	Tactic Tactic
	Flags  AIState
}

func (s *TacticState) Has(f AIState) bool { return s.Flags&f == f }

func (s *TacticState) Set(f AIState) { s.Flags |= f }

func (s *TacticState) Clear(f AIState) { s.Flags &^= f }

// Reset clears every flag.
func (s *TacticState) Reset() { s.Flags = 0 }

// ClearWeaponFlags drops the per-frame firing and reloading flags.
func (s *TacticState) ClearWeaponFlags() { s.Flags &^= weaponFlags }

// Enter switches to t and resets the flags. Transitions missing from the
// table are refused.
func (s *TacticState) Enter(t Tactic) error {
	if !CanTransition(s.Tactic, t) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Tactic, t)
	}
	s.Tactic = t
	s.Reset()
	return nil
}
