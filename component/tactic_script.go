package component

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TacticTuning holds the controller parameters a tactic script may change.
type TacticTuning struct {
	SweepRate float64
	Speed     float64
}

// TacticScript runs a tengo script each time an enemy enters a tactic. The
// script sees `tactic` (its name) and `health` (0..1) and may define the
// globals `sweep_rate` and `speed`.
type TacticScript struct {
	Name     string
	compiled *tengo.Compiled
}

func NewTacticScript(name string, src []byte) (*TacticScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tactic", "")
	_ = script.Add("health", 1.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tactic script %s: compile: %w", name, err)
	}
	return &TacticScript{Name: name, compiled: compiled}, nil
}

// Clone returns a copy with its own globals, one per enemy.
func (s *TacticScript) Clone() *TacticScript {
	if s == nil {
		return nil
	}
	return &TacticScript{Name: s.Name, compiled: s.compiled.Clone()}
}

// Run evaluates the script for a tactic entry. Values the script does not
// define keep their base value.
func (s *TacticScript) Run(t Tactic, health float64, base TacticTuning) (TacticTuning, error) {
	if s == nil || s.compiled == nil {
		return base, nil
	}
	if err := s.compiled.Set("tactic", t.String()); err != nil {
		return base, err
	}
	if err := s.compiled.Set("health", health); err != nil {
		return base, err
	}
	if err := s.compiled.Run(); err != nil {
		return base, fmt.Errorf("tactic script %s: %w", s.Name, err)
	}

	out := base
	if s.compiled.IsDefined("sweep_rate") {
		if v := s.compiled.Get("sweep_rate").Float(); v > 0 {
			out.SweepRate = v
		}
	}
	if s.compiled.IsDefined("speed") {
		if v := s.compiled.Get("speed").Float(); v > 0 {
			out.Speed = v
		}
	}
	return out, nil
}
