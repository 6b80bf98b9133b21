package main

import (
	"testing"

	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/prefabs"
	"github.com/milk9111/tankgame/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWorld(t *testing.T) *system.World {
	t.Helper()
	settings, err := prefabs.LoadSettings("settings.yaml")
	require.NoError(t, err)
	w, err := system.LoadWorld(settings)
	require.NoError(t, err)
	require.NotEmpty(t, w.Enemies)
	return w
}

func TestRunIdleStopsAtFrameLimit(t *testing.T) {
	w := loadWorld(t)
	st := Run(w, 30, Idle, 0)

	assert.Equal(t, 30, st.Frames)
	assert.Equal(t, OutcomeRunning, st.Outcome)
	assert.Zero(t, st.Shots[component.FactionPlayer])
	assert.Equal(t, w.Registry.Len(), st.EnemiesLeft)
	assert.Equal(t, w.Clock(), st.Clock)
}

func TestTurretAimsAtNearestEnemy(t *testing.T) {
	w := loadWorld(t)
	in := Turret(w)
	require.True(t, in.AimValid)
	assert.True(t, in.FirePrimary)

	target, ok := nearestEnemy(w)
	require.True(t, ok)
	assert.Equal(t, target, in.Aim)
	from := w.Player.Body.Pos
	for _, e := range w.Enemies {
		assert.LessOrEqual(t, target.DistanceSq(from), e.Position().DistanceSq(from))
	}

	st := Run(w, 5, Turret, 1)
	assert.Positive(t, st.Shots[component.FactionPlayer])
}

func TestTurretWithoutEnemies(t *testing.T) {
	w := loadWorld(t)
	for _, e := range w.Enemies {
		e.Destroy()
	}
	assert.Equal(t, system.Input{}, Turret(w))
}

func TestStatsFields(t *testing.T) {
	st := Stats{
		Frames:  12,
		Outcome: OutcomeWon,
		Shots:   map[component.Faction]int{component.FactionPlayer: 3},
		Hits:    map[component.Faction]int{component.FactionEnemy: 1},
		Kills:   2,
	}
	f := st.Fields()
	assert.Equal(t, 12, f["frames"])
	assert.Equal(t, OutcomeWon, f["outcome"])
	assert.Equal(t, 3, f["player_shots"])
	assert.Equal(t, 1, f["enemy_hits"])
	assert.Equal(t, 0, f["enemy_shots"])
	assert.Equal(t, 2, f["kills"])
}
