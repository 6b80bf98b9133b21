package levels

import (
	"testing"

	"github.com/milk9111/tankgame/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedArena(t *testing.T) {
	textures, err := Textures("")
	require.NoError(t, err)
	assert.True(t, textures.Has("grass"))

	lvl, err := Load("arena", textures)
	require.NoError(t, err)
	assert.NotZero(t, lvl.Terrain.Len())
	assert.NotEmpty(t, lvl.PointsOfInterest())
	assert.Len(t, lvl.Spawns(obj.PlayerSpawn), 1)
	for _, sp := range lvl.Spawns(obj.EnemySpawn) {
		assert.False(t, lvl.Blocked(sp.Center()), "spawn at %d,%d is blocked", sp.X, sp.Y)
	}
}

func TestPaths(t *testing.T) {
	p := Paths("maps/arena.tmap")
	assert.Equal(t, "maps/arena.tmap", p.Terrain)
	assert.Equal(t, "maps/arena.cmap", p.Collision)
	assert.Equal(t, "maps/arena.omap", p.Objective)
}
