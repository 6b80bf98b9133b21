package obj

import (
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLevelFiles(t *testing.T) LevelPaths {
	t.Helper()
	dir := t.TempDir()
	return LevelPaths{
		Terrain:   writeFile(t, dir, "l.tmap", "grass:0,0\ngrass:32,0\ngrass:64,0\ngrass:0,32\ngrass:32,32\ngrass:64,32\n"),
		Collision: writeFile(t, dir, "l.cmap", "64,0\nhole:64,32\n"),
		Objective: writeFile(t, dir, "l.omap", "2:0,0\n1:32,32\n0:0,32\n"),
	}
}

func TestLoadLevel(t *testing.T) {
	paths := testLevelFiles(t)

	_, err := LoadLevel(paths, nil)
	require.ErrorIs(t, err, ErrNoTextures)

	lvl, err := LoadLevel(paths, NewTextureSet("grass"))
	require.NoError(t, err)
	assert.Equal(t, 6, lvl.Terrain.Len())
	assert.Equal(t, 2, lvl.Collision.Len())
	assert.Len(t, lvl.PointsOfInterest(), 1)
	assert.Len(t, lvl.Spawns(EnemySpawn), 1)

	assert.False(t, lvl.Blocked(cp.Vector{X: 10, Y: 10}))
	assert.True(t, lvl.Blocked(cp.Vector{X: 70, Y: 10}), "wall")
	assert.True(t, lvl.Blocked(cp.Vector{X: 70, Y: 40}), "hole")
	assert.True(t, lvl.Blocked(cp.Vector{X: 200, Y: 10}), "off map")
}

func TestPanKeepsLayersRegistered(t *testing.T) {
	lvl, err := LoadLevel(testLevelFiles(t), NewTextureSet("grass"), WithViewport(640, 480))
	require.NoError(t, err)

	delta, moved := lvl.Pan(cp.Vector{X: 320, Y: 240})
	assert.False(t, moved)
	assert.Equal(t, cp.Vector{}, delta)

	delta, moved = lvl.Pan(cp.Vector{X: 50, Y: 470})
	require.True(t, moved)
	assert.Equal(t, cp.Vector{X: 32, Y: -32}, delta)

	wall := lvl.Collision.Find(cp.Vector{X: 96 + 1, Y: -32 + 1})
	require.NotNil(t, wall)
	assert.Equal(t, Wall, wall.Pass)
	terrain := lvl.Terrain.Find(cp.Vector{X: 96 + 1, Y: -32 + 1})
	require.NotNil(t, terrain, "terrain moved with collision")
	spawn := lvl.Objective.Find(cp.Vector{X: 32 + 1, Y: -32 + 1})
	require.NotNil(t, spawn)
	assert.Equal(t, PlayerSpawn, spawn.Attr)
}

func TestSaveRequiresEditModeAndExtensions(t *testing.T) {
	paths := testLevelFiles(t)
	lvl, err := LoadLevel(paths, NewTextureSet("grass"))
	require.NoError(t, err)
	assert.ErrorIs(t, lvl.Save(paths), ErrNotEditable)

	lvl, err = LoadLevel(paths, NewTextureSet("grass"), WithEditMode())
	require.NoError(t, err)
	bad := paths
	bad.Objective = filepath.Join(t.TempDir(), "out.txt")
	assert.ErrorIs(t, lvl.Save(bad), ErrWrongExtension)
	assert.ErrorIs(t, lvl.Objective.Save(bad.Objective), ErrWrongExtension)
}

func TestObjectiveRoundTrip(t *testing.T) {
	type triple struct {
		attr Attribute
		x, y int
	}
	collect := func(l *Layer, ox, oy int) map[triple]bool {
		out := map[triple]bool{}
		for _, tile := range l.Tiles() {
			out[triple{tile.Attr, tile.X - ox, tile.Y - oy}] = true
		}
		return out
	}

	lvl, err := LoadLevel(testLevelFiles(t), NewTextureSet("grass"), WithEditMode(), WithViewport(640, 480))
	require.NoError(t, err)
	lvl.Shift(96, 160)
	ox, oy := lvl.Origin()
	before := collect(lvl.Objective, ox, oy)

	dir := t.TempDir()
	out := LevelPaths{
		Terrain:   filepath.Join(dir, "o.tmap"),
		Collision: filepath.Join(dir, "o.cmap"),
		Objective: filepath.Join(dir, "o.omap"),
	}
	require.NoError(t, lvl.Save(out))

	again, err := LoadLevel(out, NewTextureSet("grass"))
	require.NoError(t, err)
	ax, ay := again.Origin()
	assert.Equal(t, 0, ax)
	assert.Equal(t, 0, ay)
	assert.Equal(t, before, collect(again.Objective, 0, 0))
	assert.Equal(t, lvl.Terrain.Len(), again.Terrain.Len())
	assert.Equal(t, Hole, again.Collision.Find(cp.Vector{X: 65, Y: 33}).Pass)
}

func TestRecordMatchesSavedLine(t *testing.T) {
	lvl, err := LoadLevel(testLevelFiles(t), NewTextureSet("grass"), WithEditMode())
	require.NoError(t, err)
	lvl.Shift(64, 32)

	cases := []struct {
		kind Kind
		at   cp.Vector
		want string
	}{
		{kind: Terrain, at: cp.Vector{X: 100, Y: 70}, want: "grass:32,32"},
		{kind: Collision, at: cp.Vector{X: 130, Y: 40}, want: "64,0"},
		{kind: Collision, at: cp.Vector{X: 130, Y: 70}, want: "hole:64,32"},
		{kind: Objective, at: cp.Vector{X: 70, Y: 40}, want: "2:0,0"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			tile := lvl.Layer(c.kind).Find(c.at)
			require.NotNil(t, tile)
			assert.Equal(t, c.want, lvl.Record(c.kind, tile))
		})
	}
}
