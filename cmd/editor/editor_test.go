package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/levels"
	"github.com/milk9111/tankgame/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	textures := obj.NewTextureSet("sand", "grass")
	paths := levels.Paths(filepath.Join(t.TempDir(), "test"))
	return NewEditor(obj.NewLevel(textures, obj.WithEditMode()), paths, textures, 800, 600)
}

func TestPaintEraseUndo(t *testing.T) {
	ed := newTestEditor(t)
	at := cp.Vector{X: 40, Y: 10}
	terrain := ed.level.Terrain

	require.Equal(t, []string{"grass", "sand"}, ed.Brushes())
	require.True(t, ed.Paint(at))
	assert.False(t, ed.Paint(at), "repainting the same tile")
	tile := terrain.Find(at)
	require.NotNil(t, tile)
	assert.Equal(t, 32, tile.X)
	assert.Equal(t, 0, tile.Y)
	assert.Equal(t, "grass", tile.Texture)

	ed.SelectBrush(1)
	require.True(t, ed.Paint(at))
	assert.Equal(t, "sand", terrain.Find(at).Texture)
	assert.Equal(t, 1, terrain.Len())

	require.True(t, ed.Undo())
	assert.Equal(t, "grass", terrain.Find(at).Texture)
	require.True(t, ed.Undo())
	assert.Nil(t, terrain.Find(at))
	assert.False(t, ed.Undo())
}

func TestCollisionBrushes(t *testing.T) {
	ed := newTestEditor(t)
	ed.SelectLayer(obj.Collision)
	require.Equal(t, []string{"wall", "hole", "floor"}, ed.Brushes())

	ed.SelectBrush(1)
	at := cp.Vector{X: 70, Y: 70}
	require.True(t, ed.Paint(at))
	assert.Equal(t, obj.Hole, ed.level.Collision.Find(at).Pass)
	assert.Zero(t, ed.level.Terrain.Len())

	ed.SelectBrush(7)
	assert.Equal(t, 1, ed.brush[obj.Collision], "out of range brush is ignored")

	assert.True(t, ed.Erase(at))
	assert.False(t, ed.Erase(at))
	assert.True(t, ed.Undo())
	assert.NotNil(t, ed.level.Collision.Find(at))
}

func TestUndoAfterShift(t *testing.T) {
	ed := newTestEditor(t)
	at := cp.Vector{X: 8, Y: 8}
	require.True(t, ed.Paint(at))
	ed.SelectBrush(1)
	require.True(t, ed.Paint(at))

	ed.Shift(32, 0)
	moved := cp.Vector{X: 40, Y: 8}
	require.Equal(t, "sand", ed.level.Terrain.Find(moved).Texture)

	require.True(t, ed.Undo())
	restored := ed.level.Terrain.Find(moved)
	require.NotNil(t, restored)
	assert.Equal(t, "grass", restored.Texture)
	assert.Nil(t, ed.level.Terrain.Find(at))
}

func TestCopyRecord(t *testing.T) {
	ed := newTestEditor(t)
	var copied string
	ed.copy = func(s string) { copied = s }

	require.True(t, ed.Paint(cp.Vector{X: 1, Y: 1}))
	ed.SelectLayer(obj.Objective)
	ed.SelectBrush(1)
	require.True(t, ed.Paint(cp.Vector{X: 70, Y: 40}))

	assert.Equal(t, "1:64,32", ed.CopyRecord(cp.Vector{X: 65, Y: 60}))
	assert.Equal(t, "1:64,32", copied)

	assert.Equal(t, "96,96", ed.CopyRecord(cp.Vector{X: 100, Y: 100}))
	assert.Equal(t, "96,96", copied)

	ed.copy = nil
	assert.Equal(t, "1:64,32", ed.CopyRecord(cp.Vector{X: 65, Y: 60}))
	assert.Contains(t, ed.status, "no clipboard")
}

func TestSave(t *testing.T) {
	ed := newTestEditor(t)
	require.True(t, ed.Paint(cp.Vector{X: 40, Y: 40}))
	ed.SelectLayer(obj.Collision)
	require.True(t, ed.Paint(cp.Vector{X: 72, Y: 40}))
	require.True(t, ed.dirty)

	require.NoError(t, ed.Save())
	assert.False(t, ed.dirty)

	lvl, err := obj.LoadLevel(ed.paths, obj.NewTextureSet("grass", "sand"))
	require.NoError(t, err)
	require.Equal(t, 1, lvl.Terrain.Len())
	require.Equal(t, 1, lvl.Collision.Len())
	assert.Equal(t, 0, lvl.Terrain.Tiles()[0].X)
	assert.Equal(t, 32, lvl.Collision.Tiles()[0].X)
}

func TestLayoutResizesViewport(t *testing.T) {
	ed := newTestEditor(t)
	focus := cp.Vector{X: 910, Y: 450}

	_, moved := ed.level.Pan(focus)
	require.False(t, moved)

	w, h := ed.Layout(1220, 900)
	assert.Equal(t, 1220, w)
	assert.Equal(t, 900, h)
	d, moved := ed.level.Pan(focus)
	require.True(t, moved, "focus is now inside the right margin")
	assert.Equal(t, cp.Vector{X: -32}, d)

	w, h = ed.Layout(panelWidth, 50)
	assert.Equal(t, 1220, w, "no room for the level keeps the last size")
	assert.Equal(t, 900, h)
}

func TestOpenLevel(t *testing.T) {
	textures, err := levels.Textures("")
	require.NoError(t, err)
	dir := t.TempDir()

	lvl, err := openLevel(levels.Paths(filepath.Join(dir, "fresh")), textures, 640, 480)
	require.NoError(t, err)
	assert.True(t, lvl.Editable())
	assert.Zero(t, lvl.Terrain.Len())

	lvl, err = openLevel(levels.Paths(filepath.Join(dir, "arena")), textures, 640, 480)
	require.NoError(t, err)
	assert.True(t, lvl.Editable())
	assert.NotZero(t, lvl.Terrain.Len())

	bad := levels.Paths(filepath.Join(dir, "bad"))
	bad.Terrain = filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad.Terrain, []byte("grass:0,0\n"), 0o644))
	_, err = openLevel(bad, textures, 640, 480)
	assert.ErrorIs(t, err, obj.ErrWrongExtension)
}
