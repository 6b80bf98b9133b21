package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/obj"
	"github.com/milk9111/tankgame/render"
	"github.com/sirupsen/logrus"
)

const panelWidth = 220

var (
	canvasColor = color.RGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff}
	gridColor   = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	hoverColor  = color.RGBA{R: 0xff, G: 0xff, B: 0x80, A: 0xff}
)

var brushKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var (
	collisionBrushes = []obj.Passability{obj.Wall, obj.Hole, obj.Floor}
	objectiveBrushes = []obj.Attribute{obj.PointOfInterest, obj.EnemySpawn, obj.PlayerSpawn}
)

// edit is one reversible change to a single cell. before is nil when the
// cell was empty, after is nil for an erase.
type edit struct {
	kind   obj.Kind
	before *obj.Tile
	after  *obj.Tile
	// shift applied to the level when the edit was made
	dx, dy int
}

type Editor struct {
	level    *obj.Level
	paths    obj.LevelPaths
	textures []string

	layer obj.Kind
	brush [3]int
	undo  []edit
	// total shift applied since the level was opened
	dx, dy int

	hover    cp.Vector
	hovering bool
	dirty    bool
	status   string

	width, height int
	ui            *ebitenui.UI
	panel         *panel
	copy          func(string)
}

func NewEditor(level *obj.Level, paths obj.LevelPaths, textures obj.TextureSet, width, height int) *Editor {
	return &Editor{
		level:    level,
		paths:    paths,
		textures: textures.Names(),
		width:    width,
		height:   height,
		status:   "ready",
	}
}

// Brushes lists what the current layer can paint.
func (e *Editor) Brushes() []string {
	switch e.layer {
	case obj.Collision:
		out := make([]string, len(collisionBrushes))
		for i, p := range collisionBrushes {
			out[i] = p.String()
		}
		return out
	case obj.Objective:
		out := make([]string, len(objectiveBrushes))
		for i, a := range objectiveBrushes {
			out[i] = a.String()
		}
		return out
	}
	return e.textures
}

func (e *Editor) SelectLayer(k obj.Kind) {
	if k > obj.Objective || k == e.layer {
		return
	}
	e.layer = k
	e.setStatus("layer %s", k)
	e.panel.sync(e)
}

func (e *Editor) SelectBrush(i int) {
	if i < 0 || i >= len(e.Brushes()) || i == e.brush[e.layer] {
		return
	}
	e.brush[e.layer] = i
	e.panel.sync(e)
}

// tileAt builds a tile for the cell containing p from the selected brush.
func (e *Editor) tileAt(p cp.Vector) *obj.Tile {
	t := obj.NewTile(p.X, p.Y)
	i := e.brush[e.layer]
	switch e.layer {
	case obj.Terrain:
		if i >= len(e.textures) {
			return nil
		}
		t.Texture = e.textures[i]
	case obj.Collision:
		t.Pass = collisionBrushes[i]
	case obj.Objective:
		t.Attr = objectiveBrushes[i]
	}
	return t
}

// Paint places the selected brush in the cell containing p. Painting a cell
// with what it already holds is a no-op.
func (e *Editor) Paint(p cp.Vector) bool {
	t := e.tileAt(p)
	if t == nil {
		return false
	}
	ly := e.level.Layer(e.layer)
	old := ly.Find(p)
	if old != nil && *old == *t {
		return false
	}
	ly.Add(t)
	e.push(edit{kind: e.layer, before: old, after: t})
	return true
}

// Erase clears the cell containing p on the current layer.
func (e *Editor) Erase(p cp.Vector) bool {
	ly := e.level.Layer(e.layer)
	old := ly.Find(p)
	if old == nil {
		return false
	}
	ly.Remove(old)
	e.push(edit{kind: e.layer, before: old})
	return true
}

func (e *Editor) push(ed edit) {
	ed.dx, ed.dy = e.dx, e.dy
	e.undo = append(e.undo, ed)
	e.dirty = true
}

// Undo reverts the last paint or erase.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	ed := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	ly := e.level.Layer(ed.kind)
	if ed.after != nil {
		ly.Remove(ed.after)
	}
	if ed.before != nil {
		// the removed tile missed every shift since the edit
		ed.before.X += e.dx - ed.dx
		ed.before.Y += e.dy - ed.dy
		ly.Add(ed.before)
	}
	e.dirty = true
	e.setStatus("undo")
	return true
}

// Shift scrolls the whole level by whole cells.
func (e *Editor) Shift(dx, dy int) {
	e.level.Shift(dx, dy)
	e.dx += dx
	e.dy += dy
}

// Save writes the three layer files. A wrong extension cannot be recovered
// from and ends the process.
func (e *Editor) Save() error {
	err := e.level.Save(e.paths)
	if errors.Is(err, obj.ErrWrongExtension) {
		logger.Log.WithError(err).Fatal("save level")
	}
	if err != nil {
		e.setStatus("save failed")
		logger.Log.WithError(err).Error("save level")
		return err
	}
	e.dirty = false
	e.setStatus("saved")
	logger.Log.WithFields(logrus.Fields{
		"terrain":   e.paths.Terrain,
		"collision": e.paths.Collision,
		"objective": e.paths.Objective,
	}).Info("level saved")
	return nil
}

// CopyRecord puts the record Save would write for the hovered cell on the
// clipboard, or just its saved coordinates when the cell is empty.
func (e *Editor) CopyRecord(p cp.Vector) string {
	var line string
	if t := e.level.Layer(e.layer).Find(p); t != nil {
		line = e.level.Record(e.layer, t)
	} else {
		ox, oy := e.level.Origin()
		c := obj.NewTile(p.X, p.Y)
		line = fmt.Sprintf("%d,%d", c.X-ox, c.Y-oy)
	}
	if e.copy == nil {
		e.setStatus("no clipboard: %s", line)
		return line
	}
	e.copy(line)
	e.setStatus("copied %s", line)
	return line
}

func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.panel.setStatus(e.status, e.dirty)
}

func (e *Editor) Update() error {
	if e.ui != nil {
		e.ui.Update()
	}

	mx, my := ebiten.CursorPosition()
	e.hover = cp.Vector{X: float64(mx), Y: float64(my)}
	e.hovering = mx >= 0 && my >= 0 && mx < e.width-panelWidth && my < e.height

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		_ = e.Save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		e.Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		e.SelectLayer((e.layer + 1) % 3)
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && e.hovering:
		e.CopyRecord(e.hover)
	}
	for i, k := range brushKeys {
		if inpututil.IsKeyJustPressed(k) {
			e.SelectBrush(i)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		e.Shift(common.TileSize, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		e.Shift(-common.TileSize, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		e.Shift(0, common.TileSize)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		e.Shift(0, -common.TileSize)
	}

	if e.hovering && !ctrl {
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			e.Paint(e.hover)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			e.Erase(e.hover)
		}
	}
	return nil
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)
	render.Level(screen, e.level, render.Options{Objectives: true})

	w, h := float32(e.width-panelWidth), float32(e.height)
	for x := float32(0); x <= w; x += common.TileSize {
		vector.StrokeLine(screen, x, 0, x, h, 1, gridColor, false)
	}
	for y := float32(0); y <= h; y += common.TileSize {
		vector.StrokeLine(screen, 0, y, w, y, 1, gridColor, false)
	}
	if e.hovering {
		c := obj.NewTile(e.hover.X, e.hover.Y)
		vector.StrokeRect(screen, float32(c.X), float32(c.Y), common.TileSize, common.TileSize, 2, hoverColor, false)
	}

	if e.ui != nil {
		e.ui.Draw(screen)
	}
}

// Layout follows the window size. The level viewport is what the side
// panel leaves free.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > panelWidth && outsideHeight > 0 && (outsideWidth != e.width || outsideHeight != e.height) {
		e.width, e.height = outsideWidth, outsideHeight
		e.level.SetViewport(float64(e.width-panelWidth), float64(e.height))
	}
	return e.width, e.height
}
