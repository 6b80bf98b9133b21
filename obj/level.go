package obj

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/logger"
	"github.com/sirupsen/logrus"
)

// ErrNoTextures is returned when a level is loaded without any valid terrain
// texture names. The game cannot run without them.
var ErrNoTextures = errors.New("no valid terrain textures")

const (
	DefaultPanMargin = 100
	DefaultPanStep   = common.TileSize
)

// LevelPaths names the three layer files of a level.
type LevelPaths struct {
	Terrain   string `yaml:"terrain"`
	Collision string `yaml:"collision"`
	Objective string `yaml:"objective"`
}

// Level holds the terrain, collision and objective layers. All three share
// one coordinate space and are always panned together.
type Level struct {
	Terrain   *Layer
	Collision *Layer
	Objective *Layer

	editable  bool
	viewW     float64
	viewH     float64
	panMargin float64
	panStep   int
}

type LevelOption func(*Level)

// WithEditMode allows Save.
func WithEditMode() LevelOption {
	return func(l *Level) { l.editable = true }
}

func WithViewport(w, h float64) LevelOption {
	return func(l *Level) { l.viewW, l.viewH = w, h }
}

// WithPan sets the edge margin that triggers panning and the distance moved
// per call. The step is rounded to whole cells, at least one.
func WithPan(margin float64, step int) LevelOption {
	return func(l *Level) {
		if margin > 0 {
			l.panMargin = margin
		}
		cells := (step + common.TileSize/2) / common.TileSize
		if cells < 1 {
			cells = 1
		}
		l.panStep = cells * common.TileSize
	}
}

// NewLevel returns an empty level.
func NewLevel(textures TextureSet, opts ...LevelOption) *Level {
	l := &Level{
		Terrain:   NewLayer(Terrain),
		Collision: NewLayer(Collision),
		Objective: NewLayer(Objective),
		viewW:     common.BaseWidth,
		viewH:     common.BaseHeight,
		panMargin: DefaultPanMargin,
		panStep:   DefaultPanStep,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Terrain.SetTextures(textures)
	for _, ly := range l.Layers() {
		ly.SetEditable(l.editable)
	}
	return l
}

// LoadLevel reads the three layer files from disk.
func LoadLevel(paths LevelPaths, textures TextureSet, opts ...LevelOption) (*Level, error) {
	return loadLevel(paths, textures, opts, func(ly *Layer, p string) error { return ly.Load(p) })
}

// LoadLevelFS reads the three layer files from fsys.
func LoadLevelFS(fsys fs.FS, paths LevelPaths, textures TextureSet, opts ...LevelOption) (*Level, error) {
	return loadLevel(paths, textures, opts, func(ly *Layer, p string) error { return ly.LoadFS(fsys, p) })
}

func loadLevel(paths LevelPaths, textures TextureSet, opts []LevelOption, load func(*Layer, string) error) (*Level, error) {
	if textures.Len() == 0 {
		return nil, fmt.Errorf("obj: load level: %w", ErrNoTextures)
	}
	l := NewLevel(textures, opts...)
	for _, step := range []struct {
		layer *Layer
		path  string
	}{
		{l.Terrain, paths.Terrain},
		{l.Collision, paths.Collision},
		{l.Objective, paths.Objective},
	} {
		if err := load(step.layer, step.path); err != nil {
			return nil, err
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"terrain":   l.Terrain.Len(),
		"collision": l.Collision.Len(),
		"objective": l.Objective.Len(),
	}).Info("level loaded")
	return l, nil
}

func (l *Level) Layers() []*Layer {
	return []*Layer{l.Terrain, l.Collision, l.Objective}
}

// Layer returns the layer of kind k.
func (l *Level) Layer(k Kind) *Layer {
	switch k {
	case Collision:
		return l.Collision
	case Objective:
		return l.Objective
	default:
		return l.Terrain
	}
}

func (l *Level) Editable() bool { return l.editable }

func (l *Level) SetViewport(w, h float64) { l.viewW, l.viewH = w, h }

// Pan shifts every layer by the pan step when focus sits within the margin
// of a viewport edge, moving the map so the focus heads back toward the
// centre. It returns the applied shift so callers can move entities that
// live in the same coordinate space.
func (l *Level) Pan(focus cp.Vector) (cp.Vector, bool) {
	dx, dy := 0, 0
	switch {
	case focus.X < l.panMargin:
		dx = l.panStep
	case focus.X > l.viewW-l.panMargin:
		dx = -l.panStep
	}
	switch {
	case focus.Y < l.panMargin:
		dy = l.panStep
	case focus.Y > l.viewH-l.panMargin:
		dy = -l.panStep
	}
	if dx == 0 && dy == 0 {
		return cp.Vector{}, false
	}
	l.Shift(dx, dy)
	return cp.Vector{X: float64(dx), Y: float64(dy)}, true
}

// Shift moves all three layers by whole cells. Offsets that are not
// multiples of the tile size are snapped down.
func (l *Level) Shift(dx, dy int) {
	dx = common.Snap(float64(dx))
	dy = common.Snap(float64(dy))
	for _, ly := range l.Layers() {
		ly.shift(dx, dy)
	}
}

// Origin is the top-left corner shared by all layers, the point Save moves
// to (0, 0).
func (l *Level) Origin() (int, int) {
	ox, oy, first := 0, 0, true
	for _, ly := range l.Layers() {
		x, y, ok := ly.bounds()
		if !ok {
			continue
		}
		if first || x < ox {
			ox = x
		}
		if first || y < oy {
			oy = y
		}
		first = false
	}
	return ox, oy
}

// Save writes all three layers normalized by one shared origin. Every path
// is checked before anything is written.
func (l *Level) Save(paths LevelPaths) error {
	if !l.editable {
		return fmt.Errorf("obj: save level: %w", ErrNotEditable)
	}
	targets := []struct {
		layer *Layer
		path  string
	}{
		{l.Terrain, paths.Terrain},
		{l.Collision, paths.Collision},
		{l.Objective, paths.Objective},
	}
	for _, tg := range targets {
		if !tg.layer.kind.matches(tg.path) {
			return fmt.Errorf("obj: save %s %s: %w", tg.layer.kind, tg.path, ErrWrongExtension)
		}
	}
	ox, oy := l.Origin()
	for _, tg := range targets {
		if err := tg.layer.saveAt(tg.path, ox, oy); err != nil {
			return err
		}
	}
	return nil
}

// Record is the line Save would write for t on the layer of kind k.
func (l *Level) Record(k Kind, t *Tile) string {
	ox, oy := l.Origin()
	return formatRecord(k, t, t.X-ox, t.Y-oy)
}

// NavTile returns the tile navigation uses for the cell containing p: the
// collision tile if there is one, else the terrain tile, which is floor.
func (l *Level) NavTile(p cp.Vector) *Tile {
	if t := l.Collision.Find(p); t != nil {
		return t
	}
	return l.Terrain.Find(p)
}

// Blocked reports whether a tank may not occupy p.
func (l *Level) Blocked(p cp.Vector) bool {
	return !l.NavTile(p).Passable()
}

// BlockedArea reports whether any cell under bb is impassable.
func (l *Level) BlockedArea(bb cp.BB) bool {
	for _, corner := range []cp.Vector{
		{X: bb.L, Y: bb.B}, {X: bb.R - 1e-6, Y: bb.B},
		{X: bb.L, Y: bb.T - 1e-6}, {X: bb.R - 1e-6, Y: bb.T - 1e-6},
	} {
		if l.Blocked(corner) {
			return true
		}
	}
	return false
}

func (l *Level) Spawns(attr Attribute) []*Tile {
	var out []*Tile
	for _, t := range l.Objective.Tiles() {
		if t.Attr == attr {
			out = append(out, t)
		}
	}
	return out
}

func (l *Level) PointsOfInterest() []*Tile {
	return l.Spawns(PointOfInterest)
}
