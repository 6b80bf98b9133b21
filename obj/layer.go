package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/logger"
	"github.com/sirupsen/logrus"
)

var (
	// ErrWrongExtension is returned when a layer file does not carry the
	// extension of its layer kind. Callers treat it as fatal.
	ErrWrongExtension = errors.New("wrong layer file extension")
	ErrNotEditable    = errors.New("level not opened in edit mode")
)

// Kind selects which of the three level layers a Layer is.
type Kind uint8

const (
	Terrain Kind = iota
	Collision
	Objective
)

func (k Kind) String() string {
	switch k {
	case Terrain:
		return "terrain"
	case Collision:
		return "collision"
	case Objective:
		return "objective"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Ext is the file extension layer files of this kind must carry.
func (k Kind) Ext() string {
	switch k {
	case Terrain:
		return ".tmap"
	case Collision:
		return ".cmap"
	case Objective:
		return ".omap"
	}
	return ""
}

func (k Kind) matches(path string) bool {
	return strings.EqualFold(filepath.Ext(path), k.Ext())
}

// Layer is a sparse set of tiles with at most one tile per cell.
type Layer struct {
	kind     Kind
	tiles    []*Tile
	index    map[cellKey]*Tile
	textures TextureSet
	editable bool
}

func NewLayer(kind Kind) *Layer {
	return &Layer{kind: kind, index: make(map[cellKey]*Tile)}
}

func (l *Layer) Kind() Kind { return l.kind }

// SetTextures sets the master list terrain records are checked against. A
// terrain layer without one accepts every texture name.
func (l *Layer) SetTextures(ts TextureSet) { l.textures = ts }

func (l *Layer) SetEditable(v bool) { l.editable = v }

func (l *Layer) Len() int { return len(l.tiles) }

// Tiles returns the layer's tiles. The slice must not be modified.
func (l *Layer) Tiles() []*Tile { return l.tiles }

// Add snaps t onto the grid and places it, replacing whatever tile held the
// cell before.
func (l *Layer) Add(t *Tile) {
	if t == nil {
		return
	}
	t.X = common.Snap(float64(t.X))
	t.Y = common.Snap(float64(t.Y))
	key := t.cell()
	if old, ok := l.index[key]; ok {
		l.tiles = slices.DeleteFunc(l.tiles, func(x *Tile) bool { return x == old })
	}
	l.index[key] = t
	l.tiles = append(l.tiles, t)
}

// Remove deletes t from the layer. It reports false if t was not on it.
func (l *Layer) Remove(t *Tile) bool {
	if t == nil {
		return false
	}
	key := t.cell()
	if l.index[key] != t {
		return false
	}
	delete(l.index, key)
	l.tiles = slices.DeleteFunc(l.tiles, func(x *Tile) bool { return x == t })
	return true
}

// Find returns the tile whose cell contains p, or nil.
func (l *Layer) Find(p cp.Vector) *Tile {
	return l.index[keyAt(p)]
}

// FindInArea returns the first tile, scanning cells row by row, whose cell
// overlaps bb. Cells that only touch the box edge are not reported.
func (l *Layer) FindInArea(bb cp.BB) *Tile {
	var found *Tile
	l.eachCellIn(bb, func(t *Tile) bool {
		found = t
		return false
	})
	return found
}

// TilesInArea returns every tile whose cell overlaps bb.
func (l *Layer) TilesInArea(bb cp.BB) []*Tile {
	var out []*Tile
	l.eachCellIn(bb, func(t *Tile) bool {
		out = append(out, t)
		return true
	})
	return out
}

func (l *Layer) eachCellIn(bb cp.BB, fn func(*Tile) bool) {
	if bb.R <= bb.L || bb.T <= bb.B {
		return
	}
	c0 := int(math.Floor(bb.L / common.TileSize))
	c1 := int(math.Ceil(bb.R/common.TileSize)) - 1
	r0 := int(math.Floor(bb.B / common.TileSize))
	r1 := int(math.Ceil(bb.T/common.TileSize)) - 1
	if (c1-c0+1)*(r1-r0+1) > len(l.tiles) {
		// Large query: scan the tiles instead of the cells, keeping row-major
		// order for the result.
		var hits []*Tile
		for _, t := range l.tiles {
			if common.Overlaps(t.Box(), bb) {
				hits = append(hits, t)
			}
		}
		slices.SortFunc(hits, compareRowMajor)
		for _, t := range hits {
			if !fn(t) {
				return
			}
		}
		return
	}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if t, ok := l.index[cellKey{c, r}]; ok {
				if !fn(t) {
					return
				}
			}
		}
	}
}

func compareRowMajor(a, b *Tile) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

// shift moves every tile by whole pixels. dx and dy must be multiples of the
// tile size.
func (l *Layer) shift(dx, dy int) {
	clear(l.index)
	for _, t := range l.tiles {
		t.X += dx
		t.Y += dy
		l.index[t.cell()] = t
	}
}

func (l *Layer) bounds() (minX, minY int, ok bool) {
	for i, t := range l.tiles {
		if i == 0 || t.X < minX {
			minX = t.X
		}
		if i == 0 || t.Y < minY {
			minY = t.Y
		}
	}
	return minX, minY, len(l.tiles) > 0
}

// Load replaces the layer's tiles with the records in path. On an I/O error
// the existing tiles are left as they were.
func (l *Layer) Load(path string) error {
	if !l.kind.matches(path) {
		return fmt.Errorf("obj: load %s %s: %w", l.kind, path, ErrWrongExtension)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("obj: load %s: %w", path, err)
	}
	defer f.Close()
	return l.Read(f, path)
}

// LoadFS is Load against a file system such as an embedded one.
func (l *Layer) LoadFS(fsys fs.FS, path string) error {
	if !l.kind.matches(path) {
		return fmt.Errorf("obj: load %s %s: %w", l.kind, path, ErrWrongExtension)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("obj: load %s: %w", path, err)
	}
	defer f.Close()
	return l.Read(f, path)
}

// Read parses layer records from r. Malformed records are logged and
// skipped. name is only used in diagnostics.
func (l *Layer) Read(r io.Reader, name string) error {
	fresh := NewLayer(l.kind)
	sc := bufio.NewScanner(r)
	lineNo := 0
	skipped := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if isComment(line) {
			continue
		}
		t, err := parseRecord(l.kind, line, l.textures)
		if errors.Is(err, errUnknownTexture) {
			logger.Log.WithFields(logrus.Fields{"file": name, "line": lineNo}).Debug(err)
			continue
		}
		if err != nil {
			skipped++
			logger.Log.WithFields(logrus.Fields{
				"file":  name,
				"line":  lineNo,
				"layer": l.kind.String(),
			}).Warn(err)
			continue
		}
		fresh.Add(t)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("obj: read %s: %w", name, err)
	}

	l.tiles, l.index = fresh.tiles, fresh.index
	logger.Log.WithFields(logrus.Fields{
		"file":    name,
		"layer":   l.kind.String(),
		"tiles":   len(l.tiles),
		"skipped": skipped,
	}).Debug("layer loaded")
	return nil
}

// Save writes the layer with its minimum x/y moved to the origin. It is only
// allowed on editable layers and requires the layer's file extension.
func (l *Layer) Save(path string) error {
	ox, oy, _ := l.bounds()
	return l.saveAt(path, ox, oy)
}

func (l *Layer) saveAt(path string, ox, oy int) error {
	if !l.editable {
		return fmt.Errorf("obj: save %s: %w", path, ErrNotEditable)
	}
	if !l.kind.matches(path) {
		return fmt.Errorf("obj: save %s %s: %w", l.kind, path, ErrWrongExtension)
	}
	var buf bytes.Buffer
	if err := l.Write(&buf, ox, oy); err != nil {
		return fmt.Errorf("obj: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("obj: save %s: %w", path, err)
	}
	return nil
}

// Write emits one record per tile, row-major, with (ox, oy) subtracted from
// every coordinate.
func (l *Layer) Write(w io.Writer, ox, oy int) error {
	sorted := slices.Clone(l.tiles)
	slices.SortFunc(sorted, compareRowMajor)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; %s layer\n", l.kind)
	for _, t := range sorted {
		bw.WriteString(formatRecord(l.kind, t, t.X-ox, t.Y-oy))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
