package component

import "github.com/milk9111/tankgame/obj"

// Path is an ordered tile route with a cursor. The cursor only moves forward
// and never passes the end.
type Path struct {
	tiles  []*obj.Tile
	cursor int
}

func (p *Path) reset(tiles []*obj.Tile) {
	p.tiles = tiles
	p.cursor = 0
}

func (p *Path) Len() int { return len(p.tiles) }

func (p *Path) Tiles() []*obj.Tile { return p.tiles }

// Remaining counts tiles NextTile has not returned yet.
func (p *Path) Remaining() int { return len(p.tiles) - p.cursor }

// NextTile returns the tile at the cursor and advances it, or nil once the
// path is exhausted.
func (p *Path) NextTile() *obj.Tile {
	if p.cursor >= len(p.tiles) {
		return nil
	}
	t := p.tiles[p.cursor]
	p.cursor++
	return t
}

// Reverse flips the tile order and rewinds the cursor.
func (p *Path) Reverse() {
	for i, j := 0, len(p.tiles)-1; i < j; i, j = i+1, j-1 {
		p.tiles[i], p.tiles[j] = p.tiles[j], p.tiles[i]
	}
	p.cursor = 0
}

func (p *Path) Last() *obj.Tile {
	if len(p.tiles) == 0 {
		return nil
	}
	return p.tiles[len(p.tiles)-1]
}
