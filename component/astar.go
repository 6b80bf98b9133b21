package component

import (
	"container/heap"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/obj"
)

// NavGrid resolves the navigation tile for a point. *obj.Level satisfies it.
type NavGrid interface {
	NavTile(p cp.Vector) *obj.Tile
}

type cellKey struct {
	col, row int
}

func tileCell(t *obj.Tile) cellKey {
	return cellKey{t.X / common.TileSize, t.Y / common.TileSize}
}

func (k cellKey) center() cp.Vector {
	return cp.Vector{
		X: float64(k.col*common.TileSize) + common.TileSize/2,
		Y: float64(k.row*common.TileSize) + common.TileSize/2,
	}
}

type pathNode struct {
	tile      *obj.Tile
	key       cellKey
	parent    *pathNode
	moves     int
	heuristic int
	cost      int
	closed    bool
	seq       int
	index     int
}

// openList is a min-heap of nodes by cost, then heuristic, then insertion.
type openList []*pathNode

func (o openList) Len() int { return len(o) }
func (o openList) Less(i, j int) bool {
	if o[i].cost != o[j].cost {
		return o[i].cost < o[j].cost
	}
	if o[i].heuristic != o[j].heuristic {
		return o[i].heuristic < o[j].heuristic
	}
	return o[i].seq < o[j].seq
}
func (o openList) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openList) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openList) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*o = old[:len(old)-1]
	return n
}

func manhattan(a, b cellKey) int {
	return abs(a.col-b.col) + abs(a.row-b.row)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PathPlanner searches the navigation grid of a level. Every step costs one
// move, diagonal or not, and the estimate is the Manhattan distance in cells.
type PathPlanner struct {
	grid     NavGrid
	path     Path
	expanded int
}

func NewPathPlanner(grid NavGrid) *PathPlanner {
	return &PathPlanner{grid: grid}
}

// FindPath searches from start to goal and stores the result as the current
// path. When the goal cannot be reached it returns false and the path holds
// the partial route ending at the explored cell closest to the goal.
func (p *PathPlanner) FindPath(start, goal *obj.Tile) bool {
	p.path.reset(nil)
	p.expanded = 0
	if start == nil || goal == nil || p.grid == nil {
		return false
	}

	goalKey := tileCell(goal)
	first := &pathNode{tile: start, key: tileCell(start)}
	first.heuristic = manhattan(first.key, goalKey)
	first.cost = first.heuristic

	nodes := map[cellKey]*pathNode{first.key: first}
	open := &openList{}
	heap.Push(open, first)
	best := first
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		cur.closed = true
		p.expanded++
		if cur.heuristic < best.heuristic || (cur.heuristic == best.heuristic && cur.moves < best.moves) {
			best = cur
		}
		if cur.key == goalKey {
			p.path.reset(trace(cur))
			return true
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				key := cellKey{cur.key.col + dx, cur.key.row + dy}
				n, seen := nodes[key]
				if seen && n.closed {
					continue
				}
				moves := cur.moves + 1
				if seen {
					if moves+n.heuristic < n.cost {
						n.parent = cur
						n.moves = moves
						n.cost = moves + n.heuristic
						heap.Fix(open, n.index)
					}
					continue
				}
				t := p.grid.NavTile(key.center())
				if t == nil || !t.Passable() {
					continue
				}
				seq++
				n = &pathNode{tile: t, key: key, parent: cur, moves: moves, seq: seq}
				n.heuristic = manhattan(key, goalKey)
				n.cost = moves + n.heuristic
				nodes[key] = n
				heap.Push(open, n)
			}
		}
	}

	p.path.reset(trace(best))
	return false
}

// FindPathBetween runs FindPath between the navigation tiles under two
// points.
func (p *PathPlanner) FindPathBetween(from, to cp.Vector) bool {
	if p.grid == nil {
		p.path.reset(nil)
		return false
	}
	return p.FindPath(p.grid.NavTile(from), p.grid.NavTile(to))
}

// Path is the result of the last search.
func (p *PathPlanner) Path() *Path { return &p.path }

func (p *PathPlanner) NextTile() *obj.Tile { return p.path.NextTile() }

// ReversePath flips the current path and rewinds its cursor.
func (p *PathPlanner) ReversePath() { p.path.Reverse() }

// Expanded is the number of nodes closed by the last search.
func (p *PathPlanner) Expanded() int { return p.expanded }

func trace(n *pathNode) []*obj.Tile {
	var out []*obj.Tile
	for ; n != nil; n = n.parent {
		out = append(out, n.tile)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
