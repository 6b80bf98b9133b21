package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentIntersection(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 cp.Vector
		want           cp.Vector
		ok             bool
	}{
		{"crossing", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 0, Y: 10}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 5, Y: 5}, true},
		{"a vertical", cp.Vector{X: 3, Y: -5}, cp.Vector{X: 3, Y: 5}, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 3, Y: 0}, true},
		{"b vertical", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 4, Y: 0}, cp.Vector{X: 4, Y: 10}, cp.Vector{X: 4, Y: 4}, true},
		{"both vertical", cp.Vector{X: 1, Y: 0}, cp.Vector{X: 1, Y: 5}, cp.Vector{X: 2, Y: 0}, cp.Vector{X: 2, Y: 5}, cp.Vector{}, false},
		{"parallel", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 0, Y: 1}, cp.Vector{X: 10, Y: 1}, cp.Vector{}, false},
		{"lines cross outside segments", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 0, Y: 10}, cp.Vector{X: 10, Y: 0}, cp.Vector{}, false},
		{"touching endpoint", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 5, Y: 0}, cp.Vector{X: 5, Y: -5}, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 5, Y: 0}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := SegmentIntersection(c.a1, c.a2, c.b1, c.b2)
			require.Equal(t, c.ok, ok)
			if ok {
				assert.InDelta(t, c.want.X, got.X, 1e-9)
				assert.InDelta(t, c.want.Y, got.Y, 1e-9)
			}
		})
	}
}

func TestCheckCollision(t *testing.T) {
	los := NewLineOfSight(200)
	los.Update(cp.Vector{X: 0, Y: 0}, 0)
	assert.InDelta(t, 200.0, los.End.X, 1e-9)

	assert.True(t, los.CheckCollision(common.BoxAt(100, -10, 20, 20)), "crossing")
	assert.False(t, los.CheckCollision(common.BoxAt(100, 10, 20, 20)), "below the ray")
	assert.False(t, los.CheckCollision(common.BoxAt(300, -10, 20, 20)), "beyond the end")
	assert.False(t, los.CheckCollision(common.BoxAt(-50, -10, 20, 20)), "behind the origin")
	assert.True(t, los.CheckCollision(common.BoxAt(-10, -10, 500, 20)), "ray inside the box")

	los.Update(cp.Vector{X: 0, Y: 0}, 90)
	assert.True(t, los.CheckCollision(common.BoxAt(-5, 150, 10, 10)))
	assert.False(t, los.CheckCollision(common.BoxAt(100, -10, 20, 20)))
}

func TestTruncatePicksNearestWall(t *testing.T) {
	walls := obj.NewLayer(obj.Collision)
	// Added far wall first so insertion order would pick the wrong one.
	walls.Add(&obj.Tile{X: 256, Y: 0, Pass: obj.Wall})
	walls.Add(&obj.Tile{X: 128, Y: 0, Pass: obj.Wall})
	walls.Add(&obj.Tile{X: 64, Y: 64, Pass: obj.Wall})
	walls.Add(&obj.Tile{X: 64, Y: 0, Pass: obj.Hole})

	los := NewLineOfSight(400)
	los.Update(cp.Vector{X: 16, Y: 16}, 0)
	require.True(t, los.Truncate(walls))
	assert.InDelta(t, 128.0, los.End.X, 1e-6)
	assert.InDelta(t, 16.0, los.End.Y, 1e-6)
	assert.InDelta(t, 112.0, los.Distance(), 1e-6)

	// A target behind the wall is hidden, one before it is seen.
	assert.False(t, los.CheckCollision(common.BoxAt(300, 0, 32, 32)))
	assert.True(t, los.CheckCollision(common.BoxAt(96, 0, 16, 32)))

	// Update restores the full length before the next truncation.
	los.Update(cp.Vector{X: 16, Y: 16}, 180)
	assert.False(t, los.Truncate(walls))
	assert.InDelta(t, 400.0, los.Distance(), 1e-6)
}

func TestTruncateDiagonal(t *testing.T) {
	walls := obj.NewLayer(obj.Collision)
	for i := 0; i < 6; i++ {
		walls.Add(&obj.Tile{X: 160, Y: i * 32, Pass: obj.Wall})
		walls.Add(&obj.Tile{X: 224, Y: i * 32, Pass: obj.Wall})
	}
	los := NewLineOfSight(300)
	origin := cp.Vector{X: 16, Y: 16}
	los.Update(origin, 30)
	require.True(t, los.Truncate(walls))
	assert.InDelta(t, 160.0, los.End.X, 1e-6)
	for _, tile := range walls.Tiles() {
		if p, ok := SegmentBoxIntersection(origin, origin.Add(common.Forward(30).Mult(300)), tile.Box()); ok {
			assert.LessOrEqual(t, los.Distance(), origin.Distance(p)+1e-6)
		}
	}
}
