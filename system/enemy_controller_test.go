package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var openRows = []string{
	"############",
	"#..........#",
	"#..........#",
	"#..........#",
	"############",
}

func TestPatrollingEnemyAttacksWhenPlayerInSight(t *testing.T) {
	lvl := arena(t, openRows...)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	player := newTarget(cellCentre(7, 2))
	ctx := &Context{Level: lvl, Target: player, Combat: component.NewCombatResolver(6, 90)}

	e.Update(ctx)

	c := e.Controller
	assert.Equal(t, component.Attacking, c.State.Tactic)
	assert.True(t, c.SeesTarget())
	require.NotNil(t, c.Dest)
	assert.True(t, c.State.Has(component.Pathfinding))
	assert.Equal(t, cellCentre(7, 2), c.Planner.Path().Last().Center())
}

func TestAttackingEnemySearchesWhenSightLost(t *testing.T) {
	lvl := arena(t, openRows...)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	player := newTarget(cellCentre(7, 2))
	ctx := &Context{Level: lvl, Target: player, Combat: component.NewCombatResolver(6, 90)}

	e.Update(ctx)
	require.Equal(t, component.Attacking, e.Controller.State.Tactic)

	player.pos = cellCentre(7, 1)
	ctx.Frame++
	e.Update(ctx)

	c := e.Controller
	assert.Equal(t, component.Searching, c.State.Tactic)
	assert.Equal(t, player.pos, c.LastKnown)
	assert.True(t, c.State.Has(component.Pathfinding))
	assert.False(t, c.State.Has(component.NoPath))
}

func TestSearchingEnemyAttacksWhenPlayerSeenAgain(t *testing.T) {
	lvl := arena(t, openRows...)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	e.Body.Heading = 180
	c := e.Controller
	require.NoError(t, c.State.Enter(component.Attacking))
	require.NoError(t, c.State.Enter(component.Searching))
	c.LastKnown = cellCentre(7, 2)
	ctx := &Context{Level: lvl, Target: newTarget(cellCentre(7, 2))}

	// hull faces away; the sweep swings the tower round to the last
	// known bearing
	e.Update(ctx)
	assert.Equal(t, component.Searching, c.State.Tactic)
	assert.False(t, c.SeesTarget())
	assert.InDelta(t, 1.5, e.Body.TowerHeading(), 1e-6)

	ctx.Frame++
	e.Update(ctx)
	assert.True(t, c.SeesTarget())
	assert.Equal(t, component.Attacking, c.State.Tactic)
	assert.True(t, c.State.Has(component.Pathfinding))
	assert.InDelta(t, 0, common.AngleDiff(0, e.Body.TowerHeading()), 1e-6)
}

func TestTowerSweep(t *testing.T) {
	cases := []struct {
		name    string
		heading float64
		setup   func(c *Controller)
		axis    float64
	}{
		{
			name:    "patrol sweeps about the hull",
			heading: 45,
			axis:    45,
		},
		{
			name:    "search sweeps about the last known bearing",
			heading: 180,
			setup: func(c *Controller) {
				require.NoError(t, c.State.Enter(component.Attacking))
				require.NoError(t, c.State.Enter(component.Searching))
				c.LastKnown = cellCentre(9, 2)
			},
			axis: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl := arena(t, openRows...)
			e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
			e.Body.Heading = tc.heading
			if tc.setup != nil {
				tc.setup(e.Controller)
			}
			tactic := e.Controller.State.Tactic
			ctx := &Context{Level: lvl}

			lo, hi := math.Inf(1), math.Inf(-1)
			prev, lastStep, reversals := 0.0, 0.0, 0
			for i := 0; i < 400; i++ {
				ctx.Frame = i
				e.Update(ctx)
				rel := common.AngleDiff(tc.axis, e.Body.TowerHeading())
				require.LessOrEqual(t, math.Abs(rel), 90+1e-6, "frame %d", i)
				lo, hi = math.Min(lo, rel), math.Max(hi, rel)
				if step := rel - prev; i > 0 && step*lastStep < 0 {
					reversals++
				}
				if i > 0 {
					lastStep = rel - prev
				}
				prev = rel
			}

			assert.Equal(t, tactic, e.Controller.State.Tactic)
			assert.Equal(t, tc.heading, e.Body.Heading)
			assert.InDelta(t, 90, hi, 1e-6)
			assert.InDelta(t, -90, lo, 1e-6)
			assert.GreaterOrEqual(t, reversals, 3)
		})
	}
}

func TestStuckEnemyGivesUpAndRetargets(t *testing.T) {
	lvl := arena(t,
		"########",
		"#......#",
		"#.#*...#",
		"#.....*#",
		"########",
	)
	e := testEnemy(NewRegistry(), lvl, cellCentre(1, 2))
	c := e.Controller
	blocked := lvl.NavTile(cellCentre(3, 2))
	require.NotNil(t, blocked)

	// a destination straight through the wall at (2, 2)
	c.goal = blocked
	c.Dest = blocked
	c.State.Set(component.Pathfinding)
	ctx := &Context{Level: lvl}

	gaveUp := -1
	for i := 0; i < 200; i++ {
		ctx.Frame = i
		e.Update(ctx)
		if c.State.Has(component.NoPath) {
			gaveUp = i
			break
		}
	}
	require.GreaterOrEqual(t, gaveUp, stuckLimit)
	assert.Nil(t, c.Dest)
	assert.False(t, lvl.Blocked(e.Body.Pos))
	assert.Less(t, e.Body.Pos.X, float64(3*common.TileSize), "rolled back in front of the wall")

	ctx.Frame = gaveUp + retryDelay - 1
	e.Update(ctx)
	assert.True(t, c.State.Has(component.NoPath))

	ctx.Frame = gaveUp + retryDelay
	e.Update(ctx)
	assert.False(t, c.State.Has(component.NoPath))
	assert.True(t, c.State.Has(component.Pathfinding))
	require.NotNil(t, c.Dest)
	assert.Equal(t, cellCentre(6, 3), c.Planner.Path().Last().Center())
	for _, tile := range c.Planner.Path().Tiles() {
		assert.False(t, sameCell(tile, blocked))
	}
}

func TestSearchingEnemyPatrolsWhenDone(t *testing.T) {
	lvl := arena(t,
		"############",
		"#..........#",
		"#.......*..#",
		"#..........#",
		"############",
	)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	c := e.Controller
	require.NoError(t, c.State.Enter(component.Attacking))
	require.NoError(t, c.State.Enter(component.Searching))
	c.State.Set(component.Done)
	c.LastKnown = e.Body.Pos

	e.Update(&Context{Level: lvl})

	assert.Equal(t, component.Patrolling, c.State.Tactic)
	require.NotNil(t, c.Dest)
	assert.Equal(t, cellCentre(8, 2), c.Planner.Path().Last().Center())
}

func TestAttackFallsBackToSecondary(t *testing.T) {
	lvl := arena(t, openRows...)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	e.Primary = component.NewWeapon(component.WeaponData{Name: "cannon", Damage: 30, ClipSize: 1, ReloadDelay: time.Second})
	c := e.Controller
	require.NoError(t, c.State.Enter(component.Attacking))

	combat := component.NewCombatResolver(6, 90)
	ctx := &Context{Level: lvl, Target: newTarget(cellCentre(7, 2)), Combat: combat}

	e.Update(ctx)
	assert.True(t, c.State.Has(component.FiringPrimary))
	assert.False(t, c.State.Has(component.ReloadingPrimary))
	assert.Len(t, combat.Projectiles(), 1)

	// single round clip: the next frame is a reload
	ctx.Now += time.Second / 60
	ctx.Frame++
	e.Update(ctx)
	assert.True(t, c.State.Has(component.ReloadingPrimary))
	assert.False(t, c.State.Has(component.FiringPrimary))
	assert.False(t, c.State.Has(component.FiringSecondary))
	assert.Len(t, combat.Projectiles(), 1)

	e.Secondary = component.NewWeapon(component.WeaponData{Name: "mg", Damage: 5, ClipSize: 10})
	ctx.Now += time.Second / 60
	ctx.Frame++
	e.Update(ctx)
	assert.True(t, c.State.Has(component.ReloadingPrimary))
	assert.True(t, c.State.Has(component.FiringSecondary))
	assert.Len(t, combat.Projectiles(), 2)
	assert.Equal(t, "mg", combat.Projectiles()[1].Weapon)
}

func TestNoPathRetargetsAfterDelay(t *testing.T) {
	lvl := arena(t,
		"##########",
		"#...#*#..#",
		"#...###..#",
		"#.......*#",
		"##########",
	)
	e := testEnemy(NewRegistry(), lvl, cellCentre(1, 1))
	c := e.Controller
	ctx := &Context{Level: lvl}

	e.Update(ctx)
	assert.True(t, c.State.Has(component.NoPath))
	assert.Nil(t, c.Dest)

	ctx.Frame = retryDelay - 1
	e.Update(ctx)
	assert.True(t, c.State.Has(component.NoPath))

	ctx.Frame = retryDelay
	e.Update(ctx)
	assert.False(t, c.State.Has(component.NoPath))
	require.NotNil(t, c.Dest)
	assert.Equal(t, cellCentre(8, 3), c.Planner.Path().Last().Center())
}

func TestFollowPathReachesPointOfInterest(t *testing.T) {
	lvl := arena(t,
		"########",
		"#......#",
		"#....*.#",
		"#......#",
		"########",
	)
	e := testEnemy(NewRegistry(), lvl, cellCentre(1, 2))
	ctx := &Context{Level: lvl}

	for i := 0; i < 600 && !e.Controller.State.Has(component.Done); i++ {
		ctx.Frame = i
		e.Update(ctx)
	}
	c := e.Controller
	assert.True(t, c.State.Has(component.Done))
	assert.True(t, common.Contains(c.Planner.Path().Last().Box(), e.Body.Probe(16)))
	assert.False(t, lvl.Blocked(e.Body.Pos))
}

func TestTacticScriptTunesController(t *testing.T) {
	script, err := component.NewTacticScript("test", []byte(`
speed := 1.0
if tactic == "attacking" {
	speed = 3.0
}
`))
	require.NoError(t, err)

	lvl := arena(t, openRows...)
	e := testEnemy(NewRegistry(), lvl, cellCentre(2, 2))
	e.Controller.script = script
	ctx := &Context{Level: lvl, Target: newTarget(cellCentre(7, 2))}

	e.Update(ctx)
	assert.Equal(t, component.Attacking, e.Controller.State.Tactic)
	assert.Equal(t, 3.0, e.Controller.Tuning().Speed)
	assert.Equal(t, 1.5, e.Controller.Tuning().SweepRate)
}
