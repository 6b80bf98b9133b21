package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/obj"
	"github.com/sirupsen/logrus"
)

const (
	sweepLimit    = 90.0
	turnTolerance = 2.0
	// frames to wait after a failed search before picking a new goal
	retryDelay = 30
	// frames of blocked driving before the path is given up
	stuckLimit = 30
)

// Context is what an enemy may look at during one update. It is built by
// the World every frame.
type Context struct {
	Level  *obj.Level
	Target component.Combatant
	Combat *component.CombatResolver
	Now    time.Duration
	Frame  int
}

// ControllerConfig is the per-kind tuning a controller starts with.
type ControllerConfig struct {
	SightRange    float64
	Speed         float64
	TurnRate      float64
	SweepRate     float64
	ProbeDistance float64
}

// Controller is the enemy brain: a tactic with orthogonal AI flags, a sensor
// ray and a path planner with its own cursor.
type Controller struct {
	State     component.TacticState
	Sight     *component.LineOfSight
	Planner   *component.PathPlanner
	Dest      *obj.Tile
	LastKnown cp.Vector

	script  *component.TacticScript
	base    component.TacticTuning
	tuning  component.TacticTuning
	turn    float64
	probe   float64
	started bool
	sees    bool

	sweep    float64
	sweepDir float64

	goal       *obj.Tile
	failedGoal *obj.Tile
	retryFrame int
	stuck      int
}

func NewController(grid component.NavGrid, cfg ControllerConfig, script *component.TacticScript) *Controller {
	base := component.TacticTuning{SweepRate: cfg.SweepRate, Speed: cfg.Speed}
	return &Controller{
		Sight:    component.NewLineOfSight(cfg.SightRange),
		Planner:  component.NewPathPlanner(grid),
		script:   script,
		base:     base,
		tuning:   base,
		turn:     cfg.TurnRate,
		probe:    cfg.ProbeDistance,
		sweepDir: 1,
	}
}

// Tuning is the sweep rate and speed in effect for the current tactic.
func (c *Controller) Tuning() component.TacticTuning { return c.tuning }

// SeesTarget reports whether the sensor hit the target on the last update.
func (c *Controller) SeesTarget() bool { return c.sees }

// Update runs one frame: sensor refresh, the tactic step, then path
// following while a path is active.
func (c *Controller) Update(e *Enemy, ctx *Context) {
	if ctx == nil || ctx.Level == nil {
		return
	}
	if !c.started {
		c.started = true
		c.applyScript(e, c.State.Tactic)
	}

	c.Sight.Update(e.Body.BarrelPoint(), e.Body.TowerHeading())
	c.Sight.Truncate(ctx.Level.Collision)
	c.sees = ctx.Target != nil && ctx.Target.Alive() && c.Sight.CheckCollision(ctx.Target.Box())

	switch c.State.Tactic {
	case component.Patrolling:
		c.patrol(e, ctx)
	case component.Attacking:
		c.attack(e, ctx)
	case component.Searching:
		c.search(e, ctx)
	}

	if c.State.Has(component.Pathfinding) {
		c.followPath(e, ctx)
	}
}

func (c *Controller) patrol(e *Enemy, ctx *Context) {
	c.sweepAbout(e, e.Body.Heading)
	if c.sees {
		c.engage(e, ctx)
		return
	}
	if c.State.Flags == 0 || c.State.Has(component.Done) {
		c.requestPointOfInterest(e, ctx)
	}
}

func (c *Controller) attack(e *Enemy, ctx *Context) {
	if !c.sees {
		if ctx.Target != nil {
			c.LastKnown = ctx.Target.Position()
		}
		if !c.enter(e, component.Searching) {
			return
		}
		c.requestPath(e, ctx, c.LastKnown)
		return
	}

	e.Body.AimAt(ctx.Target.Position())
	c.State.ClearWeaponFlags()
	if c.fire(e, ctx, e.Primary, component.FiringPrimary, component.ReloadingPrimary) {
		return
	}
	c.fire(e, ctx, e.Secondary, component.FiringSecondary, component.ReloadingSecondary)
}

func (c *Controller) search(e *Enemy, ctx *Context) {
	c.sweepAbout(e, common.AngleTo(e.Body.Pos, c.LastKnown))
	if c.sees {
		c.engage(e, ctx)
		return
	}
	if c.State.Has(component.Done) {
		if !c.enter(e, component.Patrolling) {
			return
		}
		c.requestPointOfInterest(e, ctx)
	}
}

// engage turns the tower onto the target, switches to Attacking and heads
// for the target's current position.
func (c *Controller) engage(e *Enemy, ctx *Context) {
	e.Body.AimAt(ctx.Target.Position())
	if !c.enter(e, component.Attacking) {
		return
	}
	c.requestPath(e, ctx, ctx.Target.Position())
}

func (c *Controller) fire(e *Enemy, ctx *Context, w *component.Weapon, firing, reloading component.AIState) bool {
	if w == nil {
		return false
	}
	if !w.Fire(ctx.Now) {
		c.State.Set(reloading)
		return false
	}
	c.State.Set(firing)
	if ctx.Combat != nil {
		ctx.Combat.Fire(e.Faction(), w, e.Body.BarrelPoint(), ctx.Target.Position())
	}
	return true
}

// sweepAbout swings the tower back and forth within ±90° of axis.
func (c *Controller) sweepAbout(e *Enemy, axis float64) {
	c.sweep += c.sweepDir * c.tuning.SweepRate
	if c.sweep >= sweepLimit {
		c.sweep = sweepLimit
		c.sweepDir = -1
	} else if c.sweep <= -sweepLimit {
		c.sweep = -sweepLimit
		c.sweepDir = 1
	}
	e.Body.SetTowerHeading(axis + c.sweep)
}

func (c *Controller) enter(e *Enemy, t component.Tactic) bool {
	from := c.State.Tactic
	if err := c.State.Enter(t); err != nil {
		logger.Log.WithError(err).WithField("enemy", e.ID()).Warn("tactic change refused")
		return false
	}
	c.applyScript(e, t)
	logger.Log.WithFields(logrus.Fields{
		"enemy": e.ID(),
		"from":  from,
		"to":    t,
		"speed": c.tuning.Speed,
	}).Debug("tactic change")
	return true
}

// applyScript lets the enemy's tactic script retune sweep rate and speed
// for t. On error the current tuning stays.
func (c *Controller) applyScript(e *Enemy, t component.Tactic) {
	tuning, err := c.script.Run(t, e.Health.Fraction(), c.base)
	if err != nil {
		logger.Log.WithError(err).WithField("enemy", e.ID()).Warn("tactic script failed")
		return
	}
	c.tuning = tuning
}

// requestPath plans from the enemy's cell to the cell under to. The start
// cell is skipped so Dest is the first cell to drive to.
func (c *Controller) requestPath(e *Enemy, ctx *Context, to cp.Vector) bool {
	c.State.Clear(component.Done | component.NoPath)
	c.State.Set(component.Pathfinding)
	c.stuck = 0

	start := ctx.Level.NavTile(e.Body.Pos)
	goal := ctx.Level.NavTile(to)
	c.goal = goal
	if !c.Planner.FindPath(start, goal) {
		c.State.Set(component.NoPath)
		c.failedGoal = goal
		c.retryFrame = ctx.Frame + retryDelay
		c.Dest = nil
		logger.Log.WithFields(logrus.Fields{
			"enemy":    e.ID(),
			"expanded": c.Planner.Expanded(),
		}).Debug("no path")
		return false
	}

	c.Dest = c.Planner.NextTile()
	if c.Dest == start {
		c.Dest = c.Planner.NextTile()
	}
	if c.Dest == nil {
		c.State.Set(component.Done)
	}
	return true
}

func (c *Controller) requestPointOfInterest(e *Enemy, ctx *Context) {
	poi := c.nearestPointOfInterest(e, ctx.Level)
	if poi == nil {
		c.State.Clear(component.NoPath)
		c.State.Set(component.Done)
		c.Dest = nil
		return
	}
	c.requestPath(e, ctx, poi.Center())
}

// nearestPointOfInterest skips the enemy's own cell, the goal it just
// travelled to and the last goal it failed to reach.
func (c *Controller) nearestPointOfInterest(e *Enemy, lvl *obj.Level) *obj.Tile {
	col, row := common.Cell(e.Body.Pos)
	var best *obj.Tile
	bestDist := math.Inf(1)
	for _, t := range lvl.PointsOfInterest() {
		tc, tr := common.Cell(t.Center())
		if (tc == col && tr == row) || sameCell(t, c.goal) || sameCell(t, c.failedGoal) {
			continue
		}
		if d := t.Center().DistanceSq(e.Body.Pos); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func sameCell(a, b *obj.Tile) bool {
	return a != nil && b != nil && a.X == b.X && a.Y == b.Y
}

func (c *Controller) followPath(e *Enemy, ctx *Context) {
	switch {
	case c.State.Has(component.NoPath):
		if ctx.Frame < c.retryFrame {
			return
		}
		c.requestPointOfInterest(e, ctx)
		return
	case c.State.Has(component.Done):
		return
	}
	if c.Dest == nil {
		c.State.Set(component.Done)
		return
	}

	if common.Contains(c.Dest.Box(), e.Body.Probe(c.probe)) {
		c.Dest = c.Planner.NextTile()
		if c.Dest == nil {
			c.State.Set(component.Done)
		}
		return
	}

	heading := common.AngleTo(e.Body.Pos, c.Dest.Center())
	if math.Abs(common.AngleDiff(e.Body.Heading, heading)) > turnTolerance {
		tower := e.Body.TowerHeading()
		e.Body.TurnToward(heading, c.turn, turnTolerance)
		e.Body.SetTowerHeading(tower)
		return
	}
	if e.Body.Drive(c.tuning.Speed, ctx.Level.Blocked) {
		c.stuck = 0
		return
	}
	c.stuck++
	if c.stuck > stuckLimit {
		c.State.Set(component.NoPath)
		c.failedGoal = c.goal
		c.retryFrame = ctx.Frame + retryDelay
		c.Dest = nil
	}
}

func (c *Controller) shift(d cp.Vector) {
	c.LastKnown = c.LastKnown.Add(d)
}
