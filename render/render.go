package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tankgame/assets"
	"github.com/milk9111/tankgame/common"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/obj"
	"github.com/milk9111/tankgame/system"
)

var (
	wallColor   = color.RGBA{R: 0x55, G: 0x55, B: 0x5c, A: 0xff}
	wallEdge    = color.RGBA{R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff}
	holeColor   = color.RGBA{R: 0x08, G: 0x08, B: 0x0a, A: 0xff}
	sightColor  = color.RGBA{R: 0xff, G: 0xee, B: 0x55, A: 0x90}
	seenColor   = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xc0}
	pathColor   = color.RGBA{R: 0x40, G: 0xc0, B: 0xff, A: 0x80}
	healthBack  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	healthFront = color.RGBA{R: 0x40, G: 0xd0, B: 0x40, A: 0xff}
)

const crosshairTexture = "aim"

// objective markers, indexed by attribute
var objectiveColors = [...]color.RGBA{
	obj.PointOfInterest: {R: 0x40, G: 0xa0, B: 0xff, A: 0xa0},
	obj.EnemySpawn:      {R: 0xff, G: 0x50, B: 0x40, A: 0xa0},
	obj.PlayerSpawn:     {R: 0x40, G: 0xff, B: 0x70, A: 0xa0},
}

// Options selects the optional overlays.
type Options struct {
	// Objectives draws the objective layer markers.
	Objectives bool
	// Debug draws sensor rays and planned paths.
	Debug bool
}

// Level draws the terrain and collision layers, and the objective layer when
// asked.
func Level(screen *ebiten.Image, lvl *obj.Level, opts Options) {
	if lvl == nil {
		return
	}
	for _, t := range lvl.Terrain.Tiles() {
		drawImage(screen, assets.Texture(t.Texture), t.Center(), common.TileSize, common.TileSize, 0)
	}
	for _, t := range lvl.Collision.Tiles() {
		x, y := float32(t.X), float32(t.Y)
		switch t.Pass {
		case obj.Wall:
			vector.FillRect(screen, x, y, common.TileSize, common.TileSize, wallColor, false)
			vector.StrokeRect(screen, x+1, y+1, common.TileSize-2, common.TileSize-2, 2, wallEdge, false)
		case obj.Hole:
			vector.FillRect(screen, x+2, y+2, common.TileSize-4, common.TileSize-4, holeColor, false)
		}
	}
	if !opts.Objectives {
		return
	}
	for _, t := range lvl.Objective.Tiles() {
		if !t.Attr.Valid() {
			continue
		}
		c := t.Center()
		vector.FillCircle(screen, float32(c.X), float32(c.Y), common.TileSize/4, objectiveColors[t.Attr], true)
	}
}

// World draws a whole frame of the simulation.
func World(screen *ebiten.Image, w *system.World, opts Options) {
	Level(screen, w.Level, opts)

	for _, im := range w.Combat.Impacts() {
		img := assets.Texture(im.Texture)
		b := img.Bounds()
		drawImage(screen, img, im.Pos, float64(b.Dx()), float64(b.Dy()), 0)
	}

	for _, e := range w.Enemies {
		if opts.Debug {
			enemyOverlay(screen, e)
		}
		Tank(screen, e.Body)
		healthBar(screen, e.Body, e.Health)
	}
	if w.Player.Alive() {
		Tank(screen, w.Player.Body)
	}

	for _, p := range w.Combat.Projectiles() {
		img := assets.Texture(p.Texture)
		b := img.Bounds()
		drawImage(screen, img, p.Pos, float64(b.Dx()), float64(b.Dy()), p.Rotation)
	}
}

// Crosshair marks the aim point.
func Crosshair(screen *ebiten.Image, at cp.Vector) {
	img := assets.Texture(crosshairTexture)
	b := img.Bounds()
	drawImage(screen, img, at, float64(b.Dx()), float64(b.Dy()), 0)
}

// Tank draws the hull turned to its heading and the tower over it.
func Tank(screen *ebiten.Image, b *component.TankBody) {
	size := b.HalfSize * 2
	drawImage(screen, assets.Texture(b.Texture), b.Pos, size, size, b.Heading)

	tower := assets.Texture(b.TowerTexture)
	tb := tower.Bounds()
	w, h := float64(tb.Dx()), float64(tb.Dy())
	// the tower sprite pivots a third of the way along its length
	centre := b.Pos.Add(common.Forward(b.TowerHeading()).Mult(w/2 - w/3))
	drawImage(screen, tower, centre, w, h, b.TowerHeading())
}

func healthBar(screen *ebiten.Image, b *component.TankBody, h *component.Health) {
	if h == nil || h.Fraction() >= 1 {
		return
	}
	w := float32(b.HalfSize * 2)
	x := float32(b.Pos.X) - w/2
	y := float32(b.Pos.Y-b.HalfSize) - 6
	vector.FillRect(screen, x, y, w, 3, healthBack, false)
	vector.FillRect(screen, x, y, w*float32(h.Fraction()), 3, healthFront, false)
}

func enemyOverlay(screen *ebiten.Image, e *system.Enemy) {
	c := e.Controller
	clr := sightColor
	if c.SeesTarget() {
		clr = seenColor
	}
	line(screen, c.Sight.Origin, c.Sight.End, 1, clr)

	tiles := c.Planner.Path().Tiles()
	for i := 1; i < len(tiles); i++ {
		line(screen, tiles[i-1].Center(), tiles[i].Center(), 2, pathColor)
	}
	if c.Dest != nil {
		d := c.Dest.Center()
		vector.StrokeCircle(screen, float32(d.X), float32(d.Y), 6, 1, pathColor, true)
	}
}

func line(screen *ebiten.Image, a, b cp.Vector, width float32, clr color.Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
}

func drawImage(screen, img *ebiten.Image, centre cp.Vector, w, h, angle float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = placement(b.Dx(), b.Dy(), centre, w, h, angle)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// placement scales an imgW x imgH image to w x h, rotates it by angle
// degrees about its middle and moves the middle to centre.
func placement(imgW, imgH int, centre cp.Vector, w, h, angle float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(imgW)/2, -float64(imgH)/2)
	if imgW > 0 && imgH > 0 {
		g.Scale(w/float64(imgW), h/float64(imgH))
	}
	g.Rotate(common.Radians(angle))
	g.Translate(centre.X, centre.Y)
	return g
}
