package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tankgame/assets"
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/prefabs"
	"github.com/milk9111/tankgame/render"
	"github.com/milk9111/tankgame/system"
)

var defaultBackground = color.RGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff}

type Game struct {
	settings *prefabs.Settings
	world    *system.World
	input    *Input
	last     system.Input
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI

	paused bool
	quit   bool
	debug  bool
}

func NewGame(settings *prefabs.Settings, debug, watch bool) (*Game, error) {
	g := &Game{
		settings: settings,
		input:    NewInput(),
		debug:    debug,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		if dirs := prefabs.DefaultDirs(); len(dirs) > 0 {
			w, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				logger.Log.WithError(err).Warn("prefab hot reload disabled")
			} else {
				g.watcher = w
				logger.Log.WithField("dirs", dirs).Info("watching prefabs")
			}
		}
	}
	return g, nil
}

// restart builds a fresh world from the current settings.
func (g *Game) restart() error {
	w, err := system.LoadWorld(g.settings)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	w.Combat.Emitter.Subscribe(playSounds)
	g.world = w
	g.paused = false
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func playSounds(evt component.CombatEvent) {
	switch evt.Type {
	case component.EventFired, component.EventHit, component.EventWallDestroyed:
		assets.PlaySound(evt.Sound)
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if (g.world.GameOver || g.world.Won()) && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			return err
		}
	}

	g.last = g.input.Poll()
	g.world.Update(g.last)
	return nil
}

// drainWatcher applies pending prefab changes without blocking the frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path := <-g.watcher.Events:
			g.reload(path)
		case err := <-g.watcher.Errors:
			logger.Log.WithError(err).Warn("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	name := prefabs.Rel(path)
	entry := logger.Log.WithField("file", name)
	switch {
	case prefabs.IsWeaponFile(path):
		if err := g.world.ReloadWeapon(name); err != nil {
			entry.WithError(err).Warn("weapon reload failed")
		}
	case prefabs.IsScriptFile(path):
		script, err := system.LoadTacticScript(name)
		if err != nil {
			entry.WithError(err).Warn("script reload failed")
			return
		}
		g.world.SetTacticScript(script)
		entry.Info("tactic script reloaded")
	case prefabs.IsSpecFile(path):
		settings, err := prefabs.LoadSettings(name)
		if err != nil {
			entry.WithError(err).Warn("settings reload failed")
			return
		}
		// the window and level stay as started
		settings.Window = g.settings.Window
		settings.Level.Name = g.settings.Level.Name
		g.settings = settings
		logger.Init(settings.Log.Level, settings.Log.Format)
		entry.Info("settings reloaded, applied on restart")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := color.Color(defaultBackground)
	if g.settings.Window.Background != nil {
		bg = g.settings.Window.Background.Color
	}
	screen.Fill(bg)

	render.World(screen, g.world, render.Options{Debug: g.debug, Objectives: g.debug})
	ebitenutil.DebugPrint(screen, g.status())

	if g.paused {
		g.pauseUI.Draw(screen)
		return
	}
	if g.last.AimValid && g.world.Player.Alive() {
		render.Crosshair(screen, g.last.Aim)
	}
}

func (g *Game) status() string {
	w := g.world
	s := fmt.Sprintf("HP %.0f   enemies %d   FPS %.0f", w.Player.Health.Current, w.Registry.Len(), ebiten.ActualFPS())
	switch {
	case w.GameOver:
		s += "\ndestroyed - press R to restart"
	case w.Won():
		s += "\narena clear - press R to restart"
	}
	if g.debug {
		for _, e := range w.Enemies {
			s += fmt.Sprintf("\n#%d %s [%s]", e.ID(), e.Controller.State.Tactic, e.Controller.State.Flags)
		}
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}

func (g *Game) requestQuit() {
	g.quit = true
	logger.Log.WithField("frame", g.world.Frame()).Info("quit")
}
