package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/prefabs"
)

func main() {
	settingsFile := flag.String("settings", "settings.yaml", "settings file in prefabs/")
	levelName := flag.String("level", "", "level name in levels/ (overrides the settings file)")
	debug := flag.Bool("debug", false, "draw sensor rays and planned paths")
	watch := flag.Bool("watch", true, "reload weapons, scripts and settings when they change on disk")
	flag.Parse()

	logger.Init("", "")
	settings, err := prefabs.LoadSettings(*settingsFile)
	if err != nil {
		logger.Log.WithError(err).Fatal("load settings")
	}
	logger.Init(settings.Log.Level, settings.Log.Format)
	if *levelName != "" {
		settings.Level.Name = *levelName
	}

	game, err := NewGame(settings, *debug, *watch)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	defer game.Close()

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("run game")
	}
}
