package main

import (
	"errors"
	"flag"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tankgame/levels"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/obj"
	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", "levels/arena", "level basename; the .tmap, .cmap and .omap files are read from and saved next to it")
	terrain := flag.String("terrain", "", "terrain layer file, overrides -level")
	collision := flag.String("collision", "", "collision layer file, overrides -level")
	objective := flag.String("objective", "", "objective layer file, overrides -level")
	texturesPath := flag.String("textures", "levels/textures.txt", "texture master list")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 800, "window height")
	logLevel := flag.String("log", "info", "log level")
	flag.Parse()

	logger.Init(*logLevel, "text")

	textures, err := levels.Textures(*texturesPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load textures")
	}

	paths := levels.Paths(*levelName)
	override(&paths.Terrain, *terrain)
	override(&paths.Collision, *collision)
	override(&paths.Objective, *objective)

	lvl, err := openLevel(paths, textures, *width-panelWidth, *height)
	if err != nil {
		logger.Log.WithError(err).Fatal("open level")
	}

	ed := NewEditor(lvl, paths, textures, *width, *height)
	if _, err := BuildEditorUI(ed); err != nil {
		logger.Log.WithError(err).Fatal("build editor ui")
	}
	ed.copy = systemClipboard()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Level Editor - " + filepath.Base(*levelName))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(ed); err != nil {
		logger.Log.WithError(err).Fatal("editor")
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// openLevel loads paths in edit mode. A level that only exists in the
// embedded set is opened from there and will be saved to paths. Missing
// files start an empty level. Wrong extensions and an empty texture list are
// returned as errors.
func openLevel(paths obj.LevelPaths, textures obj.TextureSet, w, h int) (*obj.Level, error) {
	opts := []obj.LevelOption{obj.WithEditMode(), obj.WithViewport(float64(w), float64(h))}

	lvl, err := obj.LoadLevel(paths, textures, opts...)
	if err == nil {
		return lvl, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	base := filepath.Base(strings.TrimSuffix(paths.Terrain, filepath.Ext(paths.Terrain)))
	if lvl, err := obj.LoadLevelFS(levels.LevelsFS, levels.Paths(base), textures, opts...); err == nil {
		logger.Log.WithField("level", base).Info("opened embedded level")
		return lvl, nil
	}

	logger.Log.WithFields(logrus.Fields{
		"terrain":   paths.Terrain,
		"collision": paths.Collision,
		"objective": paths.Objective,
	}).Info("starting a new level")
	return obj.NewLevel(textures, opts...), nil
}
