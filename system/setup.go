package system

import (
	"github.com/milk9111/tankgame/component"
	"github.com/milk9111/tankgame/levels"
	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/obj"
	"github.com/milk9111/tankgame/prefabs"
)

// LoadWorld loads the level named in settings with its texture list, builds
// an armory over the prefab weapon files and attaches the enemy tactic
// script. A broken script is logged and the enemies run on plain settings.
func LoadWorld(settings *prefabs.Settings, opts ...obj.LevelOption) (*World, error) {
	textures, err := levels.Textures(settings.Level.Textures)
	if err != nil {
		return nil, err
	}
	opts = append([]obj.LevelOption{
		obj.WithViewport(float64(settings.Window.Width), float64(settings.Window.Height)),
		obj.WithPan(settings.Pan.Margin, settings.Pan.Step),
	}, opts...)
	lvl, err := levels.Load(settings.Level.Name, textures, opts...)
	if err != nil {
		return nil, err
	}

	w, err := NewWorld(lvl, settings, NewArmory(prefabs.Load))
	if err != nil {
		return nil, err
	}
	if settings.Enemy.Script != "" {
		script, err := LoadTacticScript(settings.Enemy.Script)
		if err != nil {
			logger.Log.WithError(err).WithField("script", settings.Enemy.Script).Warn("tactic script disabled")
		} else {
			w.SetTacticScript(script)
		}
	}
	return w, nil
}

// LoadTacticScript reads and compiles a script from prefabs/scripts.
func LoadTacticScript(name string) (*component.TacticScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return component.NewTacticScript(name, src)
}
