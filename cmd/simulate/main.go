package main

import (
	"flag"

	"github.com/milk9111/tankgame/logger"
	"github.com/milk9111/tankgame/prefabs"
	"github.com/milk9111/tankgame/system"
)

var pilots = map[string]Pilot{
	"idle":   Idle,
	"turret": Turret,
}

func main() {
	settingsFile := flag.String("settings", "settings.yaml", "settings file in prefabs/")
	levelName := flag.String("level", "", "level name in levels/ (overrides the settings file)")
	frames := flag.Int("frames", 60*60, "maximum number of frames to simulate")
	pilotName := flag.String("pilot", "turret", "player behaviour: idle or turret")
	progress := flag.Int("progress", 600, "log enemy tactics every n frames at debug level, 0 disables")
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

	pilot, ok := pilots[*pilotName]
	if !ok {
		logger.Log.WithField("pilot", *pilotName).Fatal("unknown pilot")
	}

	w, err := system.LoadWorld(settings)
	if err != nil {
		logger.Log.WithError(err).Fatal("load world")
	}

	st := Run(w, *frames, pilot, *progress)
	logger.Log.WithFields(st.Fields()).Info("simulation finished")
}
