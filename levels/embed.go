package levels

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tankgame/obj"
)

//go:embed *.tmap *.cmap *.omap textures.txt
var LevelsFS embed.FS

// Paths returns the three layer file names for a level basename.
func Paths(name string) obj.LevelPaths {
	name = strings.TrimSuffix(filepath.ToSlash(name), filepath.Ext(name))
	return obj.LevelPaths{
		Terrain:   name + obj.Terrain.Ext(),
		Collision: name + obj.Collision.Ext(),
		Objective: name + obj.Objective.Ext(),
	}
}

// Textures loads the texture master list, preferring a copy on disk.
func Textures(path string) (obj.TextureSet, error) {
	if path == "" {
		path = "textures.txt"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read textures %s: %w", path, err)
	}
	return obj.LoadTextureSet(bytes.NewReader(data))
}

// Load opens a level from disk when all three files exist there and from the
// embedded levels otherwise.
func Load(name string, textures obj.TextureSet, opts ...obj.LevelOption) (*obj.Level, error) {
	paths := Paths(name)
	if onDisk(paths) {
		return obj.LoadLevel(paths, textures, opts...)
	}
	embedded := Paths(filepath.Base(name))
	return obj.LoadLevelFS(LevelsFS, embedded, textures, opts...)
}

func onDisk(p obj.LevelPaths) bool {
	for _, f := range []string{p.Terrain, p.Collision, p.Objective} {
		if _, err := os.Stat(f); err != nil {
			return false
		}
	}
	return true
}
