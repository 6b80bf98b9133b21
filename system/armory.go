package system

import (
	"bytes"
	"fmt"

	"github.com/milk9111/tankgame/component"
)

// Armory parses weapon files once and hands out weapons built from them.
type Armory struct {
	load func(name string) ([]byte, error)
	data map[string]component.WeaponData
}

// NewArmory reads weapon files through load, usually prefabs.Load.
func NewArmory(load func(name string) ([]byte, error)) *Armory {
	return &Armory{load: load, data: make(map[string]component.WeaponData)}
}

// Data returns the parsed content of a weapon file.
func (a *Armory) Data(file string) (component.WeaponData, error) {
	if d, ok := a.data[file]; ok {
		return d, nil
	}
	return a.Reload(file)
}

// Reload re-reads a weapon file and replaces the cached data.
func (a *Armory) Reload(file string) (component.WeaponData, error) {
	raw, err := a.load(file)
	if err != nil {
		return component.WeaponData{}, fmt.Errorf("system: load weapon %s: %w", file, err)
	}
	d, err := component.ParseWeaponData(bytes.NewReader(raw))
	if err != nil {
		return component.WeaponData{}, fmt.Errorf("system: parse weapon %s: %w", file, err)
	}
	a.data[file] = d
	return d, nil
}

// Weapon builds a fresh weapon from a file. An empty file name means the
// slot is unused and yields nil.
func (a *Armory) Weapon(file string) (*component.Weapon, error) {
	if file == "" {
		return nil, nil
	}
	d, err := a.Data(file)
	if err != nil {
		return nil, err
	}
	w := component.NewWeapon(d)
	w.Source = file
	return w, nil
}
