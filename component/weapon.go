package component

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/tankgame/logger"
	"github.com/sirupsen/logrus"
)

var ErrNoWeaponName = errors.New("weapon data has no WeaponName")

// WeaponData is the content of a weapon file. Delays are read as
// milliseconds.
type WeaponData struct {
	Name          string
	Damage        float32
	ClipSize      int
	ReloadDelay   time.Duration
	FiringDelay   time.Duration
	FireSound     string
	ImpactSound   string
	Texture       string
	ImpactTexture string
}

// ParseWeaponData reads key=value lines. Unknown keys are ignored; comment
// and blank lines follow the level file rules. Lines without '=' are logged
// and skipped.
func ParseWeaponData(r io.Reader) (WeaponData, error) {
	d := WeaponData{ClipSize: 1}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' || line[0] == '/' || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"line": lineNo,
				"text": line,
			}).Warn("weapon: skipping line without key=value")
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "weaponname":
			d.Name = value
		case "damage":
			var f float64
			f, err = parseFinite(value, 32)
			d.Damage = float32(f)
		case "clipsize":
			d.ClipSize, err = strconv.Atoi(value)
		case "reloaddelay":
			d.ReloadDelay, err = parseMillis(value)
		case "firingdelay":
			d.FiringDelay, err = parseMillis(value)
		case "firesound":
			d.FireSound = value
		case "impactsound":
			d.ImpactSound = value
		case "texture":
			d.Texture = value
		case "impacttexture":
			d.ImpactTexture = value
		}
		if err != nil {
			return WeaponData{}, fmt.Errorf("weapon: line %d: %s: %w", lineNo, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return WeaponData{}, fmt.Errorf("weapon: read: %w", err)
	}
	if d.Name == "" {
		return WeaponData{}, ErrNoWeaponName
	}
	if d.ClipSize < 1 {
		d.ClipSize = 1
	}
	return d, nil
}

func parseFinite(s string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

func parseMillis(s string) (time.Duration, error) {
	ms, err := parseFinite(s, 64)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("negative delay %v", ms)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// Weapon tracks the clip, the delay between shots and reloads against the
// world clock.
type Weapon struct {
	Data   WeaponData
	Source string

	rounds      int
	fired       bool
	lastShot    time.Duration
	reloading   bool
	reloadUntil time.Duration
}

func NewWeapon(d WeaponData) *Weapon {
	return &Weapon{Data: d, rounds: d.ClipSize}
}

// Fire consumes a round if the weapon is ready at now. It returns false
// while reloading, inside the firing delay, or when the clip is empty, in
// which case a reload starts.
func (w *Weapon) Fire(now time.Duration) bool {
	if w == nil {
		return false
	}
	w.tick(now)
	if w.reloading {
		return false
	}
	if w.fired && now-w.lastShot < w.Data.FiringDelay {
		return false
	}
	if w.rounds <= 0 {
		w.startReload(now)
		return false
	}
	w.rounds--
	w.fired = true
	w.lastShot = now
	if w.rounds == 0 {
		w.startReload(now)
	}
	return true
}

// Reloading reports whether a reload is still running at now.
func (w *Weapon) Reloading(now time.Duration) bool {
	if w == nil {
		return false
	}
	w.tick(now)
	return w.reloading
}

func (w *Weapon) Rounds() int {
	if w == nil {
		return 0
	}
	return w.rounds
}

// SetData swaps in new data, keeping the clip within the new size.
func (w *Weapon) SetData(d WeaponData) {
	w.Data = d
	if w.rounds > d.ClipSize {
		w.rounds = d.ClipSize
	}
}

func (w *Weapon) startReload(now time.Duration) {
	w.reloading = true
	w.reloadUntil = now + w.Data.ReloadDelay
}

func (w *Weapon) tick(now time.Duration) {
	if w.reloading && now >= w.reloadUntil {
		w.reloading = false
		w.rounds = w.Data.ClipSize
	}
}
