package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSettings = errors.New("invalid settings")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Settings is the game's key/value store: window, logging, level choice and
// tank tuning.
type Settings struct {
	Window     WindowSpec     `yaml:"window"`
	Log        LogSpec        `yaml:"log"`
	Level      LevelSpec      `yaml:"level"`
	Pan        PanSpec        `yaml:"pan"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Player     PlayerSpec     `yaml:"player"`
	Enemy      EnemySpec      `yaml:"enemy"`
}

type WindowSpec struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background *YAMLColor `yaml:"background"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LevelSpec struct {
	Name     string `yaml:"name"`
	Textures string `yaml:"textures"`
}

type PanSpec struct {
	Margin float64 `yaml:"margin"`
	Step   int     `yaml:"step"`
}

type ProjectileSpec struct {
	Speed    float64 `yaml:"speed"`
	Lifetime int     `yaml:"lifetime_frames"`
}

// TankSpec is the tuning shared by player and enemy tanks. Primary and
// Secondary name weapon files.
type TankSpec struct {
	Health       float32 `yaml:"health"`
	Speed        float64 `yaml:"speed"`
	TurnRate     float64 `yaml:"turn_rate"`
	Primary      string  `yaml:"primary"`
	Secondary    string  `yaml:"secondary"`
	TowerTexture string  `yaml:"tower_texture"`
}

type PlayerSpec struct {
	TankSpec `yaml:",inline"`
	Texture  string `yaml:"texture"`
}

type EnemySpec struct {
	TankSpec      `yaml:",inline"`
	SweepRate     float64 `yaml:"sweep_rate"`
	SightRange    float64 `yaml:"sight_range"`
	ProbeDistance float64 `yaml:"probe_distance"`
	Script        string  `yaml:"script"`
	SpawnTexture  string  `yaml:"spawn_texture"`
}

// LoadSettings reads and validates a settings file.
func LoadSettings(filename string) (*Settings, error) {
	s, err := LoadSpec[Settings](filename)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &s, nil
}

// Validate fills zero values with defaults and rejects negative tuning.
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 {
		s.Window.Width = 1024
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 768
	}
	if s.Window.Title == "" {
		s.Window.Title = "tanks"
	}
	if s.Level.Name == "" {
		s.Level.Name = "arena"
	}
	if s.Level.Textures == "" {
		s.Level.Textures = "textures.txt"
	}
	if s.Pan.Margin == 0 {
		s.Pan.Margin = 100
	}
	if s.Pan.Step == 0 {
		s.Pan.Step = 32
	}
	if s.Projectile.Speed == 0 {
		s.Projectile.Speed = 6
	}
	if s.Projectile.Lifetime == 0 {
		s.Projectile.Lifetime = 90
	}
	if s.Enemy.SightRange == 0 {
		s.Enemy.SightRange = 320
	}
	if s.Enemy.ProbeDistance == 0 {
		s.Enemy.ProbeDistance = 16
	}
	if s.Enemy.SweepRate == 0 {
		s.Enemy.SweepRate = 1.5
	}
	for _, t := range []*TankSpec{&s.Player.TankSpec, &s.Enemy.TankSpec} {
		if t.Health == 0 {
			t.Health = 100
		}
		if t.Speed == 0 {
			t.Speed = 1.5
		}
		if t.TurnRate == 0 {
			t.TurnRate = 3
		}
	}

	switch {
	case s.Pan.Margin < 0 || s.Pan.Step < 0:
		return fmt.Errorf("%w: negative pan values", ErrInvalidSettings)
	case s.Projectile.Speed < 0 || s.Projectile.Lifetime < 0:
		return fmt.Errorf("%w: negative projectile values", ErrInvalidSettings)
	case s.Player.Health < 0 || s.Player.Speed < 0 || s.Player.TurnRate < 0:
		return fmt.Errorf("%w: negative player tuning", ErrInvalidSettings)
	case s.Enemy.Health < 0 || s.Enemy.Speed < 0 || s.Enemy.TurnRate < 0 || s.Enemy.SweepRate < 0:
		return fmt.Errorf("%w: negative enemy tuning", ErrInvalidSettings)
	case s.Player.Primary == "" || s.Enemy.Primary == "":
		return fmt.Errorf("%w: player and enemy need a primary weapon file", ErrInvalidSettings)
	}
	return nil
}

// WeaponFiles lists every weapon file the settings refer to.
func (s *Settings) WeaponFiles() []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range []string{s.Player.Primary, s.Player.Secondary, s.Enemy.Primary, s.Enemy.Secondary} {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
