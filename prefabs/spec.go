package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is returned when a spec decodes but cannot describe a match.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

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

// ArenaSpec is arena.yaml: world constants plus the two fighter prefabs.
type ArenaSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Floor          float64 `yaml:"floor"`
	Gravity        float64 `yaml:"gravity"`
	TimeLimit      int     `yaml:"time_limit"`
	TicksPerSecond int     `yaml:"ticks_per_second"`
	FrameHold      int     `yaml:"frame_hold"`
	ClampToArena   *bool   `yaml:"clamp_to_arena"`
	Player         string  `yaml:"player"`
	Enemy          string  `yaml:"enemy"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Player == "" || spec.Enemy == "" {
		return nil, fmt.Errorf("%w: arena.yaml: player and enemy are required", ErrInvalidSpec)
	}
	return &spec, nil
}

// FighterSpec is one fighter prefab such as ken.yaml.
type FighterSpec struct {
	Name        string                   `yaml:"name"`
	Width       float64                  `yaml:"width"`
	Height      float64                  `yaml:"height"`
	Start       PointSpec                `yaml:"start"`
	Facing      string                   `yaml:"facing"`
	MoveSpeed   float64                  `yaml:"move_speed"`
	JumpImpulse float64                  `yaml:"jump_impulse"`
	Health      int                      `yaml:"health"`
	Color       *YAMLColor               `yaml:"color"`
	Animations  map[string]AnimationSpec `yaml:"animations"`
	Attack      MoveSpec                 `yaml:"attack"`
	Script      string                   `yaml:"script"`
}

// LoadFighterSpec loads name, with or without the .yaml extension.
func LoadFighterSpec(name string) (*FighterSpec, error) {
	filename := name
	if !isSpecFile(filename) {
		filename += ".yaml"
	}
	spec, err := LoadSpec[FighterSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filename, ".yaml")
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AnimationSpec struct {
	Sheet      string `yaml:"sheet"`
	FrameCount int    `yaml:"frame_count"`
}

// MoveSpec is an attack authored for a right-facing fighter. A missing
// active_frame means frame 1.
type MoveSpec struct {
	Name        string  `yaml:"name"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	ActiveFrame *int    `yaml:"active_frame"`
	Damage      int     `yaml:"damage"`
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
