package prefabs

import (
	"fmt"

	"github.com/milk9111/streetfighter/common"
	"github.com/milk9111/streetfighter/component"
	"github.com/milk9111/streetfighter/system"
)

// Arena fills in the defaults for every field left at zero.
func (a ArenaSpec) Arena() system.Arena {
	out := system.DefaultArena()
	if a.Width > 0 {
		out.Width = a.Width
	}
	if a.Height > 0 {
		out.Height = a.Height
	}
	if a.Floor > 0 {
		out.Floor = a.Floor
	}
	if a.Gravity > 0 {
		out.Gravity = a.Gravity
	}
	if a.TimeLimit > 0 {
		out.TimeLimit = a.TimeLimit
	}
	if a.TicksPerSecond > 0 {
		out.TicksPerSecond = a.TicksPerSecond
	}
	if a.ClampToArena != nil {
		out.ClampToArena = *a.ClampToArena
	}
	return out
}

// CombatantDef converts f. frameHold comes from the arena.
func (f FighterSpec) CombatantDef(frameHold int) (component.CombatantDef, error) {
	anims := make(component.AnimationSet, len(f.Animations))
	for name, a := range f.Animations {
		anims[component.AnimationState(name)] = component.FrameSource{Sheet: a.Sheet, FrameCount: a.FrameCount}
	}

	facing := component.FacingRight
	switch f.Facing {
	case "", "right":
	case "left":
		facing = component.FacingLeft
	default:
		return component.CombatantDef{}, fmt.Errorf("%w: fighter %s: facing %q", ErrInvalidSpec, f.Name, f.Facing)
	}

	active := component.DefaultActiveFrame
	if f.Attack.ActiveFrame != nil {
		active = *f.Attack.ActiveFrame
	}
	if f.Attack.Width <= 0 || f.Attack.Height <= 0 {
		return component.CombatantDef{}, fmt.Errorf("%w: fighter %s: attack box %gx%g", ErrInvalidSpec, f.Name, f.Attack.Width, f.Attack.Height)
	}

	name := f.Attack.Name
	if name == "" {
		name = "punch"
	}

	return component.CombatantDef{
		Name:        f.Name,
		Width:       f.Width,
		Height:      f.Height,
		Start:       common.Vec(f.Start.X, f.Start.Y),
		Facing:      facing,
		MoveSpeed:   f.MoveSpeed,
		JumpImpulse: f.JumpImpulse,
		MaxHealth:   f.Health,
		FrameHold:   frameHold,
		Animations:  anims,
		Attack: component.Move{
			Name: name,
			Box: component.AttackBox{
				Offset: common.Vec(f.Attack.OffsetX, f.Attack.OffsetY),
				Width:  f.Attack.Width,
				Height: f.Attack.Height,
			},
			ActiveFrame: active,
			Damage:      f.Attack.Damage,
		},
	}, nil
}

// Build creates the combatant described by f.
func (f FighterSpec) Build(frameHold int) (*component.Combatant, error) {
	def, err := f.CombatantDef(frameHold)
	if err != nil {
		return nil, err
	}
	c, err := component.NewCombatant(def)
	if err != nil {
		return nil, fmt.Errorf("prefabs: build %s: %w", f.Name, err)
	}
	return c, nil
}

// Roster is a loaded arena and the fighter specs it names.
type Roster struct {
	Arena    ArenaSpec
	Fighters [2]FighterSpec
}

// LoadRoster loads arena.yaml and both fighters it references.
func LoadRoster() (*Roster, error) {
	arena, err := LoadArenaSpec()
	if err != nil {
		return nil, err
	}
	r := &Roster{Arena: *arena}
	for i, name := range []string{arena.Player, arena.Enemy} {
		f, err := LoadFighterSpec(name)
		if err != nil {
			return nil, err
		}
		r.Fighters[i] = *f
	}
	return r, nil
}

// NewMatch builds a fresh match. Calling it again gives a rematch with full
// health and start positions.
func (r *Roster) NewMatch() (*system.Match, error) {
	var fighters [2]*component.Combatant
	for _, side := range system.Sides {
		c, err := r.Fighters[side].Build(r.Arena.FrameHold)
		if err != nil {
			return nil, err
		}
		fighters[side] = c
	}
	return system.NewMatch(r.Arena.Arena(), fighters[system.SidePlayer], fighters[system.SideEnemy]), nil
}

// Script returns the CPU script source configured for side, or nil.
func (r *Roster) Script(side system.Side) ([]byte, error) {
	name := r.Fighters[side].Script
	if name == "" {
		return nil, nil
	}
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return src, nil
}
