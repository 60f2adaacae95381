package system

import (
	"github.com/milk9111/streetfighter/common"
	"github.com/milk9111/streetfighter/component"
)

// Side identifies one of the two fighters.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// Sides lists both sides in evaluation order.
var Sides = [2]Side{SidePlayer, SideEnemy}

func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "player"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Valid reports whether s is the player or the enemy.
func (s Side) Valid() bool {
	return s >= 0 && int(s) < len(Sides)
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Outcome is the match result. It leaves OutcomeOngoing exactly once.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomePlayerWins
	OutcomeEnemyWins
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWins:
		return "playerWins"
	case OutcomeEnemyWins:
		return "enemyWins"
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Arena holds the world constants of a match.
type Arena struct {
	Width          float64
	Height         float64
	Floor          float64
	Gravity        float64
	TimeLimit      int
	TicksPerSecond int
	ClampToArena   bool
}

// DefaultArena matches the 1024x576 canvas with the floor 96px above the
// bottom edge.
func DefaultArena() Arena {
	return Arena{
		Width:          1024,
		Height:         576,
		Floor:          480,
		Gravity:        0.7,
		TimeLimit:      60,
		TicksPerSecond: 60,
		ClampToArena:   true,
	}
}

// Match is the state of one bout. MatchLoop owns it exclusively.
type Match struct {
	Arena         Arena
	Fighters      [2]*component.Combatant
	Inputs        [2]*component.Input
	TimeRemaining int
	Outcome       Outcome
	Frame         int64
}

// NewMatch sets up a bout between player and enemy.
func NewMatch(arena Arena, player, enemy *component.Combatant) *Match {
	return &Match{
		Arena:         arena,
		Fighters:      [2]*component.Combatant{player, enemy},
		Inputs:        [2]*component.Input{{}, {}},
		TimeRemaining: arena.TimeLimit,
	}
}

// Fighter returns the fighter on side, or nil for an unknown side.
func (m *Match) Fighter(side Side) *component.Combatant {
	if m == nil || !side.Valid() {
		return nil
	}
	return m.Fighters[side]
}

// Input returns the input state of side, or nil for an unknown side.
func (m *Match) Input(side Side) *component.Input {
	if m == nil || !side.Valid() {
		return nil
	}
	return m.Inputs[side]
}

func (m *Match) Player() *component.Combatant { return m.Fighter(SidePlayer) }
func (m *Match) Enemy() *component.Combatant { return m.Fighter(SideEnemy) }

// Over reports whether the outcome has been decided.
func (m *Match) Over() bool {
	return m == nil || m.Outcome != OutcomeOngoing
}

// GroundY is the resting Position.Y of c: its feet on the arena floor.
func (m *Match) GroundY(c *component.Combatant) float64 {
	return m.Arena.Floor - c.Height
}

func (m *Match) clampToArena(c *component.Combatant) {
	if !m.Arena.ClampToArena || m.Arena.Width <= 0 {
		return
	}
	c.Position.X = common.Clamp(c.Position.X, 0, m.Arena.Width-c.Width)
}

// FighterSnapshot is the render-facing view of one fighter.
type FighterSnapshot struct {
	Name      string                   `json:"name"`
	X         float64                  `json:"x"`
	Y         float64                  `json:"y"`
	Width     float64                  `json:"width"`
	Height    float64                  `json:"height"`
	State     component.AnimationState `json:"state"`
	Sheet     string                   `json:"sheet"`
	Frame     int                      `json:"frame"`
	Facing    component.Facing         `json:"facing"`
	Health    int                      `json:"health"`
	MaxHealth int                      `json:"maxHealth"`
	Attacking bool                     `json:"attacking"`
	Attack    common.Rect              `json:"attackBox"`
}

// Snapshot is the per-tick view hosts render from.
type Snapshot struct {
	Frame         int64              `json:"frame"`
	TimeRemaining int                `json:"timeRemaining"`
	Outcome       Outcome            `json:"outcome"`
	Fighters      [2]FighterSnapshot `json:"fighters"`
}

// Snapshot captures the current state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{Frame: m.Frame, TimeRemaining: m.TimeRemaining, Outcome: m.Outcome}
	for _, side := range Sides {
		c := m.Fighter(side)
		if c == nil {
			continue
		}
		s.Fighters[side] = FighterSnapshot{
			Name:      c.Name,
			X:         c.Position.X,
			Y:         c.Position.Y,
			Width:     c.Width,
			Height:    c.Height,
			State:     c.State(),
			Sheet:     c.Sprite.Source().Sheet,
			Frame:     c.Sprite.Frame(),
			Facing:    c.Facing,
			Health:    c.Health.CurrentHP(),
			MaxHealth: c.Health.MaxHP(),
			Attacking: c.IsAttacking,
			Attack:    c.AttackRect(),
		}
	}
	return s
}

// ResultReason says which terminal condition ended the match.
type ResultReason string

const (
	ReasonKnockout ResultReason = "knockout"
	ReasonTimeUp   ResultReason = "timeUp"
)

// MatchResult is emitted once when the match ends.
type MatchResult struct {
	Outcome       Outcome      `json:"outcome"`
	Reason        ResultReason `json:"reason"`
	PlayerHealth  int          `json:"playerHealth"`
	EnemyHealth   int          `json:"enemyHealth"`
	TimeRemaining int          `json:"timeRemaining"`
	Frame         int64        `json:"frame"`
}
