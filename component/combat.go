package component

import "github.com/milk9111/streetfighter/common"

const (
	DefaultActiveFrame = 1
	DefaultDamage      = 20
)

// AttackBox is an offensive AABB relative to the fighter's position, authored
// for a fighter facing right.
type AttackBox struct {
	Offset common.Vector2
	Width  float64
	Height float64
}

// Move describes one attack of a fighter's move-set. The box only deals
// damage while the attack animation shows ActiveFrame.
type Move struct {
	Name        string
	Box         AttackBox
	ActiveFrame int
	Damage      int
}

// SwingOutcome is how a swing was resolved.
type SwingOutcome string

const (
	SwingHit         SwingOutcome = "hit"
	SwingMiss        SwingOutcome = "miss"
	SwingInterrupted SwingOutcome = "interrupted"
)
