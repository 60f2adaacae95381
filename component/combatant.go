package component

import (
	"fmt"

	"github.com/milk9111/streetfighter/common"
)

// Facing is derived every tick from where the opponent stands.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Direction is a horizontal movement intent. Its value is the sign of the
// resulting velocity.
type Direction int

const (
	DirLeft  Direction = -1
	DirNone  Direction = 0
	DirRight Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

const (
	DefaultMoveSpeed   = 5.0
	DefaultJumpImpulse = 20.0
)

// CombatantDef is everything needed to build a fighter for one match.
type CombatantDef struct {
	Name        string
	Width       float64
	Height      float64
	Start       common.Vector2
	Facing      Facing
	MoveSpeed   float64
	JumpImpulse float64
	MaxHealth   int
	FrameHold   int
	Animations  AnimationSet
	Attack      Move
}

// Combatant is one fighter: physics body, animation state machine, hit box,
// attack move and health.
type Combatant struct {
	Name        string
	Position    common.Vector2
	Velocity    common.Vector2
	Width       float64
	Height      float64
	MoveSpeed   float64
	JumpImpulse float64
	Facing      Facing
	LastMove    Direction
	IsAttacking bool
	IsDead      bool

	Health     *Health
	Sprite     *AnimatedSprite
	Animations AnimationSet
	Attack     Move

	moving Direction
	swings int
}

// NewCombatant builds a fighter from def. It fails with ErrMissingAnimation
// when the animation set does not cover every state.
func NewCombatant(def CombatantDef) (*Combatant, error) {
	if err := def.Animations.Validate(); err != nil {
		return nil, fmt.Errorf("combatant %s: %w", def.Name, err)
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("combatant %s: invalid body size %gx%g", def.Name, def.Width, def.Height)
	}
	speed := def.MoveSpeed
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}
	jump := def.JumpImpulse
	if jump <= 0 {
		jump = DefaultJumpImpulse
	}
	attack := def.Attack
	if attack.Damage <= 0 {
		attack.Damage = DefaultDamage
	}
	if attack.ActiveFrame < 0 {
		attack.ActiveFrame = DefaultActiveFrame
	}

	idle := def.Animations[StateIdle]
	sprite := NewAnimatedSprite(StateIdle, idle, def.FrameHold)
	sprite.Mirrored = def.Facing == FacingLeft

	return &Combatant{
		Name:        def.Name,
		Position:    def.Start,
		Width:       def.Width,
		Height:      def.Height,
		MoveSpeed:   speed,
		JumpImpulse: jump,
		Facing:      def.Facing,
		Health:      NewHealth(def.MaxHealth),
		Sprite:      sprite,
		Animations:  def.Animations,
		Attack:      attack,
	}, nil
}

// RequestMove sets the horizontal velocity for this tick.
func (c *Combatant) RequestMove(dir Direction) {
	if c == nil || c.IsDead {
		return
	}
	if dir == DirNone {
		c.ClearMove()
		return
	}
	c.Velocity.X = float64(dir) * c.MoveSpeed
	c.moving = dir
	c.LastMove = dir
}

// ClearMove stops horizontal movement.
func (c *Combatant) ClearMove() {
	if c == nil || c.IsDead {
		return
	}
	c.Velocity.X = 0
	c.moving = DirNone
}

// RequestJump applies the jump impulse. There is no grounded check, so a jump
// can be triggered again in mid-air.
func (c *Combatant) RequestJump() {
	if c == nil || c.IsDead {
		return
	}
	c.Velocity.Y = -c.JumpImpulse
}

// RequestAttack starts a swing. Returns false when a swing is already in
// progress or the fighter is dead.
func (c *Combatant) RequestAttack() bool {
	if c == nil || c.IsDead || c.IsAttacking {
		return false
	}
	c.IsAttacking = true
	c.swings++
	c.switchTo(StateAttack)
	c.Sprite.Restart()
	return true
}

// Swings returns how many attack requests were accepted.
func (c *Combatant) Swings() int {
	if c == nil {
		return 0
	}
	return c.swings
}

// Tick runs Integrate, Face and Animate for a fighter on its own. groundY is
// the resting value of Position.Y.
func (c *Combatant) Tick(gravity, groundY float64, opponent *Combatant) {
	if c == nil {
		return
	}
	c.Integrate(gravity, groundY)
	c.Face(opponent)
	c.Animate()
}

// Integrate applies velocity and gravity, landing the fighter on groundY.
func (c *Combatant) Integrate(gravity, groundY float64) {
	if c == nil {
		return
	}
	c.Position.X += c.Velocity.X
	if c.Position.Y+c.Velocity.Y >= groundY {
		c.Position.Y = groundY
		c.Velocity.Y = 0
	} else {
		c.Position.Y += c.Velocity.Y
		c.Velocity.Y += gravity
	}
}

// Face turns the fighter toward opponent. A dead fighter keeps the facing it
// had when it went down.
func (c *Combatant) Face(opponent *Combatant) {
	if c == nil || c.IsDead {
		return
	}
	if opponent != nil {
		mine := c.HitRect().CenterX()
		theirs := opponent.HitRect().CenterX()
		switch {
		case theirs > mine:
			c.Facing = FacingRight
		case theirs < mine:
			c.Facing = FacingLeft
		}
	}
	c.Sprite.Mirrored = c.Facing == FacingLeft
}

// Animate picks the animation state and advances the sprite by one tick.
func (c *Combatant) Animate() {
	if c == nil {
		return
	}
	c.selectState()
	// death plays once and holds its final frame
	if c.IsDead && c.Sprite.State() == StateDeath && c.Sprite.OnLastFrame() {
		return
	}
	c.Sprite.Advance(1)
}

// ApplyHit takes damage from a landed swing. A fighter that is mid-swing has
// the swing cancelled. Returns false when already dead.
func (c *Combatant) ApplyHit(damage int) bool {
	if c == nil || c.IsDead {
		return false
	}
	if !c.Health.ApplyDamage(damage) {
		return false
	}
	c.IsAttacking = false
	if !c.Health.IsAlive() {
		c.IsDead = true
		c.Velocity.X = 0
		c.moving = DirNone
		c.switchTo(StateDeath)
		return true
	}
	c.switchTo(StateTakeHit)
	return true
}

// IsGrounded reports whether the fighter rests on groundY.
func (c *Combatant) IsGrounded(groundY float64) bool {
	return c != nil && c.Position.Y >= groundY && c.Velocity.Y == 0
}

// HitRect is the body box that attacks are tested against, in world space.
func (c *Combatant) HitRect() common.Rect {
	if c == nil {
		return common.Rect{}
	}
	return common.Rect{X: c.Position.X, Y: c.Position.Y, Width: c.Width, Height: c.Height}
}

// AttackRect is the attack box in world space. Facing left reflects the box
// about the fighter's body.
func (c *Combatant) AttackRect() common.Rect {
	if c == nil {
		return common.Rect{}
	}
	box := c.Attack.Box
	ox := box.Offset.X
	if c.Facing == FacingLeft {
		ox = c.Width - box.Offset.X - box.Width
	}
	return common.Rect{
		X:      c.Position.X + ox,
		Y:      c.Position.Y + box.Offset.Y,
		Width:  box.Width,
		Height: box.Height,
	}
}

// SwingDue reports whether the current swing has reached its active frame.
// A swing whose animation already moved past that frame is also due, so it
// resolves as a miss instead of staying open.
func (c *Combatant) SwingDue() bool {
	if c == nil || !c.IsAttacking || c.Sprite.State() != StateAttack {
		return false
	}
	return c.Sprite.Frame() >= c.Attack.ActiveFrame || c.Sprite.Cycles() > 0
}

// EndSwing closes the current swing after it was evaluated.
func (c *Combatant) EndSwing() {
	if c == nil {
		return
	}
	c.IsAttacking = false
}

// State returns the active animation state.
func (c *Combatant) State() AnimationState {
	if c == nil {
		return ""
	}
	return c.Sprite.State()
}

func (c *Combatant) selectState() {
	switch {
	case c.IsDead:
		c.switchTo(StateDeath)
	case c.IsAttacking || c.playingOnce(StateAttack):
		c.switchTo(StateAttack)
	case c.playingOnce(StateTakeHit):
	case c.Velocity.Y < 0:
		c.switchTo(StateJump)
	case c.Velocity.Y > 0:
		c.switchTo(StateFall)
	case c.moving != DirNone && c.moving == c.LastMove:
		c.switchTo(StateRun)
	default:
		c.switchTo(StateIdle)
	}
}

// playingOnce reports whether a play-once state is active and has not
// finished its first cycle yet.
func (c *Combatant) playingOnce(state AnimationState) bool {
	return c.Sprite.State() == state && c.Sprite.Cycles() == 0
}

func (c *Combatant) switchTo(state AnimationState) {
	// Validate in NewCombatant guarantees the lookup succeeds.
	src, _ := c.Animations.Lookup(state)
	c.Sprite.SwitchTo(state, src)
}
