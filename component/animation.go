package component

// AnimationState names one entry of a fighter's animation set.
type AnimationState string

const (
	StateIdle    AnimationState = "idle"
	StateRun     AnimationState = "run"
	StateJump    AnimationState = "jump"
	StateFall    AnimationState = "fall"
	StateAttack  AnimationState = "attack"
	StateTakeHit AnimationState = "takeHit"
	StateDeath   AnimationState = "death"
)

// AnimationStates lists every state a complete animation set must provide.
var AnimationStates = []AnimationState{
	StateIdle,
	StateRun,
	StateJump,
	StateFall,
	StateAttack,
	StateTakeHit,
	StateDeath,
}

// DefaultFrameHold is how many ticks each frame stays on screen.
const DefaultFrameHold = 5

// FrameSource is the image handle and frame count backing one state. The
// engine never loads Sheet; hosts use it to pick the art.
type FrameSource struct {
	Sheet      string
	FrameCount int
}

// AnimatedSprite cycles the frames of the active state. Frames advance every
// Hold ticks and wrap back to 0 after the last one.
type AnimatedSprite struct {
	Hold     int
	Mirrored bool

	state   AnimationState
	source  FrameSource
	frame   int
	elapsed int
	cycles  int
}

// NewAnimatedSprite creates a sprite playing `state` from `src`. A hold <= 0
// falls back to DefaultFrameHold.
func NewAnimatedSprite(state AnimationState, src FrameSource, hold int) *AnimatedSprite {
	if hold <= 0 {
		hold = DefaultFrameHold
	}
	return &AnimatedSprite{Hold: hold, state: state, source: src}
}

// Advance moves the animation forward by dtTicks.
func (a *AnimatedSprite) Advance(dtTicks int) {
	if a == nil || dtTicks <= 0 {
		return
	}
	hold := a.Hold
	if hold <= 0 {
		hold = 1
	}
	a.elapsed += dtTicks
	for a.elapsed >= hold {
		a.elapsed -= hold
		a.frame++
		if a.frame >= a.source.FrameCount {
			a.frame = 0
			a.cycles++
		}
	}
}

// SwitchTo makes `state` the active animation. Switching to the state that is
// already playing does nothing, so held input never restarts a cycle.
// Returns true when the state actually changed.
func (a *AnimatedSprite) SwitchTo(state AnimationState, src FrameSource) bool {
	if a == nil || a.state == state {
		return false
	}
	a.state = state
	a.source = src
	a.Restart()
	return true
}

// Restart rewinds the current state to its first frame.
func (a *AnimatedSprite) Restart() {
	if a == nil {
		return
	}
	a.frame = 0
	a.elapsed = 0
	a.cycles = 0
}

func (a *AnimatedSprite) State() AnimationState {
	if a == nil {
		return ""
	}
	return a.state
}

// Frame returns the current frame index.
func (a *AnimatedSprite) Frame() int {
	if a == nil {
		return 0
	}
	return a.frame
}

func (a *AnimatedSprite) FrameCount() int {
	if a == nil {
		return 0
	}
	return a.source.FrameCount
}

func (a *AnimatedSprite) Source() FrameSource {
	if a == nil {
		return FrameSource{}
	}
	return a.source
}

// Cycles reports how many times the current state has wrapped since it was
// entered.
func (a *AnimatedSprite) Cycles() int {
	if a == nil {
		return 0
	}
	return a.cycles
}

// OnLastFrame reports whether the sprite shows the final frame of its state.
func (a *AnimatedSprite) OnLastFrame() bool {
	if a == nil || a.source.FrameCount <= 0 {
		return true
	}
	return a.frame == a.source.FrameCount-1
}
