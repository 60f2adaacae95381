package component

// Key is one of the four combat inputs a side can send.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyJump
	KeyAttack
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	case KeyAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Input stores key state for one side between ticks. Move keys are
// level-triggered; jump and attack latch on key-down until the next tick
// consumes them.
type Input struct {
	Left  bool
	Right bool

	last   Direction
	jump   bool
	attack bool
}

// Press records a key-down.
func (in *Input) Press(k Key) {
	if in == nil {
		return
	}
	switch k {
	case KeyLeft:
		in.Left = true
		in.last = DirLeft
	case KeyRight:
		in.Right = true
		in.last = DirRight
	case KeyJump:
		in.jump = true
	case KeyAttack:
		in.attack = true
	}
}

// Release records a key-up. Releasing the most recent move key hands control
// to the other one if it is still held.
func (in *Input) Release(k Key) {
	if in == nil {
		return
	}
	switch k {
	case KeyLeft:
		in.Left = false
		if in.last == DirLeft && in.Right {
			in.last = DirRight
		}
	case KeyRight:
		in.Right = false
		if in.last == DirRight && in.Left {
			in.last = DirLeft
		}
	}
}

// Set applies a key event.
func (in *Input) Set(k Key, down bool) {
	if down {
		in.Press(k)
		return
	}
	in.Release(k)
}

// Hold makes dir the only held move key. Controllers that decide a direction
// every tick use this instead of Press/Release pairs.
func (in *Input) Hold(dir Direction) {
	if in == nil {
		return
	}
	switch dir {
	case DirLeft:
		in.Right = false
		in.Press(KeyLeft)
	case DirRight:
		in.Left = false
		in.Press(KeyRight)
	default:
		in.Left = false
		in.Right = false
	}
}

// Move resolves the held move keys. The most recently pressed key that is
// still held wins.
func (in *Input) Move() Direction {
	if in == nil {
		return DirNone
	}
	switch {
	case in.last == DirLeft && in.Left:
		return DirLeft
	case in.last == DirRight && in.Right:
		return DirRight
	default:
		return DirNone
	}
}

// TakeJump consumes a latched jump.
func (in *Input) TakeJump() bool {
	if in == nil || !in.jump {
		return false
	}
	in.jump = false
	return true
}

// TakeAttack consumes a latched attack.
func (in *Input) TakeAttack() bool {
	if in == nil || !in.attack {
		return false
	}
	in.attack = false
	return true
}

// Reset drops all key state.
func (in *Input) Reset() {
	if in == nil {
		return
	}
	*in = Input{}
}
