package system

import "github.com/milk9111/streetfighter/component"

// KeyEvent is a key-down or key-up for one side.
type KeyEvent struct {
	Side Side
	Key  component.Key
	Down bool
}

// Controller writes intents into a side's Input once per frame, before the
// frame consumes them. m must be treated as read-only.
type Controller interface {
	Update(m *Match, side Side, in *component.Input)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(m *Match, side Side, in *component.Input)

func (f ControllerFunc) Update(m *Match, side Side, in *component.Input) {
	f(m, side, in)
}
