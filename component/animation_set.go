package component

import (
	"errors"
	"fmt"
)

var ErrMissingAnimation = errors.New("component: missing animation")

// AnimationSet maps each state to the frames that draw it.
type AnimationSet map[AnimationState]FrameSource

// Lookup returns the frames for `state`, or ErrMissingAnimation.
func (s AnimationSet) Lookup(state AnimationState) (FrameSource, error) {
	src, ok := s[state]
	if !ok {
		return FrameSource{}, fmt.Errorf("%w: %s", ErrMissingAnimation, state)
	}
	return src, nil
}

// Validate checks that every state is present with at least one frame.
func (s AnimationSet) Validate() error {
	for _, state := range AnimationStates {
		src, err := s.Lookup(state)
		if err != nil {
			return err
		}
		if src.FrameCount <= 0 {
			return fmt.Errorf("component: animation %s has no frames", state)
		}
	}
	return nil
}
