package component

import (
	"errors"
	"testing"
)

func TestAnimatedSpriteAdvance(t *testing.T) {
	cases := []struct {
		name       string
		frames     int
		hold       int
		ticks      int
		wantFrame  int
		wantCycles int
	}{
		{"before_first_hold", 4, 5, 4, 0, 0},
		{"exactly_one_hold", 4, 5, 5, 1, 0},
		{"wraps_after_last", 3, 5, 15, 0, 1},
		{"two_cycles", 2, 1, 4, 0, 2},
		{"hold_one", 4, 1, 3, 3, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimatedSprite(StateIdle, FrameSource{Sheet: "idle.png", FrameCount: c.frames}, c.hold)
			for i := 0; i < c.ticks; i++ {
				a.Advance(1)
			}
			if a.Frame() != c.wantFrame {
				t.Fatalf("expected frame %d, got %d", c.wantFrame, a.Frame())
			}
			if a.Cycles() != c.wantCycles {
				t.Fatalf("expected %d cycles, got %d", c.wantCycles, a.Cycles())
			}
		})
	}
}

func TestAnimatedSpriteAdvanceMultipleTicks(t *testing.T) {
	a := NewAnimatedSprite(StateRun, FrameSource{FrameCount: 5}, 5)
	a.Advance(12)
	if a.Frame() != 2 {
		t.Fatalf("expected frame 2 after 12 ticks, got %d", a.Frame())
	}
	a.Advance(0)
	a.Advance(-3)
	if a.Frame() != 2 {
		t.Fatalf("non-positive dt must not move the animation, got frame %d", a.Frame())
	}
}

func TestAnimatedSpriteSwitchToIsIdempotent(t *testing.T) {
	run := FrameSource{Sheet: "run.png", FrameCount: 5}
	a := NewAnimatedSprite(StateIdle, FrameSource{FrameCount: 4}, 1)

	if !a.SwitchTo(StateRun, run) {
		t.Fatalf("switching to a new state should report a change")
	}
	a.Advance(3)
	if a.Frame() != 3 {
		t.Fatalf("expected frame 3, got %d", a.Frame())
	}

	if a.SwitchTo(StateRun, run) {
		t.Fatalf("re-entering the same state should be a no-op")
	}
	if a.Frame() != 3 {
		t.Fatalf("re-entering the same state restarted the cycle: frame %d", a.Frame())
	}

	a.SwitchTo(StateIdle, FrameSource{FrameCount: 4})
	if a.Frame() != 0 || a.State() != StateIdle {
		t.Fatalf("switch to a different state should reset, got state=%s frame=%d", a.State(), a.Frame())
	}
}

func TestAnimationSetLookup(t *testing.T) {
	set := testAnimations()
	if err := set.Validate(); err != nil {
		t.Fatalf("complete set should validate: %v", err)
	}

	delete(set, StateTakeHit)
	if _, err := set.Lookup(StateTakeHit); !errors.Is(err, ErrMissingAnimation) {
		t.Fatalf("expected ErrMissingAnimation, got %v", err)
	}
	if err := set.Validate(); !errors.Is(err, ErrMissingAnimation) {
		t.Fatalf("expected Validate to report the missing state, got %v", err)
	}

	set[StateTakeHit] = FrameSource{FrameCount: 0}
	if err := set.Validate(); err == nil {
		t.Fatalf("expected an error for a state with no frames")
	}
}
