package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milk9111/streetfighter/component"
)

func TestRunnerEndsOnTimeUp(t *testing.T) {
	arena := DefaultArena()
	arena.TimeLimit = 3
	rec := &recorder{}
	m := NewMatch(arena, testFighter(t, "ken", 0, component.FacingRight), testFighter(t, "ryu", 900, component.FacingLeft))
	loop := NewMatchLoop(m, WithHandler(rec.handle))
	r := NewRunner(loop, WithIntervals(time.Millisecond, 10*time.Millisecond))

	if !r.Send(KeyEvent{Side: SidePlayer, Key: component.KeyAttack, Down: true}) {
		t.Fatalf("send should not fail on an empty inbox")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	res, ok := loop.Result()
	if !ok || res.Reason != ReasonTimeUp || res.Outcome != OutcomeDraw {
		t.Fatalf("unexpected result %+v ok=%v", res, ok)
	}
	if m.Player().Swings() != 1 {
		t.Fatalf("queued attack was not applied, swings=%d", m.Player().Swings())
	}
	if len(rec.results()) != 1 {
		t.Fatalf("expected one result event, got %d", len(rec.results()))
	}
	if m.Frame == 0 {
		t.Fatalf("expected frames to run alongside the timer")
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	m := NewMatch(DefaultArena(), testFighter(t, "ken", 0, component.FacingRight), testFighter(t, "ryu", 900, component.FacingLeft))
	r := NewRunner(NewMatchLoop(m), WithIntervals(time.Millisecond, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
	if m.Over() {
		t.Fatalf("a cancelled match has no outcome")
	}
}

func TestRunnerSendDropsWhenFull(t *testing.T) {
	m := NewMatch(DefaultArena(), testFighter(t, "ken", 0, component.FacingRight), testFighter(t, "ryu", 900, component.FacingLeft))
	r := NewRunner(NewMatchLoop(m))
	for i := 0; i < inboxSize; i++ {
		if !r.Send(KeyEvent{Side: SidePlayer, Key: component.KeyLeft, Down: i%2 == 0}) {
			t.Fatalf("send %d failed before the inbox was full", i)
		}
	}
	if r.Send(KeyEvent{Side: SidePlayer, Key: component.KeyLeft, Down: true}) {
		t.Fatalf("expected the send to be dropped")
	}
	if r.dropped.Load() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", r.dropped.Load())
	}
}
