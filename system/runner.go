package system

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultFrameInterval  = time.Second / 60
	DefaultSecondInterval = time.Second
	inboxSize             = 256
)

// Runner drives a MatchLoop from one goroutine: a frame ticker and an
// independent one-second ticker, plus an inbox of key events sent from other
// goroutines. Handlers registered on the loop run on the Runner goroutine.
type Runner struct {
	loop           *MatchLoop
	frameInterval  time.Duration
	secondInterval time.Duration
	inbox          chan KeyEvent
	logger         *zap.Logger
	dropped        atomic.Int64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithIntervals overrides the frame and second tick periods.
func WithIntervals(frame, second time.Duration) RunnerOption {
	return func(r *Runner) {
		if frame > 0 {
			r.frameInterval = frame
		}
		if second > 0 {
			r.secondInterval = second
		}
	}
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner wraps loop. The frame rate defaults to the arena's
// TicksPerSecond.
func NewRunner(loop *MatchLoop, opts ...RunnerOption) *Runner {
	frame := DefaultFrameInterval
	if loop != nil && loop.Match != nil && loop.Match.Arena.TicksPerSecond > 0 {
		frame = time.Second / time.Duration(loop.Match.Arena.TicksPerSecond)
	}
	r := &Runner{
		loop:           loop,
		frameInterval:  frame,
		secondInterval: DefaultSecondInterval,
		inbox:          make(chan KeyEvent, inboxSize),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send queues a key event without blocking. Returns false if the inbox is
// full and the event was dropped.
func (r *Runner) Send(ev KeyEvent) bool {
	select {
	case r.inbox <- ev:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Run drives the match until it ends or ctx is cancelled. It returns nil when
// the match produced a result and ctx.Err() otherwise.
func (r *Runner) Run(ctx context.Context) error {
	frame := time.NewTicker(r.frameInterval)
	defer frame.Stop()
	second := time.NewTicker(r.secondInterval)
	defer second.Stop()

	r.logger.Debug("runner started",
		zap.Duration("frame_interval", r.frameInterval),
		zap.Duration("second_interval", r.secondInterval),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-r.inbox:
			r.loop.HandleKey(ev)
		case <-frame.C:
			r.drain()
			r.loop.Step()
		case <-second.C:
			r.loop.StepSecond()
		}
		if r.loop.Over() {
			r.logger.Debug("runner stopped", zap.Int64("dropped_events", r.dropped.Load()))
			return nil
		}
	}
}

// drain applies every queued event so a frame sees the latest key state.
func (r *Runner) drain() {
	for {
		select {
		case ev := <-r.inbox:
			r.loop.HandleKey(ev)
		default:
			return
		}
	}
}
