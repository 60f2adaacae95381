package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/component"
)

// MatchLoop advances a Match. Step runs once per frame and StepSecond once
// per second; the two are scheduled independently by the caller.
type MatchLoop struct {
	Match   *Match
	Emitter *EventEmitter

	controllers [2]Controller
	logger      *zap.Logger
	swings      [2]map[component.SwingOutcome]int
	result      *MatchResult
}

// Option configures a MatchLoop.
type Option func(*MatchLoop)

// WithLogger sets the logger used for match events.
func WithLogger(logger *zap.Logger) Option {
	return func(l *MatchLoop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHandler registers an event handler.
func WithHandler(h EventHandler) Option {
	return func(l *MatchLoop) {
		l.Emitter.Add(h)
	}
}

// WithSink registers s for snapshots, health changes, swings and the result.
func WithSink(s Sink) Option {
	return func(l *MatchLoop) {
		if s != nil {
			l.Emitter.Add(SinkHandler(s))
		}
	}
}

// WithController lets c drive the given side's input every frame.
func WithController(side Side, c Controller) Option {
	return func(l *MatchLoop) {
		if side.Valid() {
			l.controllers[side] = c
		}
	}
}

// NewMatchLoop creates a loop for m.
func NewMatchLoop(m *Match, opts ...Option) *MatchLoop {
	l := &MatchLoop{
		Match:   m,
		Emitter: &EventEmitter{},
		logger:  zap.NewNop(),
		swings: [2]map[component.SwingOutcome]int{
			make(map[component.SwingOutcome]int),
			make(map[component.SwingOutcome]int),
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger.Info("match started",
		zap.String("player", m.Player().Name),
		zap.String("enemy", m.Enemy().Name),
		zap.Int("time_limit", m.TimeRemaining),
	)
	return l
}

// SetController replaces the controller for side. nil hands the side back to
// key events only.
func (l *MatchLoop) SetController(side Side, c Controller) {
	if l == nil || !side.Valid() {
		return
	}
	l.controllers[side] = c
}

// HandleKey records a key event for the next frame. Events after the match
// ended and events for an unknown side are dropped.
func (l *MatchLoop) HandleKey(ev KeyEvent) {
	if l == nil || l.Match.Over() {
		return
	}
	in := l.Match.Input(ev.Side)
	if in == nil {
		return
	}
	in.Set(ev.Key, ev.Down)
}

// Step advances the match by one frame: intents, physics, facing and
// animation, swing resolution, the knockout check, then the snapshot.
func (l *MatchLoop) Step() {
	if l == nil || l.Match.Over() {
		return
	}
	m := l.Match
	m.Frame++

	for _, side := range Sides {
		if c := l.controllers[side]; c != nil {
			c.Update(m, side, m.Input(side))
		}
		l.consumeIntents(side)
	}

	for _, side := range Sides {
		f := m.Fighter(side)
		f.Integrate(m.Arena.Gravity, m.GroundY(f))
		m.clampToArena(f)
	}
	// facing uses where both fighters ended up this frame
	for _, side := range Sides {
		f := m.Fighter(side)
		f.Face(m.Fighter(side.Opponent()))
		f.Animate()
	}

	l.resolveSwings()

	playerHP := m.Player().Health.CurrentHP()
	enemyHP := m.Enemy().Health.CurrentHP()
	if playerHP <= 0 || enemyHP <= 0 {
		l.finish(Arbitrate(playerHP, enemyHP, false), ReasonKnockout)
		return
	}
	l.emitSnapshot()
}

// StepSecond counts the timer down by one second. Reaching 0 ends the match.
func (l *MatchLoop) StepSecond() {
	if l == nil || l.Match.Over() {
		return
	}
	m := l.Match
	if m.TimeRemaining > 0 {
		m.TimeRemaining--
		l.Emitter.Emit(Event{Type: EventTimer, Frame: m.Frame, Time: m.TimeRemaining})
	}
	if m.TimeRemaining > 0 {
		return
	}
	l.finish(Arbitrate(m.Player().Health.CurrentHP(), m.Enemy().Health.CurrentHP(), true), ReasonTimeUp)
}

// Over reports whether the match has a final outcome.
func (l *MatchLoop) Over() bool {
	return l == nil || l.Match.Over()
}

// Result returns the final result once the match is over.
func (l *MatchLoop) Result() (MatchResult, bool) {
	if l == nil || l.result == nil {
		return MatchResult{}, false
	}
	return *l.result, true
}

// SwingsResolved returns how many swings of side were resolved, by outcome.
func (l *MatchLoop) SwingsResolved(side Side) map[component.SwingOutcome]int {
	if !side.Valid() {
		return map[component.SwingOutcome]int{}
	}
	out := make(map[component.SwingOutcome]int, len(l.swings[side]))
	for k, v := range l.swings[side] {
		out[k] = v
	}
	return out
}

func (l *MatchLoop) consumeIntents(side Side) {
	in := l.Match.Input(side)
	f := l.Match.Fighter(side)

	f.ClearMove()
	if dir := in.Move(); dir != component.DirNone {
		f.RequestMove(dir)
	}
	if in.TakeJump() {
		f.RequestJump()
	}
	if in.TakeAttack() {
		f.RequestAttack()
	}
}

func (l *MatchLoop) emitSnapshot() {
	snap := l.Match.Snapshot()
	l.Emitter.Emit(Event{Type: EventSnapshot, Frame: l.Match.Frame, Snapshot: &snap})
}

// finish decides the match. Swings still open are closed as interrupted, and
// a last snapshot carrying the outcome goes out before the result.
func (l *MatchLoop) finish(outcome Outcome, reason ResultReason) {
	m := l.Match
	if outcome == OutcomeOngoing || m.Outcome != OutcomeOngoing {
		return
	}
	m.Outcome = outcome
	for _, in := range m.Inputs {
		in.Reset()
	}
	for _, side := range Sides {
		if f := m.Fighter(side); f.IsAttacking {
			f.EndSwing()
			l.emitSwing(side, component.SwingInterrupted, 0)
		}
	}
	l.emitSnapshot()

	res := MatchResult{
		Outcome:       outcome,
		Reason:        reason,
		PlayerHealth:  m.Player().Health.CurrentHP(),
		EnemyHealth:   m.Enemy().Health.CurrentHP(),
		TimeRemaining: m.TimeRemaining,
		Frame:         m.Frame,
	}
	l.result = &res
	l.logger.Info("match over",
		zap.Stringer("outcome", outcome),
		zap.String("reason", string(reason)),
		zap.Int("player_health", res.PlayerHealth),
		zap.Int("enemy_health", res.EnemyHealth),
		zap.Int("time_remaining", res.TimeRemaining),
	)
	l.Emitter.Emit(Event{Type: EventResult, Frame: m.Frame, Result: &res})
}
