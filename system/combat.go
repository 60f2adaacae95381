package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/component"
)

type dueSwing struct {
	attacker Side
	hit      bool
}

// resolveSwings evaluates every swing that reached its active frame this
// tick. All due swings are evaluated against the pre-hit state before any
// damage lands, so two fatal swings on the same tick both count.
func (l *MatchLoop) resolveSwings() {
	m := l.Match
	due := make([]dueSwing, 0, 2)
	for _, side := range Sides {
		attacker := m.Fighter(side)
		defender := m.Fighter(side.Opponent())
		if !attacker.SwingDue() {
			continue
		}
		due = append(due, dueSwing{attacker: side, hit: component.Intersects(attacker, defender)})
		attacker.EndSwing()
	}

	for _, d := range due {
		attacker := m.Fighter(d.attacker)
		if !d.hit {
			l.emitSwing(d.attacker, component.SwingMiss, 0)
			continue
		}
		l.landHit(d.attacker, attacker.Attack.Damage)
	}
}

func (l *MatchLoop) landHit(attackerSide Side, damage int) {
	m := l.Match
	attacker := m.Fighter(attackerSide)
	defenderSide := attackerSide.Opponent()
	defender := m.Fighter(defenderSide)

	interrupted := defender.IsAttacking
	if !defender.ApplyHit(damage) {
		l.emitSwing(attackerSide, component.SwingMiss, 0)
		return
	}
	l.emitSwing(attackerSide, component.SwingHit, damage)
	if interrupted {
		l.emitSwing(defenderSide, component.SwingInterrupted, 0)
	}

	hp := defender.Health.CurrentHP()
	l.logger.Debug("hit landed",
		zap.String("attacker", attacker.Name),
		zap.String("defender", defender.Name),
		zap.Int("damage", damage),
		zap.Int("health", hp),
		zap.Int64("frame", m.Frame),
	)
	l.Emitter.Emit(Event{Type: EventHealthChanged, Frame: m.Frame, Side: defenderSide, Health: hp})
}

func (l *MatchLoop) emitSwing(side Side, outcome component.SwingOutcome, damage int) {
	m := l.Match
	c := m.Fighter(side)
	l.swings[side][outcome]++
	if outcome != component.SwingHit {
		l.logger.Debug("swing resolved",
			zap.String("fighter", c.Name),
			zap.String("outcome", string(outcome)),
			zap.Int64("frame", m.Frame),
		)
	}
	l.Emitter.Emit(Event{
		Type:  EventSwing,
		Frame: m.Frame,
		Side:  side,
		Swing: &SwingEvent{Attacker: side, Move: c.Attack.Name, Outcome: outcome, Damage: damage},
	})
}
