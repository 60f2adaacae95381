package system

import "github.com/milk9111/streetfighter/component"

// EventType identifies a match event.
type EventType string

const (
	EventSnapshot      EventType = "snapshot"
	EventHealthChanged EventType = "health_changed"
	EventSwing         EventType = "swing"
	EventTimer         EventType = "timer"
	EventResult        EventType = "result"
)

// SwingEvent records how one swing resolved.
type SwingEvent struct {
	Attacker Side                   `json:"attacker"`
	Move     string                 `json:"move"`
	Outcome  component.SwingOutcome `json:"outcome"`
	Damage   int                    `json:"damage,omitempty"`
}

// Event is emitted by MatchLoop. Only the field matching Type is set.
type Event struct {
	Type     EventType    `json:"type"`
	Frame    int64        `json:"frame"`
	Side     Side         `json:"side"`
	Health   int          `json:"health"`
	Time     int          `json:"time"`
	Swing    *SwingEvent  `json:"swing,omitempty"`
	Snapshot *Snapshot    `json:"snapshot,omitempty"`
	Result   *MatchResult `json:"result,omitempty"`
}

// EventHandler handles match events.
type EventHandler func(evt Event)

// EventEmitter dispatches events to every handler in order.
type EventEmitter struct {
	Handlers []EventHandler
}

// Add registers a handler.
func (e *EventEmitter) Add(h EventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends an event to all handlers.
func (e *EventEmitter) Emit(evt Event) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Sink receives a match's outputs. Callbacks run on the goroutine driving the
// loop and must not retain the Snapshot's backing arrays across calls.
type Sink interface {
	OnSnapshot(s Snapshot)
	OnHealthChanged(side Side, health int)
	OnSwing(ev SwingEvent)
	OnResult(res MatchResult)
}

// SinkFuncs implements Sink with optional callbacks.
type SinkFuncs struct {
	Snapshot      func(s Snapshot)
	HealthChanged func(side Side, health int)
	Swing         func(ev SwingEvent)
	Result        func(res MatchResult)
}

func (f SinkFuncs) OnSnapshot(s Snapshot) {
	if f.Snapshot != nil {
		f.Snapshot(s)
	}
}

func (f SinkFuncs) OnHealthChanged(side Side, health int) {
	if f.HealthChanged != nil {
		f.HealthChanged(side, health)
	}
}

func (f SinkFuncs) OnSwing(ev SwingEvent) {
	if f.Swing != nil {
		f.Swing(ev)
	}
}

func (f SinkFuncs) OnResult(res MatchResult) {
	if f.Result != nil {
		f.Result(res)
	}
}

// SinkHandler routes events to s.
func SinkHandler(s Sink) EventHandler {
	return func(evt Event) {
		switch evt.Type {
		case EventSnapshot:
			if evt.Snapshot != nil {
				s.OnSnapshot(*evt.Snapshot)
			}
		case EventHealthChanged:
			s.OnHealthChanged(evt.Side, evt.Health)
		case EventSwing:
			if evt.Swing != nil {
				s.OnSwing(*evt.Swing)
			}
		case EventResult:
			if evt.Result != nil {
				s.OnResult(*evt.Result)
			}
		}
	}
}
