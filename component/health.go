package component

// DefaultMaxHealth is the health every fighter starts a match with unless
// its spec says otherwise.
const DefaultMaxHealth = 100

// Health tracks hit points in [0, Max]. It only ever goes down during a match.
type Health struct {
	Max     int
	Current int
	Dead    bool

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = DefaultMaxHealth
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount, flooring at 0. Returns true if damage was
// applied.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}

// CurrentHP returns the current health value.
func (h *Health) CurrentHP() int {
	if h == nil {
		return 0
	}
	return h.Current
}

// MaxHP returns the maximum health value.
func (h *Health) MaxHP() int {
	if h == nil {
		return 0
	}
	return h.Max
}

// Fraction returns Current/Max, for health bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
