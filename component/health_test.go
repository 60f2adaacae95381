package component

import "testing"

func TestHealthApplyDamage(t *testing.T) {
	h := NewHealth(100)
	var damaged, deaths int
	h.OnDamage = func(_ *Health, _ int) { damaged++ }
	h.OnDeath = func(_ *Health) { deaths++ }

	if h.ApplyDamage(0) || h.ApplyDamage(-5) {
		t.Fatalf("non-positive damage must be ignored")
	}
	prev := h.CurrentHP()
	for i := 0; i < 7; i++ {
		h.ApplyDamage(20)
		if h.CurrentHP() < 0 || h.CurrentHP() > prev {
			t.Fatalf("health left bounds or went up: %d -> %d", prev, h.CurrentHP())
		}
		prev = h.CurrentHP()
	}
	if h.IsAlive() || !h.Dead {
		t.Fatalf("expected dead health")
	}
	if damaged != 5 || deaths != 1 {
		t.Fatalf("expected 5 damage callbacks and 1 death, got %d and %d", damaged, deaths)
	}
	if h.Fraction() != 0 {
		t.Fatalf("expected empty bar, got %g", h.Fraction())
	}
}

func TestHealthOverkillFloorsAtZero(t *testing.T) {
	h := NewHealth(30)
	h.ApplyDamage(50)
	if h.CurrentHP() != 0 {
		t.Fatalf("expected 0, got %d", h.CurrentHP())
	}
}

func TestNewHealthDefaultsMax(t *testing.T) {
	h := NewHealth(0)
	if h.MaxHP() != DefaultMaxHealth || h.Fraction() != 1 {
		t.Fatalf("expected default max health, got %d", h.MaxHP())
	}
}
