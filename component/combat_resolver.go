package component

import "github.com/milk9111/streetfighter/common"

// Intersects reports whether the attacker's attack box overlaps the
// defender's hit box. It ignores swing timing; callers decide whether the
// box is live.
func Intersects(attacker, defender *Combatant) bool {
	if attacker == nil || defender == nil {
		return false
	}
	return RectsIntersect(attacker.AttackRect(), defender.HitRect())
}

// RectsIntersect is the inclusive AABB test:
// a.left <= b.right && a.right >= b.left && a.top <= b.bottom && a.bottom >= b.top.
func RectsIntersect(a, b common.Rect) bool {
	return a.Intersects(b)
}
