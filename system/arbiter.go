package system

// Arbitrate decides the outcome from both fighters' health. timeUp is true
// when the countdown reached 0. While both fighters are alive and time
// remains the match stays ongoing.
func Arbitrate(playerHP, enemyHP int, timeUp bool) Outcome {
	playerDown := playerHP <= 0
	enemyDown := enemyHP <= 0
	switch {
	case playerDown && enemyDown:
		return OutcomeDraw
	case enemyDown:
		return OutcomePlayerWins
	case playerDown:
		return OutcomeEnemyWins
	case !timeUp:
		return OutcomeOngoing
	case playerHP > enemyHP:
		return OutcomePlayerWins
	case enemyHP > playerHP:
		return OutcomeEnemyWins
	default:
		return OutcomeDraw
	}
}
