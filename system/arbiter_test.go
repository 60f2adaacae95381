package system

import "testing"

func TestArbitrate(t *testing.T) {
	cases := []struct {
		name     string
		playerHP int
		enemyHP  int
		timeUp   bool
		want     Outcome
	}{
		{"both_alive_running", 100, 100, false, OutcomeOngoing},
		{"enemy_down", 40, 0, false, OutcomePlayerWins},
		{"player_down", 0, 60, false, OutcomeEnemyWins},
		{"double_ko", 0, 0, false, OutcomeDraw},
		{"ko_on_last_second", 0, 100, true, OutcomeEnemyWins},
		{"time_up_enemy_ahead", 80, 100, true, OutcomeEnemyWins},
		{"time_up_player_ahead", 100, 20, true, OutcomePlayerWins},
		{"time_up_level", 100, 100, true, OutcomeDraw},
		{"negative_counts_as_down", -10, 30, false, OutcomeEnemyWins},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Arbitrate(c.playerHP, c.enemyHP, c.timeUp); got != c.want {
				t.Fatalf("Arbitrate(%d, %d, %v) = %s, want %s", c.playerHP, c.enemyHP, c.timeUp, got, c.want)
			}
		})
	}
}

func TestOutcomeText(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeOngoing:    "ongoing",
		OutcomePlayerWins: "playerWins",
		OutcomeEnemyWins:  "enemyWins",
		OutcomeDraw:       "draw",
	} {
		b, err := o.MarshalText()
		if err != nil || string(b) != want {
			t.Fatalf("MarshalText(%d) = %q, %v; want %q", o, b, err, want)
		}
	}
}
