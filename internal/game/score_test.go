package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		count   int
		outcome Outcome
		want    int
	}{
		{"classic first try", ModeClassic, 1, OutcomeIdentified, 100},
		{"classic second try", ModeClassic, 2, OutcomeIdentified, 90},
		{"classic floor", ModeClassic, 11, OutcomeIdentified, 10},
		{"classic past floor", ModeClassic, 40, OutcomeIdentified, 10},
		{"advanced first try", ModeAdvanced, 1, OutcomeIdentified, 200},
		{"advanced third try", ModeAdvanced, 3, OutcomeIdentified, 180},
		{"advanced floor", ModeAdvanced, 25, OutcomeIdentified, 10},
		{"oracle zero", ModeOracle, 0, OutcomeConfirmed, 10},
		{"oracle five", ModeOracle, 5, OutcomeConfirmed, 60},
		{"oracle cap", ModeOracle, 9, OutcomeConfirmed, 100},
		{"oracle past cap", ModeOracle, 30, OutcomeConfirmed, 100},
		{"oracle rejected", ModeOracle, 1, OutcomeRejected, 100},
		{"oracle rejected many", ModeOracle, 17, OutcomeRejected, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.mode, tt.count, tt.outcome))
		})
	}
}

func TestScoreNonIncreasing(t *testing.T) {
	for _, m := range []Mode{ModeClassic, ModeAdvanced} {
		prev := Score(m, 1, OutcomeIdentified)
		for n := 2; n < 40; n++ {
			cur := Score(m, n, OutcomeIdentified)
			assert.LessOrEqual(t, cur, prev)
			assert.GreaterOrEqual(t, cur, 10)
			prev = cur
		}
	}
}
