package game

const (
	classicBase  = 100
	advancedBase = 200
	attemptCost  = 10
	minScore     = 10

	oracleBase    = 10
	oraclePerStep = 10
	oracleMax     = 100
)

// Score maps a finished session to points.
//
// Classic/Advanced lose 10 points per extra attempt with a floor of 10; the
// outcome is ignored. In Oracle mode the player is rewarded for making the
// engine work: 10 per question (capped at 100) when the engine was right,
// and a flat 100 when it was wrong.
func Score(mode Mode, count int, outcome Outcome) int {
	switch mode {
	case ModeOracle:
		if outcome == OutcomeRejected {
			return oracleMax
		}
		return min(oracleBase+count*oraclePerStep, oracleMax)
	case ModeAdvanced:
		return max(advancedBase-(count-1)*attemptCost, minScore)
	default:
		return max(classicBase-(count-1)*attemptCost, minScore)
	}
}
