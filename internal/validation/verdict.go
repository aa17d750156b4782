package validation

// Verdict bands shared by the per-platform scorers and the aggregator.
// Lower bounds are inclusive: 80, 60 and 40 map to the higher band.
const (
	VerdictExcellent = "Excellent idea - strong validation"
	VerdictGood      = "Good idea - has potential"
	VerdictMedium    = "Average idea - needs more research"
	VerdictWeak      = "Weak validation - consider pivoting"

	// VerdictNoData is the sentinel for a run where no platform produced a
	// summary. Distinct from a run that scored 0.
	VerdictNoData = "No data - no platforms returned results"
)

// VerdictForScore maps a score in [0,100] to one of the four verdict bands.
func VerdictForScore(score int) string {
	switch {
	case score >= 80:
		return VerdictExcellent
	case score >= 60:
		return VerdictGood
	case score >= 40:
		return VerdictMedium
	default:
		return VerdictWeak
	}
}
