package engine

// PhaseAt returns the phase of a light at the given elapsed time. The cycle
// runs red -> yellow -> green -> blinking yellow and repeats. Intervals are
// half-open, so exactly at a boundary instant the later phase wins.
func PhaseAt(c LightConfig, time float64) Phase {
	t := floorMod(time+c.PhaseOffset, c.CycleDuration())
	switch {
	case t < c.RedDuration:
		return PhaseRed
	case t < c.RedDuration+YellowBeforeGreen:
		return PhaseYellowPreGreen
	case t < c.RedDuration+YellowBeforeGreen+c.GreenDuration:
		return PhaseGreen
	default:
		return PhaseBlinkingYellow
	}
}

// TimeUntilNextPhase returns the remaining time in the current phase, used by
// the UI for the countdown bar.
func TimeUntilNextPhase(c LightConfig, time float64) float64 {
	t := floorMod(time+c.PhaseOffset, c.CycleDuration())
	switch {
	case t < c.RedDuration:
		return c.RedDuration - t
	case t < c.RedDuration+YellowBeforeGreen:
		return c.RedDuration + YellowBeforeGreen - t
	case t < c.RedDuration+YellowBeforeGreen+c.GreenDuration:
		return c.RedDuration + YellowBeforeGreen + c.GreenDuration - t
	default:
		return c.CycleDuration() - t
	}
}

// CurrentPhaseDuration returns the total duration of the phase active at the
// given time, used to normalize the countdown bar.
func CurrentPhaseDuration(c LightConfig, time float64) float64 {
	switch PhaseAt(c, time) {
	case PhaseRed:
		return c.RedDuration
	case PhaseYellowPreGreen:
		return YellowBeforeGreen
	case PhaseGreen:
		return c.GreenDuration
	default:
		return YellowAfterGreen
	}
}
