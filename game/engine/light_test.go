package engine

import (
	"math"
	"testing"
)

func createTestLight() LightConfig {
	return LightConfig{
		Position:      600,
		GreenDuration: 4,
		RedDuration:   2,
		PhaseOffset:   0,
	}
}

func TestCycleDuration(t *testing.T) {
	light := createTestLight()
	// red 2 + yellow 1 + green 4 + blinking 1.5
	expected := 8.5
	if got := light.CycleDuration(); got != expected {
		t.Errorf("Expected cycle duration %v, got %v", expected, got)
	}
}

func TestPhaseAt_Boundaries(t *testing.T) {
	light := createTestLight()

	// Intervals are half-open: exactly at a boundary the later phase wins
	cases := []struct {
		time     float64
		expected Phase
	}{
		{0, PhaseRed},
		{1.999, PhaseRed},
		{2, PhaseYellowPreGreen},
		{2.5, PhaseYellowPreGreen},
		{3, PhaseGreen},
		{6.999, PhaseGreen},
		{7, PhaseBlinkingYellow},
		{8.499, PhaseBlinkingYellow},
		{8.5, PhaseRed},
	}

	for _, tc := range cases {
		if got := PhaseAt(light, tc.time); got != tc.expected {
			t.Errorf("PhaseAt(%v): expected %s, got %s", tc.time, tc.expected, got)
		}
	}
}

func TestPhaseAt_Partition(t *testing.T) {
	light := createTestLight()
	cycle := light.CycleDuration()

	// Walking the whole cycle must visit the four phases in order, each for
	// exactly its configured duration
	durations := map[Phase]float64{}
	step := 0.001
	for x := 0.0; x < cycle; x += step {
		durations[PhaseAt(light, x)] += step
	}

	expected := map[Phase]float64{
		PhaseRed:            light.RedDuration,
		PhaseYellowPreGreen: YellowBeforeGreen,
		PhaseGreen:          light.GreenDuration,
		PhaseBlinkingYellow: YellowAfterGreen,
	}
	for phase, want := range expected {
		if math.Abs(durations[phase]-want) > 0.01 {
			t.Errorf("Phase %s covers %v of the cycle, expected %v", phase, durations[phase], want)
		}
	}
}

func TestPhaseAt_Periodicity(t *testing.T) {
	light := createTestLight()
	light.PhaseOffset = 1.25
	cycle := light.CycleDuration()

	for _, base := range []float64{0, 0.5, 2.0, 3.3, 7.1, 8.4} {
		want := PhaseAt(light, base)
		for _, k := range []float64{1, 2, 5, 100} {
			if got := PhaseAt(light, base+k*cycle); got != want {
				t.Errorf("PhaseAt(%v + %v cycles): expected %s, got %s", base, k, want, got)
			}
		}
	}
}

func TestPhaseAt_NegativeTimeWraps(t *testing.T) {
	light := createTestLight()

	// floorMod keeps the result in [0, cycle) for negative inputs: -0.5 wraps
	// to 8.0, which is blinking yellow
	if got := PhaseAt(light, -0.5); got != PhaseBlinkingYellow {
		t.Errorf("Expected blinking yellow at t=-0.5, got %s", got)
	}
	// -5.5 wraps to 3.0, the first green instant
	if got := PhaseAt(light, -5.5); got != PhaseGreen {
		t.Errorf("Expected green at t=-5.5, got %s", got)
	}
}

func TestPhaseAt_Offset(t *testing.T) {
	light := createTestLight()
	light.PhaseOffset = 3

	// Offset shifts the cycle: t=0 behaves like t=3, the start of green
	if got := PhaseAt(light, 0); got != PhaseGreen {
		t.Errorf("Expected green at t=0 with offset 3, got %s", got)
	}
}

func TestTimeUntilNextPhase(t *testing.T) {
	light := createTestLight()

	cases := []struct {
		time     float64
		expected float64
	}{
		{0, 2},     // full red remains
		{1.5, 0.5}, // half a second of red left
		{2, 1},     // full pre-green yellow
		{3, 4},     // full green
		{5, 2},     // two seconds of green left
		{7, 1.5},   // full blinking yellow
		{8, 0.5},
	}

	for _, tc := range cases {
		if got := TimeUntilNextPhase(light, tc.time); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("TimeUntilNextPhase(%v): expected %v, got %v", tc.time, tc.expected, got)
		}
	}
}

func TestCurrentPhaseDuration(t *testing.T) {
	light := createTestLight()

	cases := []struct {
		time     float64
		expected float64
	}{
		{0.5, 2},   // red
		{2.5, 1},   // pre-green yellow
		{4, 4},     // green
		{7.5, 1.5}, // blinking yellow
	}

	for _, tc := range cases {
		if got := CurrentPhaseDuration(light, tc.time); got != tc.expected {
			t.Errorf("CurrentPhaseDuration(%v): expected %v, got %v", tc.time, tc.expected, got)
		}
	}
}

func TestPhasePassable(t *testing.T) {
	passable := []Phase{PhaseGreen, PhaseYellowPreGreen, PhaseBlinkingYellow}
	for _, p := range passable {
		if !p.Passable() {
			t.Errorf("Expected phase %s to be passable", p)
		}
	}
	if PhaseRed.Passable() {
		t.Error("Expected red to not be passable")
	}
}

func TestFloorMod(t *testing.T) {
	cases := []struct {
		x, m, expected float64
	}{
		{5, 8.5, 5},
		{8.5, 8.5, 0},
		{10, 8.5, 1.5},
		{-0.5, 8.5, 8},
		{-17.5, 8.5, 8},
	}
	for _, tc := range cases {
		if got := floorMod(tc.x, tc.m); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("floorMod(%v, %v): expected %v, got %v", tc.x, tc.m, tc.expected, got)
		}
	}
}
