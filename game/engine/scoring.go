package engine

import "math"

// Star rating thresholds applied to the distance-normalized speed change
const (
	threeStarLimit = 20.0
	twoStarLimit   = 50.0
)

// StarsFor converts the accumulated speed change of a finished attempt into a
// 1-3 star rating. The change is normalized per 100 world units of level
// distance so longer levels, which accumulate more speed change simply from
// more driving time, are not penalized relative to short ones.
func StarsFor(speedChange, levelDistance float64) int {
	normalized := speedChange / (levelDistance / 100)
	switch {
	case normalized < threeStarLimit:
		return 3
	case normalized < twoStarLimit:
		return 2
	default:
		return 1
	}
}

// RunSummary aggregates a completed run across all levels
type RunSummary struct {
	TotalTime    float64       `json:"total_time"`
	AverageStars float64       `json:"average_stars"` // rounded to one decimal for display
	StarGlyphs   int           `json:"star_glyphs"`   // nearest whole star for glyph rendering
	Levels       []LevelResult `json:"levels"`
}

// SummarizeRun totals the per-level times and averages the stars. The average
/// is rounded two ways for two consumers: one decimal for the textual display
// and to the nearest integer for the star glyphs.
func SummarizeRun(run *RunState) *RunSummary {
	summary := &RunSummary{
		Levels: run.Completed,
	}
	if len(run.Completed) == 0 {
		return summary
	}

	totalStars := 0
	for _, r := range run.Completed {
		summary.TotalTime += r.FinishTime
		totalStars += r.Stars
	}
	mean := float64(totalStars) / float64(len(run.Completed))
	summary.AverageStars = math.Round(mean*10) / 10
	summary.StarGlyphs = int(math.Round(mean))
	return summary
}
