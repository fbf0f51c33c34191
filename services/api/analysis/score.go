package analysis

import "math"

// Round rounds v to places decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// PenaltyScore starts from max, subtracts every penalty and clamps to [0, max].
func PenaltyScore(max float64, penalties ...float64) float64 {
	score := max
	for _, p := range penalties {
		score -= p
	}
	return Clamp(score, 0, max)
}

// Grade is a letter band for a 0-100 score.
type Grade struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{90, Grade{"A", "Excellent"}},
	{75, Grade{"B", "Good"}},
	{60, Grade{"C", "Acceptable"}},
	{40, Grade{"D", "Poor"}},
}

// GradeFor bands a 0-100 score: >=90 A, >=75 B, >=60 C, >=40 D, else F.
func GradeFor(score float64) Grade {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return Grade{"F", "Unsafe"}
}
