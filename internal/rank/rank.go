// Package rank computes discrete levels and progress from ordered thresholds.
package rank

// Level returns the largest index i such that value >= thresholds[i].
// It returns 0 when value is below every threshold or thresholds is empty.
func Level(thresholds []int, value int) int {
	for i := len(thresholds) - 1; i >= 0; i-- {
		if value >= thresholds[i] {
			return i
		}
	}
	return 0
}

// Progress describes how far a value is toward the next level.
type Progress struct {
	// Percent is in [0, 100].
	Percent float64
	// Next is the index of the next level, or -1 at the max level.
	Next int
	// Remaining is the distance to the next threshold, 0 at the max level.
	Remaining int
	// Level is the current level, zero-indexed.
	Level int
}

// AtMax reports whether no higher level exists.
func (p Progress) AtMax() bool {
	return p.Next < 0
}

// Compute interpolates value linearly between the current and next threshold.
// The percentage is clamped to [0, 100] so corrupted values below the current
// threshold never produce a negative bar.
func Compute(thresholds []int, value int) Progress {
	level := Level(thresholds, value)
	if level >= len(thresholds)-1 {
		return Progress{Percent: 100, Next: -1, Remaining: 0, Level: level}
	}

	current := thresholds[level]
	next := thresholds[level+1]

	percent := 100.0
	if span := next - current; span > 0 {
		percent = float64(value-current) / float64(span) * 100
	}

	remaining := next - value
	if remaining < 0 {
		remaining = 0
	}

	return Progress{
		Percent:   clamp(percent, 0, 100),
		Next:      level + 1,
		Remaining: remaining,
		Level:     level,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
