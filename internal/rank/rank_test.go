package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var knowledge = []int{0, 34, 82, 126, 192}
var coop = []int{0, 5, 12, 22, 35, 52, 73, 98, 128, 165}

func TestLevel(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []int
		value      int
		expected   int
	}{
		{"zero is first level", knowledge, 0, 0},
		{"just below second", knowledge, 33, 0},
		{"exactly second", knowledge, 34, 1},
		{"middle", knowledge, 100, 2},
		{"exactly max", knowledge, 192, 4},
		{"far past max", knowledge, 10_000, 4},
		{"negative value", knowledge, -5, 0},
		{"empty table", nil, 10, 0},
		{"coop 4 points", coop, 4, 0},
		{"coop 5 points", coop, 5, 1},
		{"coop 6 points", coop, 6, 1},
		{"coop max", coop, 165, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Level(tt.thresholds, tt.value))
		})
	}
}

func TestCompute(t *testing.T) {
	p := Compute(knowledge, 17)
	assert.InDelta(t, 50.0, p.Percent, 0.0001)
	assert.Equal(t, 1, p.Next)
	assert.Equal(t, 17, p.Remaining)
	assert.Equal(t, 0, p.Level)
	assert.False(t, p.AtMax())

	top := Compute(knowledge, 250)
	assert.Equal(t, 100.0, top.Percent)
	assert.Equal(t, 0, top.Remaining)
	assert.Equal(t, 4, top.Level)
	assert.True(t, top.AtMax())
}

func TestCompute_ClampsCorruptedValue(t *testing.T) {
	// A thresholds table that does not start at 0 puts small values below
	// the current threshold.
	p := Compute([]int{10, 20, 30}, 3)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, 17, p.Remaining)
}

func TestCompute_FlatSpan(t *testing.T) {
	p := Compute([]int{0, 0, 10}, 0)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, 10, p.Remaining)
}

func thresholdsGen() *rapid.Generator[[]int] {
	return rapid.Custom(func(t *rapid.T) []int {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		out := make([]int, n)
		for i := 1; i < n; i++ {
			out[i] = out[i-1] + rapid.IntRange(0, 60).Draw(t, "gap")
		}
		return out
	})
}

// TestLevelRangeAndMonotonicProperty: for any table starting at 0 the level is
// a valid index and never decreases as the value grows.
func TestLevelRangeAndMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		thresholds := thresholdsGen().Draw(t, "thresholds")
		a := rapid.IntRange(0, 1000).Draw(t, "a")
		b := rapid.IntRange(a, 1000).Draw(t, "b")

		la := Level(thresholds, a)
		lb := Level(thresholds, b)

		if la < 0 || la >= len(thresholds) {
			t.Fatalf("level %d out of range for %v", la, thresholds)
		}
		if lb < la {
			t.Fatalf("level decreased: value %d -> %d, level %d -> %d", a, b, la, lb)
		}
		if thresholds[la] > a {
			t.Fatalf("threshold %d exceeds value %d", thresholds[la], a)
		}
	})
}

// TestProgressBoundsProperty: percent stays within [0,100] and remaining is
// never negative.
func TestProgressBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		thresholds := thresholdsGen().Draw(t, "thresholds")
		value := rapid.IntRange(-50, 1000).Draw(t, "value")

		p := Compute(thresholds, value)
		if p.Percent < 0 || p.Percent > 100 {
			t.Fatalf("percent %f out of bounds", p.Percent)
		}
		if p.Remaining < 0 {
			t.Fatalf("negative remaining %d", p.Remaining)
		}
		if p.AtMax() && (p.Percent != 100 || p.Remaining != 0) {
			t.Fatalf("max level must report 100%% and 0 remaining, got %+v", p)
		}
	})
}
