package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeight(t *testing.T) {
	testCases := []struct {
		name string
		a, b Position
		want int64
	}{
		{"coincident", Pos(10, 10), Pos(10, 10), 0},
		{"below one unit", Pos(0, 0), Pos(49.9, 0), 0},
		{"exactly one unit", Pos(0, 0), Pos(50, 0), 1},
		{"horizontal", Pos(0, 0), Pos(100, 0), 2},
		{"vertical", Pos(0, 0), Pos(0, 100), 2},
		{"diagonal floors", Pos(0, 0), Pos(100, 100), 2}, // 141.42 / 50
		{"pythagorean", Pos(0, 0), Pos(300, 400), 10},
		{"negative coordinates", Pos(-150, 0), Pos(0, 0), 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Weight(tc.a, tc.b, DefaultScale))
		})
	}
}

func TestWeight_Symmetric(t *testing.T) {
	points := []Position{
		Pos(0, 0), Pos(13.5, 77), Pos(-40, 220), Pos(999, -3), Pos(51, 51),
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, Weight(a, b, DefaultScale), Weight(b, a, DefaultScale), "%v %v", a, b)
		}
	}
}

func TestWeight_InvalidScaleFallsBack(t *testing.T) {
	a, b := Pos(0, 0), Pos(100, 0)
	assert.Equal(t, int64(2), Weight(a, b, 0))
	assert.Equal(t, int64(2), Weight(a, b, -5))
	assert.Equal(t, int64(2), Weight(a, b, math.NaN()))
}

func TestWeightRule(t *testing.T) {
	rule := NewWeightRule(10)
	assert.Equal(t, int64(10), rule.Weight(Pos(0, 0), Pos(100, 0)))

	assert.Equal(t, DefaultScale, NewWeightRule(0).Scale)
}

func TestPosition_Finite(t *testing.T) {
	assert.True(t, Pos(1, -1).Finite())
	assert.False(t, Pos(math.NaN(), 0).Finite())
	assert.False(t, Pos(0, math.Inf(1)).Finite())
	assert.False(t, Pos(math.Inf(-1), 0).Finite())
}
