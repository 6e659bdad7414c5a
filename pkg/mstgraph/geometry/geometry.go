// Package geometry holds canvas positions and the rule that turns the distance
// between two positions into an integer edge weight.
package geometry

import (
	"fmt"
	"math"
)

// DefaultScale is the number of distance units per weight unit.
const DefaultScale = 50.0

// Position is a point on the editor canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Finite reports whether both coordinates are finite numbers.
func (p Position) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the straight-line distance between a and b.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Weight returns floor(Distance(a, b) / scale).
// A non-positive scale falls back to DefaultScale.
func Weight(a, b Position, scale float64) int64 {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = DefaultScale
	}
	return int64(math.Floor(Distance(a, b) / scale))
}

// WeightRule binds a fixed scale so callers don't thread it around.
type WeightRule struct {
	Scale float64
}

// NewWeightRule returns a rule for scale, or DefaultScale when scale <= 0.
func NewWeightRule(scale float64) WeightRule {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = DefaultScale
	}
	return WeightRule{Scale: scale}
}

// Weight applies the rule to a pair of positions.
func (r WeightRule) Weight(a, b Position) int64 {
	return Weight(a, b, r.Scale)
}
