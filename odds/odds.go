// Package odds implements deciban-scaled log-odds sampling, per the
// GLOSSARY's "Odds: deciban-scaled integer log-odds; prob = 1 - 1/(1 +
// 10^(odds/10))". Supplemented from original_source (engine/src/ai.rs,
// action.rs) which uses this conversion for hit/evasion rolls but the
// distilled spec.md only names the convention, not the formula.
package odds

import (
	"math"

	"voxelrogue/rng"
)

// Probability converts deciban odds into a [0,1] probability.
func Probability(decibans int) float64 {
	return 1.0 - 1.0/(1.0+math.Pow(10, float64(decibans)/10.0))
}

// Bernoulli samples a single trial at the given deciban odds.
func Bernoulli(decibans int, src *rng.Source) bool {
	return src.Float64() < Probability(decibans)
}
