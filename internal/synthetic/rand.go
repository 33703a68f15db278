// Package synthetic fabricates presentation data for the UI: quality metrics,
// source attributions and ingestion summaries. Nothing here is measured.
package synthetic

import "math/rand/v2"

// Rand is the random source used by the synthesizers. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// uniform returns a value in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// intBetween returns an integer in [lo, hi).
func intBetween(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}
