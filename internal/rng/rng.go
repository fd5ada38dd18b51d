// Package rng narrows math/rand down to the contract the renderer actually
// needs: uniform [0,1) floats plus bounded and non-negative integer draws.
// The concrete PRNG algorithm is an
// external collaborator (spec.md explicitly treats it as an off-the-shelf
// dependency) — this package only adapts *rand.Rand to the narrow
// interface the sampler and integrator code depend on.
package rng

import "math/rand"

// Source is satisfied by *rand.Rand; code in this module depends on Source,
// never on *rand.Rand directly, so a different PRNG can be substituted.
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63() int64
}

// New wraps a seed into a *rand.Rand, the default Source implementation.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
