// Package util holds the seedable rng constructor every simulation
// threads its rolls through. One stream per fight keeps a fixed seed
// reproducing identical tick-by-tick outcomes.
package util

import "math/rand"

// New returns a rand.Rand seeded deterministically. A zero seed is mapped
// to 1 so "unset" never means "random".
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
