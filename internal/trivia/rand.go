package trivia

import "math/rand"

// Rand is the randomness source behind quiz question selection. It exists so
// tests can substitute a fixed source; uniformity over [0,n) is the only
// requirement.
type Rand interface {
	Intn(n int) int
}

// systemRand delegates to math/rand's global locked source, which is safe for
// concurrent handlers.
type systemRand struct{}

func (systemRand) Intn(n int) int { return rand.Intn(n) }

// SystemRand returns the default production randomness source.
func SystemRand() Rand { return systemRand{} }
