package usecase

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness behind the reserve draw, the campaign
// shuffle and creative rotation. It is injectable so tests can pin the
// outcome of each draw.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

func newRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
