package sched

import (
	"time"

	"golang.org/x/exp/rand"
)

// ResetProbability is the chance that a task exhausting its MLFQ quantum is
// sent back to level 0 instead of being demoted.
const ResetProbability = 0.2

// Rand is the random source MLFQ draws its reset-or-demote decision from.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewSource(seed))
}

// TimeSeed picks a seed from the wall clock for runs that did not ask for one.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
