package worker

import (
	"math/rand"
	"time"
)

const (
	backoffBase = 2 * time.Second
	backoffCap  = 5 * time.Minute
)

// ExponentialBackoff returns the delay before retry number attempt
// (0-based): base doubled per attempt, capped, plus up to 250ms of
// jitter so parallel workers don't retry in lockstep.
func ExponentialBackoff(attempt int) time.Duration {
	delay := backoffBase

	for i := 0; i < attempt && delay < backoffCap; i++ {
		delay *= 2
	}

	if delay > backoffCap {
		delay = backoffCap
	}

	return delay + time.Duration(rand.Intn(250))*time.Millisecond
}
