package retry

import (
	"math"
	"math/rand"
	"time"
)

// Jitter bounds for the default backoff computation. The multiplier is
// drawn uniformly from [jitterMin, jitterMax] to spread out retries from
// concurrent callers and avoid synchronized retry storms.
const (
	jitterMin = 0.85
	jitterMax = 1.15
)

// Backoff computes the delay before the given retry attempt (1-based):
//
//	delay = InitialDelay * BackoffFactor^(attempt-1)
//
// multiplied by a jitter factor in [0.85, 1.15] and clamped to MaxDelay.
// If the policy carries a DelayFunc, it replaces this computation
// entirely (the clamp still applies).
func Backoff(p Policy, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var delay float64
	if p.DelayFunc != nil {
		delay = float64(p.DelayFunc(attempt))
	} else {
		factor := p.BackoffFactor
		if factor < 1 {
			factor = 1
		}
		delay = float64(p.InitialDelay) * math.Pow(factor, float64(attempt-1))
		delay *= jitterMin + rand.Float64()*(jitterMax-jitterMin)
	}

	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}
