package retry

import (
	"math"
	"testing"
	"time"
)

func TestBackoff_ExponentialGrowth(t *testing.T) {
	// With jitter bounded by ±15% and a factor of 2, the lower bound of
	// attempt n+1 always exceeds the upper bound of attempt n.
	p := Policy{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      1 * time.Hour,
		BackoffFactor: 2.0,
	}

	for attempt := 1; attempt <= 6; attempt++ {
		lowNext := float64(p.InitialDelay) * math.Pow(2, float64(attempt)) * jitterMin
		highCur := float64(p.InitialDelay) * math.Pow(2, float64(attempt-1)) * jitterMax
		if lowNext <= highCur {
			t.Fatalf("attempt %d: jittered ranges overlap (%v <= %v)", attempt, lowNext, highCur)
		}

		cur := Backoff(p, attempt)
		next := Backoff(p, attempt+1)
		if next <= cur {
			t.Errorf("Backoff(%d) = %v, not greater than Backoff(%d) = %v", attempt+1, next, attempt, cur)
		}
	}
}

func TestBackoff_CeilingNeverExceeded(t *testing.T) {
	p := Policy{
		InitialDelay:  1 * time.Second,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 3.0,
	}

	for attempt := 1; attempt <= 10; attempt++ {
		for i := 0; i < 1000; i++ {
			if d := Backoff(p, attempt); d > p.MaxDelay {
				t.Fatalf("Backoff(%d) = %v exceeds MaxDelay %v", attempt, d, p.MaxDelay)
			}
		}
	}
}

func TestBackoff_JitterBounds(t *testing.T) {
	p := Policy{
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      1 * time.Hour,
		BackoffFactor: 2.0,
	}

	const attempt = 3
	base := float64(p.InitialDelay) * math.Pow(p.BackoffFactor, attempt-1)
	low := time.Duration(base * jitterMin)
	high := time.Duration(base * jitterMax)

	for i := 0; i < 10000; i++ {
		d := Backoff(p, attempt)
		if d < low || d > high {
			t.Fatalf("Backoff(%d) = %v outside [%v, %v]", attempt, d, low, high)
		}
	}
}

func TestBackoff_CustomDelayFunc(t *testing.T) {
	p := Policy{
		InitialDelay:  1 * time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		DelayFunc: func(attempt int) time.Duration {
			return time.Duration(attempt) * 50 * time.Millisecond
		},
	}

	// DelayFunc replaces the formula and the jitter, clamp still applies.
	if d := Backoff(p, 2); d != 100*time.Millisecond {
		t.Errorf("Backoff(2) = %v, want 100ms", d)
	}
	p.DelayFunc = func(int) time.Duration { return time.Hour }
	if d := Backoff(p, 1); d != p.MaxDelay {
		t.Errorf("Backoff(1) = %v, want clamp to %v", d, p.MaxDelay)
	}
}

func TestBackoff_AttemptFloor(t *testing.T) {
	p := Policy{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      1 * time.Second,
		BackoffFactor: 2.0,
	}

	// Attempt values below 1 behave like the first retry.
	d := Backoff(p, 0)
	if d < time.Duration(float64(p.InitialDelay)*jitterMin) || d > time.Duration(float64(p.InitialDelay)*jitterMax) {
		t.Errorf("Backoff(0) = %v, want first-retry range", d)
	}
}
