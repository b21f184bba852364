package retry

import "time"

// Policy holds the configuration for retry logic.
// A Policy is a plain value: callers may share one across goroutines,
// each Execute call reads it without mutating it.
type Policy struct {
	// MaxRetries is the number of retry attempts after the initial try.
	// Execute performs at most 1 + MaxRetries invocations.
	MaxRetries int

	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay is the hard ceiling on any computed delay, jitter included.
	MaxDelay time.Duration

	// BackoffFactor is the multiplicative growth per attempt (>= 1).
	BackoffFactor float64

	// RetryableCodes are application error codes treated as transient,
	// in addition to the built-in transient set.
	RetryableCodes []string

	// DelayFunc, when set, overrides the default exponential backoff
	// computation. It receives the 1-based retry attempt number.
	DelayFunc func(attempt int) time.Duration

	// OnRetry, when set, is called before each backoff wait with the
	// 1-based attempt number, the computed delay and the failure that
	// triggered the retry. The executor itself emits no logs or metrics;
	// callers that want them hook in here.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns the default retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
	}
}

// hasCode reports whether code is listed as retryable in the policy.
func (p Policy) hasCode(code string) bool {
	for _, c := range p.RetryableCodes {
		if c == code {
			return true
		}
	}
	return false
}
