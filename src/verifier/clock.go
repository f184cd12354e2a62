// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import "time"

// Clock supplies the reference time for temporal comparisons.
// It is shared, read-only, and must be safe for concurrent use.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface,
// which keeps fixed-time clocks in tests to a one-liner.
type ClockFunc func() time.Time

// Now returns the function's result.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the operating system clock.
var SystemClock Clock = ClockFunc(time.Now)
