// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"fmt"
	"time"
)

// TimestampLayout is the required ISO-8601 UTC form of the request timestamp.
const TimestampLayout = "2006-01-02T15:04:05Z"

// MaxTimestampSkewSeconds bounds the replay window: the claimed request time
// may differ from the reference time by at most this many whole seconds in
// either direction, inclusive.
const MaxTimestampSkewSeconds = 150

// ValidateTimestamp parses the claimed request timestamp and bounds it
// against now. The skew is computed in whole seconds, so a claimed time
// exactly MaxTimestampSkewSeconds away from now is still accepted.
func ValidateTimestamp(claimed string, now time.Time) error {
	ts, err := time.Parse(TimestampLayout, claimed)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimestampFormat, claimed)
	}

	skew := ts.Unix() - now.Unix()
	if skew < 0 {
		skew = -skew
	}

	if skew > MaxTimestampSkewSeconds {
		return fmt.Errorf("%w: claimed %s differs from reference %s by %ds",
			ErrTimestampOutOfRange, ts.UTC().Format(TimestampLayout), now.UTC().Format(TimestampLayout), skew)
	}

	return nil
}
