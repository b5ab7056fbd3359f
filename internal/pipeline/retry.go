package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Arjun231730/text-audio/internal/tts"
)

// IsTransient reports whether a synthesis error looks like rate limiting or
// another transient upstream condition. The retry policy does not actually
// distinguish: every synthesis failure gets the same fixed attempt budget.
// The classification only feeds logging and per-lesson error messages.
func IsTransient(err error) bool {
	var retryErr *tts.RetryableError
	return errors.As(err, &retryErr)
}

// Pause returns a randomized delay in [min, max], inserted between
// successive synthesis calls to stay under the TTS service's rate limits.
func Pause(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min) + 1))
}
