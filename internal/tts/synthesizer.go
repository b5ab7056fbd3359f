// Package tts provides the speech synthesis adapter: one narration script
// in, one audio byte stream out.
package tts

import (
	"context"
	"fmt"
)

// Synthesizer converts a narration script into audio bytes. Implementations
// may fail transiently (rate limiting) or permanently; callers apply the
// retry policy.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// RetryableError indicates a transient synthesis failure, typically rate
// limiting or a server-side error at the TTS endpoint.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable tts error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
