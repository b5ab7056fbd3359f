package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultBaseURL = "https://translate.google.com/translate_tts"
	defaultLang    = "en"

	// The endpoint rejects long inputs, so scripts are fetched in parts
	// of at most this many runes, split at word boundaries.
	maxPartRunes = 200

	maxAudioBytes = 8 << 20 // per-part response cap
)

// GoogleClient synthesizes speech through the Google Translate TTS
// endpoint, returning MP3 bytes. The voice is implied by the configured
// language; there is no further voice selection.
type GoogleClient struct {
	baseURL    string
	lang       string
	httpClient *http.Client
}

// NewGoogleClient creates a client. Empty baseURL and lang select the
// public endpoint and English.
func NewGoogleClient(baseURL, lang string) *GoogleClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if lang == "" {
		lang = defaultLang
	}
	return &GoogleClient{
		baseURL: baseURL,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Synthesize fetches audio for the script, one part at a time, and returns
// the concatenated MP3 bytes. A failed part fails the whole call.
func (c *GoogleClient) Synthesize(ctx context.Context, script string) ([]byte, error) {
	parts := splitScript(script, maxPartRunes)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty script")
	}

	var audio []byte
	for i, part := range parts {
		b, err := c.fetchPart(ctx, part, i, len(parts))
		if err != nil {
			return nil, fmt.Errorf("part %d/%d: %w", i+1, len(parts), err)
		}
		audio = append(audio, b...)
	}
	return audio, nil
}

func (c *GoogleClient) fetchPart(ctx context.Context, text string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.lang)
	q.Set("q", text)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate tts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate tts status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// splitScript breaks a script into parts of at most max runes at word
// boundaries. A single word longer than max becomes its own oversize part.
func splitScript(s string, max int) []string {
	var parts []string
	var cur strings.Builder
	curLen := 0

	for _, word := range strings.Fields(s) {
		wl := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+wl > max {
			parts = append(parts, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	if curLen > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// Close releases idle connections.
func (c *GoogleClient) Close() {
	c.httpClient.CloseIdleConnections()
}
