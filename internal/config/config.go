package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	ConverterAPIKey string

	// Speech synthesis
	TTSBaseURL  string
	TTSLanguage string

	// Segmentation
	MinSegmentLen int

	// Synthesis pacing: one call in flight at a time, a randomized pause
	// between lessons, and a fixed wait between retry attempts.
	SynthMaxAttempts int
	SynthRetryWait   time.Duration
	SynthPauseMin    time.Duration
	SynthPauseMax    time.Duration

	// Upload limits
	MaxUploadBytes int64

	// Job state
	MaxQueueSize int
	JobTTL       time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ConverterAPIKey: os.Getenv("CONVERTER_API_KEY"),

		TTSBaseURL:  os.Getenv("TTS_BASE_URL"),
		TTSLanguage: envOr("TTS_LANGUAGE", "en"),

		MinSegmentLen: envInt("MIN_SEGMENT_LEN", 10),

		SynthMaxAttempts: envInt("SYNTH_MAX_ATTEMPTS", 3),
		SynthRetryWait:   envDuration("SYNTH_RETRY_WAIT", 5*time.Second),
		SynthPauseMin:    envDuration("SYNTH_PAUSE_MIN", 1500*time.Millisecond),
		SynthPauseMax:    envDuration("SYNTH_PAUSE_MAX", 3*time.Second),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MinSegmentLen <= 0 {
		cfg.MinSegmentLen = 10
	}
	if cfg.SynthMaxAttempts <= 0 {
		cfg.SynthMaxAttempts = 3
	}
	if cfg.SynthRetryWait <= 0 {
		cfg.SynthRetryWait = 5 * time.Second
	}
	if cfg.SynthPauseMin <= 0 {
		cfg.SynthPauseMin = 1500 * time.Millisecond
	}
	if cfg.SynthPauseMax < cfg.SynthPauseMin {
		cfg.SynthPauseMax = cfg.SynthPauseMin
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ConverterAPIKey == "" {
		return fmt.Errorf("CONVERTER_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
