package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Arjun231730/text-audio/internal/lesson"
	"github.com/Arjun231730/text-audio/internal/parser"
	"github.com/Arjun231730/text-audio/internal/tts"
)

// Worker processes one conversion job at a time: extract text, segment into
// lessons, compose scripts, then synthesize audio strictly sequentially.
type Worker struct {
	synth tts.Synthesizer
	stats *tts.SynthStats
	log   *slog.Logger

	minSegmentLen int
	pdfFallback   bool

	maxAttempts int
	retryWait   time.Duration
	pauseMin    time.Duration
	pauseMax    time.Duration
}

// WorkerOptions configures segmentation and synthesis pacing.
type WorkerOptions struct {
	MinSegmentLen        int
	PDFFallbackPdftotext bool
	MaxAttempts          int
	RetryWait            time.Duration
	PauseMin             time.Duration
	PauseMax             time.Duration
}

func NewWorker(synth tts.Synthesizer, stats *tts.SynthStats, log *slog.Logger, opts WorkerOptions) *Worker {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	return &Worker{
		synth:         synth,
		stats:         stats,
		log:           log,
		minSegmentLen: opts.MinSegmentLen,
		pdfFallback:   opts.PDFFallbackPdftotext,
		maxAttempts:   opts.MaxAttempts,
		retryWait:     opts.RetryWait,
		pauseMin:      opts.PauseMin,
		pauseMax:      opts.PauseMax,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Extract text.
	job.SetStatus(StatusParsing, "extracting text")
	p, err := parser.ForFile(job.Filename, w.pdfFallback)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting text")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.fileData), job.Filename)
	if err != nil {
		log.Error("text extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting text")
		return
	}
	job.SetDefaultTitle(doc.Title)
	rawText := doc.RawText()
	job.SetRawText(rawText)

	// Phase 2: Segment into lessons. Zero questions is a valid outcome,
	// not a failure; the caller decides how to present it.
	job.SetStatus(StatusSegmenting, "segmenting questions")
	minLen := w.minSegmentLen
	if n := job.MinSegmentLen(); n > 0 {
		minLen = n
	}
	lessons := lesson.Segment(rawText, minLen)
	job.SetTotalLessons(len(lessons))
	log.Info("segmented document", "lessons", len(lessons))

	if len(lessons) == 0 {
		job.SetStatus(StatusCompleted, "no questions found")
		return
	}

	// Phase 3: Compose narration scripts.
	job.SetStatus(StatusComposing, "composing scripts")
	for i := range lessons {
		lessons[i].Script = lesson.ComposeScript(
			lessons[i].Label,
			lessons[i].QuestionAndAnswer,
			lessons[i].Explanation,
		)
	}

	// Phase 4: Synthesize, strictly one lesson at a time and in order.
	// The pause between lessons is rate-limit backpressure, not an
	// implementation accident.
	job.SetStatus(StatusSynthesizing, "synthesizing audio")
	for i, ls := range lessons {
		if i > 0 {
			select {
			case <-time.After(Pause(w.pauseMin, w.pauseMax)):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			job.AddResult(LessonResult{
				Index:  i,
				Label:  ls.Label,
				Script: ls.Script,
				Error:  "canceled before synthesis",
			})
			continue
		}

		audio, err := w.synthesizeLesson(ctx, ls.Script)
		result := LessonResult{
			Index:  i,
			Label:  ls.Label,
			Script: ls.Script,
		}
		if err != nil {
			// One lesson's failure never aborts the batch.
			log.Error("synthesis failed", "label", ls.Label, "error", err)
			result.Error = err.Error()
		} else {
			result.Synthesized = true
			result.audio = audio
			log.Info("lesson synthesized", "label", ls.Label, "audio_bytes", len(audio))
		}
		job.AddResult(result)
	}

	snap := job.Snapshot()
	switch {
	case snap.Progress.Synthesized == 0:
		job.SetStatus(StatusFailed, "done")
	case snap.Progress.Failed > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("conversion finished",
		"synthesized", snap.Progress.Synthesized,
		"failed", snap.Progress.Failed,
	)
}

// synthesizeLesson calls the synthesizer with the fixed retry budget: every
// failure is retried after the same fixed wait until attempts run out.
func (w *Worker) synthesizeLesson(ctx context.Context, script string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		start := time.Now()
		audio, err := w.synth.Synthesize(ctx, script)
		if w.stats != nil {
			w.stats.Record(time.Since(start))
		}
		if err == nil {
			return audio, nil
		}
		lastErr = err

		kind := "fatal"
		if IsTransient(err) {
			kind = "transient"
		}
		w.log.Warn("synthesis attempt failed",
			"attempt", attempt,
			"max_attempts", w.maxAttempts,
			"kind", kind,
			"error", err,
		)

		if attempt < w.maxAttempts {
			select {
			case <-time.After(w.retryWait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", w.maxAttempts, lastErr)
}
