package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Arjun231730/text-audio/internal/config"
	"github.com/Arjun231730/text-audio/internal/tts"
)

// Orchestrator manages the conversion pipeline. Jobs queue up, but exactly
// one is processed at a time: the synthesis service tolerates at most one
// in-flight call, so the serialization here is a contract, not a tuning
// knob.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	synth tts.Synthesizer
	stats *tts.SynthStats
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewOrchestrator creates the pipeline.
func NewOrchestrator(cfg config.Config, synth tts.Synthesizer, stats *tts.SynthStats, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		synth: synth,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches the single pipeline worker and the job store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	w := NewWorker(o.synth, o.stats, o.log, WorkerOptions{
		MinSegmentLen:        o.cfg.MinSegmentLen,
		PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext,
		MaxAttempts:          o.cfg.SynthMaxAttempts,
		RetryWait:            o.cfg.SynthRetryWait,
		PauseMin:             o.cfg.SynthPauseMin,
		PauseMax:             o.cfg.SynthPauseMax,
	})

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case job, ok := <-o.queue:
				if !ok {
					return
				}
				w.Process(workerCtx, job)
			}
		}
	}()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Submissions arriving after Stop
// are rejected rather than enqueued.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.stopped {
		o.stopped = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	// The stopped check and the send share the lock so Stop cannot close
	// the queue between them.
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is shutting down")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the synthesis latency window.
func (o *Orchestrator) Stats() *tts.SynthStats {
	return o.stats
}
