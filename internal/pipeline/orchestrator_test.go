package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/Arjun231730/text-audio/internal/config"
)

func testOrchestratorConfig() config.Config {
	return config.Config{
		MinSegmentLen:    10,
		SynthMaxAttempts: 1,
		SynthRetryWait:   time.Millisecond,
		SynthPauseMin:    time.Millisecond,
		SynthPauseMax:    2 * time.Millisecond,
		MaxQueueSize:     2,
		JobTTL:           time.Hour,
	}
}

func TestOrchestrator_SubmitAfterStopRejected(t *testing.T) {
	synth := &fakeSynth{fn: func(call int, script string) ([]byte, error) {
		return []byte("a"), nil
	}}
	o := NewOrchestrator(testOrchestratorConfig(), synth, nil, testLogger())
	o.Start(context.Background())
	o.Stop()

	job := newTestJob("late.txt", twoQuestionDoc)
	if err := o.Submit(job); err == nil {
		t.Fatal("expected submit to fail after stop")
	}

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed status, got %q", snap.Status)
	}
	if snap.Phase != "shutting_down" {
		t.Errorf("expected phase %q, got %q", "shutting_down", snap.Phase)
	}
}

func TestOrchestrator_StopIsIdempotent(t *testing.T) {
	synth := &fakeSynth{fn: func(call int, script string) ([]byte, error) {
		return []byte("a"), nil
	}}
	o := NewOrchestrator(testOrchestratorConfig(), synth, nil, testLogger())
	o.Start(context.Background())
	o.Stop()
	o.Stop()
}

func TestOrchestrator_QueueFullRejectsSubmit(t *testing.T) {
	synth := &fakeSynth{fn: func(call int, script string) ([]byte, error) {
		return []byte("a"), nil
	}}
	// Never started, so nothing drains the queue.
	o := NewOrchestrator(testOrchestratorConfig(), synth, nil, testLogger())

	for i := 0; i < 2; i++ {
		if err := o.Submit(newTestJob("q.txt", twoQuestionDoc)); err != nil {
			t.Fatalf("submit %d: unexpected error: %v", i, err)
		}
	}

	overflow := newTestJob("overflow.txt", twoQuestionDoc)
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected submit to fail when the queue is full")
	}
	if got := overflow.Snapshot().Phase; got != "queue_full" {
		t.Errorf("expected phase %q, got %q", "queue_full", got)
	}
}
