package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "extracting text"},
		{StatusSegmenting, "segmenting questions"},
		{StatusComposing, "composing scripts"},
		{StatusSynthesizing, "synthesizing audio"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddResultUpdatesProgress(t *testing.T) {
	job := &Job{ID: "results-test", UpdatedAt: time.Now()}
	job.SetTotalLessons(3)

	job.AddResult(LessonResult{Index: 0, Label: "Q1", Synthesized: true, audio: []byte("a")})
	job.AddResult(LessonResult{Index: 1, Label: "Q2", Error: "synthesis exhausted"})
	job.AddResult(LessonResult{Index: 2, Label: "Q3", Synthesized: true, audio: []byte("c")})

	snap := job.Snapshot()
	if snap.Progress.TotalLessons != 3 {
		t.Errorf("expected 3 total lessons, got %d", snap.Progress.TotalLessons)
	}
	if snap.Progress.LessonsDone != 3 {
		t.Errorf("expected 3 lessons done, got %d", snap.Progress.LessonsDone)
	}
	if snap.Progress.Synthesized != 2 {
		t.Errorf("expected 2 synthesized, got %d", snap.Progress.Synthesized)
	}
	if snap.Progress.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", snap.Progress.Failed)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "Q2: synthesis exhausted" {
		t.Errorf("expected labeled error for Q2, got %v", snap.Progress.Errors)
	}
}

func TestJob_ResultsPreserveOrder(t *testing.T) {
	job := &Job{ID: "order-test", UpdatedAt: time.Now()}
	labels := []string{"Q1", "Q2", "Q3", "Q4"}
	for i, l := range labels {
		job.AddResult(LessonResult{Index: i, Label: l, Synthesized: true})
	}

	results := job.Results()
	if len(results) != len(labels) {
		t.Fatalf("expected %d results, got %d", len(labels), len(results))
	}
	for i, r := range results {
		if r.Label != labels[i] {
			t.Errorf("result %d: expected label %q, got %q", i, labels[i], r.Label)
		}
	}
}

func TestJob_LessonAudio(t *testing.T) {
	job := &Job{ID: "audio-test", UpdatedAt: time.Now()}
	job.AddResult(LessonResult{Index: 0, Label: "Q1", Synthesized: true, audio: []byte("mp3")})
	job.AddResult(LessonResult{Index: 1, Label: "Q2", Error: "failed"})

	if audio, ok := job.LessonAudio(0); !ok || string(audio) != "mp3" {
		t.Errorf("expected audio for lesson 0, got ok=%v audio=%q", ok, audio)
	}
	if _, ok := job.LessonAudio(1); ok {
		t.Error("expected no audio for failed lesson")
	}
	if _, ok := job.LessonAudio(2); ok {
		t.Error("expected no audio for out-of-range index")
	}
	if _, ok := job.LessonAudio(-1); ok {
		t.Error("expected no audio for negative index")
	}
}

func TestJob_SetRawTextReleasesFileData(t *testing.T) {
	job := &Job{ID: "raw-test", UpdatedAt: time.Now()}
	job.SetFileData([]byte("uploaded bytes"))
	job.SetRawText("Q1. extracted text")

	if job.RawText() != "Q1. extracted text" {
		t.Errorf("expected raw text to be stored, got %q", job.RawText())
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released after extraction")
	}
}

func TestJob_SetDefaultTitle(t *testing.T) {
	job := &Job{ID: "title-test", UpdatedAt: time.Now()}
	job.SetDefaultTitle("from-document")
	if job.Snapshot().Title != "from-document" {
		t.Errorf("expected default title applied, got %q", job.Snapshot().Title)
	}

	job2 := &Job{ID: "title-test-2", Title: "user-supplied", UpdatedAt: time.Now()}
	job2.SetDefaultTitle("from-document")
	if job2.Snapshot().Title != "user-supplied" {
		t.Errorf("expected user title to win, got %q", job2.Snapshot().Title)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}
