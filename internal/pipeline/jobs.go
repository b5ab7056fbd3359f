package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusParsing      JobStatus = "parsing"
	StatusSegmenting   JobStatus = "segmenting"
	StatusComposing    JobStatus = "composing"
	StatusSynthesizing JobStatus = "synthesizing"
	StatusCompleted    JobStatus = "completed"
	StatusPartial      JobStatus = "partial"
	StatusFailed       JobStatus = "failed"
)

// LessonResult is one lesson's outcome as handed to the presentation layer:
// the composed script plus either audio bytes or an error string. A failed
// lesson never fails the batch.
type LessonResult struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Script      string `json:"script"`
	Synthesized bool   `json:"synthesized"`
	Error       string `json:"error,omitempty"`

	audio []byte
}

// Audio returns the synthesized bytes, nil if synthesis failed.
func (r LessonResult) Audio() []byte {
	return r.audio
}

// Job tracks the state of a single document conversion. Results live only
// as long as the job does; nothing is persisted across sessions.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData      []byte
	rawText       string
	results       []LessonResult
	errors        []string
	minSegmentLen int
}

// Progress tracks per-lesson processing progress.
type Progress struct {
	TotalLessons int      `json:"total_lessons"`
	LessonsDone  int      `json:"lessons_done"`
	Synthesized  int      `json:"synthesized"`
	Failed       int      `json:"failed"`
	Errors       []string `json:"errors"`
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a job-level error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw uploaded bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw uploaded bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetRawText stores the extracted document text for later preview. The
// uploaded bytes are released at the same time; only the text is needed
// from here on.
func (j *Job) SetRawText(text string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.rawText = text
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// RawText returns the extracted document text.
func (j *Job) RawText() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rawText
}

// SetDefaultTitle fills in the title from the parsed document when the
// upload did not carry one.
func (j *Job) SetDefaultTitle(title string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Title == "" {
		j.Title = title
	}
}

// SetMinSegmentLen overrides the service-wide minimum segment length for
// this job. Zero means use the default.
func (j *Job) SetMinSegmentLen(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.minSegmentLen = n
}

// MinSegmentLen returns the per-job minimum segment length override.
func (j *Job) MinSegmentLen() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.minSegmentLen
}

// SetTotalLessons records how many lessons segmentation produced.
func (j *Job) SetTotalLessons(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalLessons = n
	j.UpdatedAt = time.Now()
}

// AddResult appends one lesson's outcome, in order, and updates progress.
func (j *Job) AddResult(r LessonResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, r)
	j.Progress.LessonsDone++
	if r.Synthesized {
		j.Progress.Synthesized++
	} else {
		j.Progress.Failed++
		if r.Error != "" {
			j.errors = append(j.errors, fmt.Sprintf("%s: %s", r.Label, r.Error))
			j.Progress.Errors = j.errors
		}
	}
	j.UpdatedAt = time.Now()
}

// Results returns a copy of the per-lesson outcomes in document order.
func (j *Job) Results() []LessonResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]LessonResult, len(j.results))
	copy(out, j.results)
	return out
}

// LessonAudio returns the audio bytes for one lesson index, reporting
// whether the lesson exists and has audio.
func (j *Job) LessonAudio(index int) ([]byte, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if index < 0 || index >= len(j.results) {
		return nil, false
	}
	r := j.results[index]
	if !r.Synthesized {
		return nil, false
	}
	return r.audio, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalLessons: j.Progress.TotalLessons,
			LessonsDone:  j.Progress.LessonsDone,
			Synthesized:  j.Progress.Synthesized,
			Failed:       j.Progress.Failed,
			Errors:       errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
