package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Arjun231730/text-audio/internal/pipeline"
)

// handleListLessons returns the per-lesson outcomes in document order,
// together with the extracted text for preview.
func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	results := job.Results()
	lessons := make([]map[string]any, 0, len(results))
	for _, res := range results {
		entry := map[string]any{
			"index":       res.Index,
			"label":       res.Label,
			"script":      res.Script,
			"synthesized": res.Synthesized,
		}
		if res.Error != "" {
			entry["error"] = res.Error
		}
		if res.Synthesized {
			entry["audio_url"] = fmt.Sprintf("/api/convert/%s/lessons/%d/audio", jobID, res.Index)
		}
		lessons = append(lessons, entry)
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":         snap.ID,
		"status":         snap.Status,
		"extracted_text": job.RawText(),
		"lessons":        lessons,
	})
}

// handleLessonAudio serves one lesson's synthesized audio.
func (s *Server) handleLessonAudio(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		jsonError(w, "invalid lesson index", http.StatusBadRequest)
		return
	}

	audio, ok := job.LessonAudio(index)
	if !ok {
		// Distinguish "still working" from "failed or unknown lesson".
		switch job.Snapshot().Status {
		case pipeline.StatusQueued, pipeline.StatusParsing, pipeline.StatusSegmenting,
			pipeline.StatusComposing, pipeline.StatusSynthesizing:
			jsonError(w, "lesson audio not ready yet", http.StatusConflict)
		default:
			jsonError(w, "no audio for this lesson", http.StatusNotFound)
		}
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.Write(audio)
}
