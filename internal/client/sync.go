package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentflow-backend/internal/model"
	"talentflow-backend/internal/query"
)

// Notifier surfaces the outcome of a mutating action as a toast. Every
// failed mutation produces an error toast naming the attempted action; every
// success produces a confirmatory one.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Success implements Notifier.
func (NopNotifier) Success(string) {}

// Error implements Notifier.
func (NopNotifier) Error(string) {}

// SyncController keeps the local view of the job and candidate collections
// correct under an unreliable service. Every mutating action follows the
// same discipline: snapshot the local state, apply the change optimistically
// so the UI reflects it with zero perceived latency, issue the request, then
// commit on success or restore the snapshot on failure. A stale-id failure
// additionally refetches the owning collection.
//
// Two racing actions against the same record resolve by the store's
// last-write-wins merge; this single-tab design accepts that instead of
// locking.
type SyncController struct {
	api    *Client
	notify Notifier
	log    *zap.Logger

	mu         sync.Mutex
	jobs       []model.Job
	candidates []model.Candidate
}

// NewSyncController builds a controller over an API client. A nil notifier
// discards toasts.
func NewSyncController(api *Client, notify Notifier, lg *zap.Logger) *SyncController {
	if notify == nil {
		notify = NopNotifier{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &SyncController{api: api, notify: notify, log: lg}
}

// Jobs returns a copy of the local job view.
func (s *SyncController) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneJobs(s.jobs)
}

// Candidates returns a copy of the local candidate view.
func (s *SyncController) Candidates() []model.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCandidates(s.candidates)
}

// RefreshJobs replaces the local job view with a canonical refetch.
func (s *SyncController) RefreshJobs() error {
	jobs, _, err := s.api.ListJobs(query.JobParams{})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()
	return nil
}

// RefreshCandidates replaces the local candidate view with a canonical
// refetch.
func (s *SyncController) RefreshCandidates() error {
	candidates, _, err := s.api.ListCandidates(query.CandidateParams{})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.candidates = candidates
	s.mu.Unlock()
	return nil
}

// CreateJob validates and posts a new job. Slug collisions against the local
// view are rejected before any request is issued; the slug stays reserved by
// archived jobs too, since those are not deleted.
func (s *SyncController) CreateJob(newJob model.Job) error {
	if newJob.Slug == "" {
		newJob.Slug = model.Slugify(newJob.Title)
	}
	s.mu.Lock()
	for _, j := range s.jobs {
		if j.Slug == newJob.Slug {
			s.mu.Unlock()
			s.notify.Error(fmt.Sprintf("A job with slug %q already exists.", newJob.Slug))
			return fmt.Errorf("duplicate slug %q", newJob.Slug)
		}
	}
	snapshot := cloneJobs(s.jobs)
	s.jobs = append(s.jobs, newJob)
	s.mu.Unlock()

	created, err := s.api.CreateJob(newJob)
	if err != nil {
		s.rollbackJobs(snapshot, err, "create job")
		return err
	}

	s.mu.Lock()
	s.jobs[len(s.jobs)-1] = created
	s.mu.Unlock()
	s.notify.Success("Job created successfully!")
	return nil
}

// ArchiveJob toggles a job between active and archived.
func (s *SyncController) ArchiveJob(id string) error {
	s.mu.Lock()
	snapshot := cloneJobs(s.jobs)
	newStatus := ""
	for i, j := range s.jobs {
		if j.ID == id {
			newStatus = model.JobStatusArchived
			if j.Status == model.JobStatusArchived {
				newStatus = model.JobStatusActive
			}
			s.jobs[i].Status = newStatus
			break
		}
	}
	s.mu.Unlock()
	if newStatus == "" {
		return fmt.Errorf("job %s not in local view", id)
	}

	if _, err := s.api.PatchJob(id, map[string]any{"status": newStatus}); err != nil {
		s.rollbackJobs(snapshot, err, "archive job")
		return err
	}

	if newStatus == model.JobStatusArchived {
		s.notify.Success("Job archived successfully!")
	} else {
		s.notify.Success("Job unarchived successfully!")
	}
	return nil
}

// DeleteJob removes a job.
func (s *SyncController) DeleteJob(id string) error {
	s.mu.Lock()
	snapshot := cloneJobs(s.jobs)
	kept := s.jobs[:0:0]
	for _, j := range s.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.jobs = kept
	s.mu.Unlock()

	if err := s.api.DeleteJob(id); err != nil {
		s.rollbackJobs(snapshot, err, "delete job")
		return err
	}

	s.notify.Success("Job deleted successfully!")
	return nil
}

// EditJob patches arbitrary job fields, mirroring the patch locally first.
func (s *SyncController) EditJob(id string, patch map[string]any) error {
	s.mu.Lock()
	snapshot := cloneJobs(s.jobs)
	for i, j := range s.jobs {
		if j.ID == id {
			if merged, err := overlayJob(j, patch); err == nil {
				s.jobs[i] = merged
			}
			break
		}
	}
	s.mu.Unlock()

	if _, err := s.api.PatchJob(id, patch); err != nil {
		s.rollbackJobs(snapshot, err, "update job")
		return err
	}

	s.notify.Success("Job updated successfully!")
	return nil
}

// ReorderJobs moves the dragged job to the target job's position and
// recomputes every affected order locally, then persists each record with an
// individual PATCH. If any PATCH fails the whole batch rolls back to the
// pre-drag snapshot: all-or-nothing at the perceived-UI level, even though
// the service-side writes are not transactional.
func (s *SyncController) ReorderJobs(draggedID, targetID string) error {
	s.mu.Lock()
	snapshot := cloneJobs(s.jobs)

	draggedIdx, targetIdx := -1, -1
	for i, j := range s.jobs {
		switch j.ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 || draggedIdx == targetIdx {
		s.mu.Unlock()
		return fmt.Errorf("reorder: jobs %s and %s not both in local view", draggedID, targetID)
	}

	reordered := cloneJobs(s.jobs)
	dragged := reordered[draggedIdx]
	reordered = append(reordered[:draggedIdx], reordered[draggedIdx+1:]...)
	reordered = append(reordered[:targetIdx], append([]model.Job{dragged}, reordered[targetIdx:]...)...)
	for i := range reordered {
		reordered[i].Order = i
	}
	s.jobs = reordered
	s.mu.Unlock()

	for _, j := range reordered {
		if _, err := s.api.PatchJob(j.ID, map[string]any{"order": j.Order}); err != nil {
			s.rollbackJobs(snapshot, err, "reorder jobs")
			return err
		}
	}

	s.notify.Success("Jobs reordered successfully!")
	return nil
}

// ApplyToJob registers the signed-in candidate against a job.
func (s *SyncController) ApplyToJob(jobID, name, email string) error {
	optimistic := model.Candidate{
		Name:        name,
		Email:       email,
		JobID:       jobID,
		Stage:       model.StageApplied,
		Notes:       []model.Note{},
		AppliedDate: time.Now(),
	}

	s.mu.Lock()
	snapshot := cloneCandidates(s.candidates)
	s.candidates = append(s.candidates, optimistic)
	s.mu.Unlock()

	created, err := s.api.CreateCandidate(optimistic)
	if err != nil {
		s.rollbackCandidates(snapshot, err, "apply to job")
		return err
	}

	s.mu.Lock()
	s.candidates[len(s.candidates)-1] = created
	s.mu.Unlock()
	s.notify.Success("Application submitted successfully!")
	return nil
}

// MoveCandidateStage drags a candidate card between pipeline columns.
func (s *SyncController) MoveCandidateStage(id, stage string) error {
	s.mu.Lock()
	snapshot := cloneCandidates(s.candidates)
	for i, cand := range s.candidates {
		if cand.ID == id {
			s.candidates[i].Stage = stage
			break
		}
	}
	s.mu.Unlock()

	if _, err := s.api.PatchCandidate(id, map[string]any{"stage": stage}); err != nil {
		s.rollbackCandidates(snapshot, err, "move candidate")
		return err
	}

	s.notify.Success("Candidate moved successfully!")
	return nil
}

// AddNote attaches a note to a candidate, extracting @mentions from the
// text.
func (s *SyncController) AddNote(candidateID, text string) error {
	note := model.Note{
		ID:        uuid.NewString(),
		Text:      text,
		Mentions:  model.ExtractMentions(text),
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	snapshot := cloneCandidates(s.candidates)
	var notes []model.Note
	found := false
	for i, cand := range s.candidates {
		if cand.ID == candidateID {
			notes = append(cloneNotes(cand.Notes), note)
			s.candidates[i].Notes = notes
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("candidate %s not in local view", candidateID)
	}

	if _, err := s.api.PatchCandidate(candidateID, map[string]any{"notes": notes}); err != nil {
		s.rollbackCandidates(snapshot, err, "add note")
		return err
	}

	s.notify.Success("Note added successfully!")
	return nil
}

// DeleteNote removes a note from a candidate.
func (s *SyncController) DeleteNote(candidateID, noteID string) error {
	s.mu.Lock()
	snapshot := cloneCandidates(s.candidates)
	var notes []model.Note
	found := false
	for i, cand := range s.candidates {
		if cand.ID == candidateID {
			notes = []model.Note{}
			for _, n := range cand.Notes {
				if n.ID != noteID {
					notes = append(notes, n)
				}
			}
			s.candidates[i].Notes = notes
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("candidate %s not in local view", candidateID)
	}

	if _, err := s.api.PatchCandidate(candidateID, map[string]any{"notes": notes}); err != nil {
		s.rollbackCandidates(snapshot, err, "delete note")
		return err
	}

	s.notify.Success("Note deleted successfully!")
	return nil
}

// rollbackJobs restores the pre-action job snapshot and surfaces the
// failure. A stale-id error also refetches the collection, since the local
// view evidently drifted from the service.
func (s *SyncController) rollbackJobs(snapshot []model.Job, cause error, action string) {
	s.mu.Lock()
	s.jobs = snapshot
	s.mu.Unlock()
	s.notify.Error(fmt.Sprintf("Failed to %s. Changes reverted.", action))
	s.log.Warn("action rolled back", zap.String("action", action), zap.Error(cause))

	var apiErr *APIError
	if errors.As(cause, &apiErr) && apiErr.IsNotFound() {
		if err := s.RefreshJobs(); err != nil {
			s.log.Warn("refetch after stale id failed", zap.Error(err))
		}
	}
}

func (s *SyncController) rollbackCandidates(snapshot []model.Candidate, cause error, action string) {
	s.mu.Lock()
	s.candidates = snapshot
	s.mu.Unlock()
	s.notify.Error(fmt.Sprintf("Failed to %s. Changes reverted.", action))
	s.log.Warn("action rolled back", zap.String("action", action), zap.Error(cause))

	var apiErr *APIError
	if errors.As(cause, &apiErr) && apiErr.IsNotFound() {
		if err := s.RefreshCandidates(); err != nil {
			s.log.Warn("refetch after stale id failed", zap.Error(err))
		}
	}
}

// overlayJob applies a shallow patch to a local job copy, matching the
// store's merge semantics.
func overlayJob(j model.Job, patch map[string]any) (model.Job, error) {
	raw, err := json.Marshal(j)
	if err != nil {
		return j, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return j, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return j, err
	}
	out := j
	if err := json.Unmarshal(merged, &out); err != nil {
		return j, err
	}
	return out, nil
}

func cloneJobs(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	copy(out, jobs)
	return out
}

func cloneCandidates(candidates []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(candidates))
	copy(out, candidates)
	return out
}

func cloneNotes(notes []model.Note) []model.Note {
	out := make([]model.Note, len(notes))
	copy(out, notes)
	return out
}
