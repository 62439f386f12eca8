// Package store implement the in-memory entity tables behind the simulated
// service. All operations are synchronous; the artificial asynchrony lives
// entirely in the injector middleware. Committed mutations are mirrored into
// durable storage fire-and-forget.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentflow-backend/internal/model"
)

// Entity kinds, used as mirror keys.
const (
	KindJobs        = "jobs"
	KindCandidates  = "candidates"
	KindAssessments = "assessments"
	KindUsers       = "users"
)

// ErrNotFound is returned for operations against an absent id. Deleting a
// nonexistent record is an error, not a silent success.
var ErrNotFound = errors.New("record not found")

// Mirror is the durable write-through contract. Save and Delete must not
// block or fail the in-memory mutation.
type Mirror interface {
	Load(kind string) ([]json.RawMessage, error)
	Save(kind, id string, record any)
	Delete(kind, id string)
}

type noopMirror struct{}

func (noopMirror) Load(string) ([]json.RawMessage, error) { return nil, nil }
func (noopMirror) Save(string, string, any)               {}
func (noopMirror) Delete(string, string)                  {}

// Store owns the entity tables. It is a single instance passed by handle to
// the router and query engine; tests construct isolated instances.
type Store struct {
	jobs        *table[model.Job]
	candidates  *table[model.Candidate]
	assessments *table[model.Assessment]
	users       *table[model.User]

	mirror Mirror
	log    *zap.Logger
	now    func() time.Time
}

// New constructs an empty store. A nil mirror disables persistence.
func New(m Mirror, lg *zap.Logger) *Store {
	if m == nil {
		m = noopMirror{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{
		jobs:        newTable[model.Job](),
		candidates:  newTable[model.Candidate](),
		assessments: newTable[model.Assessment](),
		users:       newTable[model.User](),
		mirror:      m,
		log:         lg,
		now:         time.Now,
	}
}

// Init repopulates the tables from the mirror, falling back to seeding when
// nothing was persisted. It must complete before the store serves requests.
func (s *Store) Init(counts SeedCounts) error {
	if err := loadKind(s, KindJobs, s.jobs, func(j model.Job) string { return j.ID }); err != nil {
		return err
	}
	if err := loadKind(s, KindCandidates, s.candidates, func(c model.Candidate) string { return c.ID }); err != nil {
		return err
	}
	if err := loadKind(s, KindAssessments, s.assessments, func(a model.Assessment) string { return a.ID }); err != nil {
		return err
	}
	if err := loadKind(s, KindUsers, s.users, func(u model.User) string { return u.ID }); err != nil {
		return err
	}

	if s.jobs.len() == 0 && s.candidates.len() == 0 && s.users.len() == 0 {
		s.log.Info("mirror empty, seeding entity tables")
		s.Seed(counts)
	}
	return nil
}

func loadKind[T any](s *Store, kind string, t *table[T], id func(T) string) error {
	raws, err := s.mirror.Load(kind)
	if err != nil {
		return err
	}
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.log.Warn("skipping unreadable mirrored record", zap.String("kind", kind), zap.Error(err))
			continue
		}
		t.put(id(rec), rec)
	}
	return nil
}

// Counts reports table sizes, for the health route.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		KindJobs:        s.jobs.len(),
		KindCandidates:  s.candidates.len(),
		KindAssessments: s.assessments.len(),
		KindUsers:       s.users.len(),
	}
}

// mergeRecord applies a shallow JSON merge of patch onto rec. Fields absent
// from the patch are left untouched; zero values ("order":0) are applied.
func mergeRecord[T any](rec T, patch map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ---- jobs ----

// Jobs returns a full-table snapshot in insertion order.
func (s *Store) Jobs() []model.Job { return s.jobs.snapshot() }

// GetJob fetches one job by id.
func (s *Store) GetJob(id string) (model.Job, error) {
	job, ok := s.jobs.get(id)
	if !ok {
		return model.Job{}, ErrNotFound
	}
	return job, nil
}

// CreateJob inserts a job, assigning id and createdAt when absent.
func (s *Store) CreateJob(job model.Job) model.Job {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = model.JobStatusActive
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now()
	}
	s.jobs.put(job.ID, job)
	s.mirror.Save(KindJobs, job.ID, job)
	return job
}

// PatchJob shallow-merges the supplied fields into an existing job. An empty
// patch returns the record unchanged.
func (s *Store) PatchJob(id string, patch map[string]any) (model.Job, error) {
	job, ok := s.jobs.get(id)
	if !ok {
		return model.Job{}, ErrNotFound
	}
	if len(patch) == 0 {
		return job, nil
	}
	merged, err := mergeRecord(job, patch)
	if err != nil {
		return model.Job{}, err
	}
	merged.ID = job.ID
	s.jobs.put(id, merged)
	s.mirror.Save(KindJobs, id, merged)
	return merged, nil
}

// DeleteJob removes a job by id.
func (s *Store) DeleteJob(id string) error {
	if !s.jobs.delete(id) {
		return ErrNotFound
	}
	s.mirror.Delete(KindJobs, id)
	return nil
}

// ---- candidates ----

// Candidates returns a full-table snapshot in insertion order.
func (s *Store) Candidates() []model.Candidate { return s.candidates.snapshot() }

// GetCandidate fetches one candidate by id.
func (s *Store) GetCandidate(id string) (model.Candidate, error) {
	cand, ok := s.candidates.get(id)
	if !ok {
		return model.Candidate{}, ErrNotFound
	}
	return cand, nil
}

// CreateCandidate inserts a candidate, assigning id and appliedDate when
// absent. The jobId reference is not checked; dangling references are
// tolerated everywhere candidates are read.
func (s *Store) CreateCandidate(cand model.Candidate) model.Candidate {
	if cand.ID == "" {
		cand.ID = uuid.NewString()
	}
	if cand.Stage == "" {
		cand.Stage = model.StageApplied
	}
	if cand.AppliedDate.IsZero() {
		cand.AppliedDate = s.now()
	}
	if cand.Notes == nil {
		cand.Notes = []model.Note{}
	}
	s.candidates.put(cand.ID, cand)
	s.mirror.Save(KindCandidates, cand.ID, cand)
	return cand
}

// PatchCandidate shallow-merges the supplied fields into an existing
// candidate.
func (s *Store) PatchCandidate(id string, patch map[string]any) (model.Candidate, error) {
	cand, ok := s.candidates.get(id)
	if !ok {
		return model.Candidate{}, ErrNotFound
	}
	if len(patch) == 0 {
		return cand, nil
	}
	merged, err := mergeRecord(cand, patch)
	if err != nil {
		return model.Candidate{}, err
	}
	merged.ID = cand.ID
	s.candidates.put(id, merged)
	s.mirror.Save(KindCandidates, id, merged)
	return merged, nil
}

// ---- assessments ----

// Assessments returns a full-table snapshot in insertion order.
func (s *Store) Assessments() []model.Assessment { return s.assessments.snapshot() }

// AssessmentByJob finds the at-most-one assessment attached to a job.
// Absence is a normal outcome, not an error.
func (s *Store) AssessmentByJob(jobID string) (model.Assessment, bool) {
	for _, a := range s.assessments.snapshot() {
		if a.JobID == jobID {
			return a, true
		}
	}
	return model.Assessment{}, false
}

// UpsertAssessment creates or updates the assessment for a job. An existing
// record keeps its id; a new one gets a deterministic id derived from the
// job. TotalQuestions is always recomputed from sections, never taken from
// the input.
func (s *Store) UpsertAssessment(jobID string, a model.Assessment) model.Assessment {
	a.JobID = jobID
	if existing, ok := s.AssessmentByJob(jobID); ok {
		a.ID = existing.ID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = existing.CreatedAt
		}
	} else {
		if a.ID == "" {
			a.ID = model.AssessmentID(jobID)
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.now()
		}
	}
	a.TotalQuestions = a.CountQuestions()
	s.assessments.put(a.ID, a)
	s.mirror.Save(KindAssessments, a.ID, a)
	return a
}

// ---- users ----

// CreateUser inserts a login record.
func (s *Store) CreateUser(u model.User) model.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users.put(u.ID, u)
	s.mirror.Save(KindUsers, u.ID, u)
	return u
}

// UserByCredentials finds a user by exact email and password match.
func (s *Store) UserByCredentials(email, password string) (model.User, bool) {
	for _, u := range s.users.snapshot() {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return model.User{}, false
}
