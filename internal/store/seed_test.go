package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow-backend/internal/model"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := New(nil, nil)
	s.Seed(DefaultSeedCounts)
	return s
}

func TestSeed_counts(t *testing.T) {
	s := seededStore(t)

	counts := s.Counts()
	assert.Equal(t, 25, counts[KindJobs])
	assert.Equal(t, 1000, counts[KindCandidates])
	assert.Equal(t, 3, counts[KindAssessments])
	assert.Equal(t, 2, counts[KindUsers])
}

func TestSeed_jobStatusAlternates(t *testing.T) {
	s := seededStore(t)

	active := 0
	for _, j := range s.Jobs() {
		if j.Status == model.JobStatusActive {
			active++
			assert.Contains(t, []string{"j2", "j4", "j6", "j8", "j10", "j12", "j14", "j16", "j18", "j20", "j22", "j24"}, j.ID)
		}
	}
	assert.Equal(t, 12, active)
}

func TestSeed_jobFields(t *testing.T) {
	s := seededStore(t)

	j3, err := s.GetJob("j3")
	require.NoError(t, err)
	assert.Equal(t, "Job 3", j3.Title)
	assert.Equal(t, "job-3", j3.Slug)
	assert.Equal(t, "73 LPA", j3.Salary)
	assert.Equal(t, 3, j3.Order)
	assert.Equal(t, model.JobStatusArchived, j3.Status)
	assert.NotEmpty(t, j3.SkillsRequired)
}

func TestSeed_candidatesSpreadAcrossJobs(t *testing.T) {
	s := seededStore(t)

	cands := s.Candidates()
	require.Len(t, cands, 1000)
	for c, cand := range cands {
		assert.Equal(t, fmt.Sprintf("cand%d", c+1), cand.ID)
		assert.Equal(t, fmt.Sprintf("j%d", ((c+1)%25)+1), cand.JobID)
		assert.Contains(t, model.Stages, cand.Stage)
		assert.NotNil(t, cand.Notes)
	}
}

func TestSeed_assessmentsAttachToFirstJobs(t *testing.T) {
	s := seededStore(t)

	for a := 1; a <= 3; a++ {
		rec, ok := s.AssessmentByJob(fmt.Sprintf("j%d", a))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("a%d", a), rec.ID)
		require.Len(t, rec.Sections, 2)
		assert.Len(t, rec.Sections[0].Questions, 5)
		assert.Len(t, rec.Sections[1].Questions, 3)
		assert.Equal(t, 8, rec.TotalQuestions)
	}
}

func TestSeed_demoCredentialsWork(t *testing.T) {
	s := seededStore(t)

	recruiter, ok := s.UserByCredentials("recruiter@talentflow.com", "recruiter123")
	require.True(t, ok)
	assert.Equal(t, model.RoleRecruiter, recruiter.Role)

	candidate, ok := s.UserByCredentials("candidate@talentflow.com", "candidate123")
	require.True(t, ok)
	assert.Equal(t, model.RoleCandidate, candidate.Role)
}

func TestSeed_deterministic(t *testing.T) {
	a := seededStore(t)
	b := seededStore(t)

	assert.Equal(t, a.Jobs(), b.Jobs())
	assert.Equal(t, a.Candidates(), b.Candidates())
}
