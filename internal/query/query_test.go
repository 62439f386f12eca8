package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"talentflow-backend/internal/model"
)

func sampleJobs() []model.Job {
	jobs := make([]model.Job, 0, 25)
	for i := 1; i <= 25; i++ {
		status := model.JobStatusArchived
		if i%2 == 0 {
			status = model.JobStatusActive
		}
		jobs = append(jobs, model.Job{
			ID:                 fmt.Sprintf("j%d", i),
			Title:              fmt.Sprintf("Job %d", i),
			Status:             status,
			Order:              i,
			JobPosition:        "Backend Developer",
			ExperienceRequired: model.ExpFresher,
			SkillsRequired:     model.SkillList{"React", "JavaScript", "HTML", "CSS"},
		})
	}
	return jobs
}

func TestJobs_totalCountsBeforePagination(t *testing.T) {
	jobs := sampleJobs()

	for _, page := range []int{1, 2, 3, 7} {
		matched, total := Jobs(jobs, JobParams{
			Status:   model.JobStatusActive,
			Page:     page,
			PageSize: 5,
		})
		assert.Equal(t, 12, total, "total must be independent of page %d", page)
		for _, j := range matched {
			assert.Equal(t, model.JobStatusActive, j.Status)
		}
	}
}

func TestJobs_statusFilterAndShortPage(t *testing.T) {
	matched, total := Jobs(sampleJobs(), JobParams{
		Status:   model.JobStatusActive,
		Page:     1,
		PageSize: 9,
	})
	assert.Equal(t, 12, total)
	assert.Len(t, matched, 9)

	// 12 active jobs, so page 2 of 9 is a short page, not an error.
	matched, total = Jobs(sampleJobs(), JobParams{
		Status:   model.JobStatusActive,
		Page:     2,
		PageSize: 9,
	})
	assert.Equal(t, 12, total)
	assert.Len(t, matched, 3)
}

func TestJobs_outOfRangePage(t *testing.T) {
	matched, total := Jobs(sampleJobs(), JobParams{Page: 99, PageSize: 10})
	assert.Equal(t, 25, total)
	assert.Empty(t, matched)
}

func TestJobs_searchCaseInsensitive(t *testing.T) {
	matched, total := Jobs(sampleJobs(), JobParams{Search: "jOb 2"})
	// Job 2, 20..25 all contain "job 2".
	assert.Equal(t, 7, total)
	for _, j := range matched {
		assert.Contains(t, j.Title, "Job 2")
	}
}

func TestJobs_sortByOrder(t *testing.T) {
	asc, _ := Jobs(sampleJobs(), JobParams{Sort: "asc"})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Order, asc[i].Order)
	}

	desc, _ := Jobs(sampleJobs(), JobParams{Sort: "desc"})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Order, desc[i].Order)
	}
}

func TestJobs_skillsContainsEveryToken(t *testing.T) {
	jobs := []model.Job{
		{ID: "a", SkillsRequired: model.SkillList{"React", "JavaScript", "HTML"}},
		{ID: "b", SkillsRequired: model.SkillList{"Python", "Machine Learning", "SQL"}},
	}

	matched, total := Jobs(jobs, JobParams{Skills: "react, html"})
	assert.Equal(t, 1, total)
	assert.Equal(t, "a", matched[0].ID)

	// Substring containment per token, not exact membership.
	matched, total = Jobs(jobs, JobParams{Skills: "script"})
	assert.Equal(t, 1, total)
	assert.Equal(t, "a", matched[0].ID)

	_, total = Jobs(jobs, JobParams{Skills: "react, sql"})
	assert.Zero(t, total)
}

func TestJobs_absentFiltersAreNoop(t *testing.T) {
	matched, total := Jobs(sampleJobs(), JobParams{})
	assert.Equal(t, 25, total)
	assert.Len(t, matched, 25)
}

func TestJobs_exactMatchFilters(t *testing.T) {
	jobs := []model.Job{
		{ID: "a", ExperienceRequired: model.ExpFresher, JobPosition: "Backend Developer"},
		{ID: "b", ExperienceRequired: model.ExpExperienced, JobPosition: "Backend Developer"},
		{ID: "c", ExperienceRequired: model.ExpFresher, JobPosition: "QA Engineer"},
	}

	matched, total := Jobs(jobs, JobParams{Experience: model.ExpFresher})
	assert.Equal(t, 2, total)
	assert.Len(t, matched, 2)

	matched, total = Jobs(jobs, JobParams{Experience: model.ExpFresher, JobPosition: "QA Engineer"})
	assert.Equal(t, 1, total)
	assert.Equal(t, "c", matched[0].ID)
}

func TestCandidates_searchMatchesNameOrEmail(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "1", Name: "Jane Smith", Email: "jane.smith1@mail.com", Stage: model.StageApplied},
		{ID: "2", Name: "John Doe", Email: "john.doe2@mail.com", Stage: model.StageScreen},
		{ID: "3", Name: "Someone Else", Email: "contains.jane@mail.com", Stage: model.StageApplied},
	}

	_, total := Candidates(candidates, CandidateParams{Search: "JANE"})
	assert.Equal(t, 2, total)

	matched, total := Candidates(candidates, CandidateParams{Search: "jane", Stage: model.StageApplied, Page: 1, PageSize: 1})
	assert.Equal(t, 2, total)
	assert.Len(t, matched, 1)
}

func TestCandidates_stageFilter(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "1", Stage: model.StageApplied},
		{ID: "2", Stage: model.StageHired},
		{ID: "3", Stage: model.StageApplied},
	}

	matched, total := Candidates(candidates, CandidateParams{Stage: model.StageApplied})
	assert.Equal(t, 2, total)
	assert.Len(t, matched, 2)
}
