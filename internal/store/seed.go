package store

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"talentflow-backend/internal/model"
)

// SeedCounts controls how many records Seed creates per kind.
type SeedCounts struct {
	Jobs        int
	Candidates  int
	Assessments int
}

// DefaultSeedCounts matches the demo dataset: 25 jobs, 1000 candidates,
// 3 assessments, 2 users.
var DefaultSeedCounts = SeedCounts{Jobs: 25, Candidates: 1000, Assessments: 3}

// Exported seed credentials, reused by tests and the login form defaults.
var (
	SeedRecruiter = model.User{
		ID:       "r1",
		Role:     model.RoleRecruiter,
		Email:    "recruiter@talentflow.com",
		Password: "recruiter123",
		Name:     "HR Recruiter",
	}
	SeedCandidateUser = model.User{
		ID:       "c1",
		Role:     model.RoleCandidate,
		Email:    "candidate@talentflow.com",
		Password: "candidate123",
		Name:     "John Doe",
	}
)

var (
	seedCompanies   = []string{"Google", "Amazon", "Microsoft", "Meta", "Netflix", "IBM", "Uber", "Atlassian"}
	seedPositions   = []string{"Frontend Developer", "Backend Developer", "Full Stack Developer", "Product Manager", "DevOps Engineer", "Data Scientist", "UI/UX Designer", "QA Engineer"}
	seedSkills      = []string{"React,JavaScript,HTML,CSS", "Node.js,Express,REST", "Python,Machine Learning,SQL", "AWS,Docker,Kubernetes", "Figma,UI/UX,Prototyping", "Java,Spring Boot,MySQL", "Vue.js,TypeScript,GraphQL", "Selenium,Jest,Testing"}
	seedExperiences = []string{model.ExpFresher, model.ExpIntermediate, model.ExpExperienced}
	seedFirstNames  = []string{"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Lisa", "James", "Mary", "William", "Patricia", "Richard", "Jennifer", "Thomas", "Linda", "Charles", "Barbara", "Daniel", "Elizabeth"}
	seedLastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin"}
)

// seedBase keeps seeded timestamps stable across runs.
var seedBase = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// Seed populates the tables with the deterministic demo dataset. Job j<i> is
// active when i is even, archived when odd; candidate cand<c> applies to job
// j<(c mod jobs)+1>. A fixed-seed source keeps the randomized fields (names,
// stages, dates) reproducible for tests.
func (s *Store) Seed(counts SeedCounts) {
	rng := rand.New(rand.NewSource(1))

	s.CreateUser(SeedRecruiter)
	s.CreateUser(SeedCandidateUser)

	for i := 1; i <= counts.Jobs; i++ {
		status := model.JobStatusArchived
		if i%2 == 0 {
			status = model.JobStatusActive
		}
		s.CreateJob(model.Job{
			ID:                 fmt.Sprintf("j%d", i),
			Title:              fmt.Sprintf("Job %d", i),
			Slug:               fmt.Sprintf("job-%d", i),
			CompanyName:        seedCompanies[i%len(seedCompanies)],
			JobPosition:        seedPositions[i%len(seedPositions)],
			Description:        fmt.Sprintf("Description for Job %d", i),
			SkillsRequired:     model.SplitSkills(seedSkills[i%len(seedSkills)]),
			ExperienceRequired: seedExperiences[i%len(seedExperiences)],
			Salary:             fmt.Sprintf("%d LPA", 70+i),
			Status:             status,
			Order:              i,
			CreatedAt:          seedBase.Add(time.Duration(i) * time.Minute),
		})
	}

	for a := 1; a <= counts.Assessments; a++ {
		jobID := fmt.Sprintf("j%d", a)
		s.UpsertAssessment(jobID, model.Assessment{
			ID:          fmt.Sprintf("a%d", a),
			Title:       fmt.Sprintf("Assessment %d", a),
			Description: fmt.Sprintf("This is a sample assessment for Job %d", a),
			Sections:    seedSections(a, rng),
			CreatedAt:   seedBase,
		})
	}

	for c := 1; c <= counts.Candidates; c++ {
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]
		s.CreateCandidate(model.Candidate{
			ID:    fmt.Sprintf("cand%d", c),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@mail.com", strings.ToLower(first), strings.ToLower(last), c),
			JobID: fmt.Sprintf("j%d", (c%counts.Jobs)+1),
			Stage: model.Stages[rng.Intn(len(model.Stages))],
			Notes: []model.Note{},
			AppliedDate: time.Date(2025, time.Month(1+rng.Intn(3)), 1+rng.Intn(28),
				0, 0, 0, 0, time.UTC),
		})
	}
}

func seedSections(a int, rng *rand.Rand) []model.Section {
	technicalTypes := []string{
		model.QuestionSingleChoice, model.QuestionMultiChoice,
		model.QuestionShortText, model.QuestionLongText, model.QuestionNumericRange,
	}
	technical := model.Section{Title: "Technical Questions"}
	for q := 0; q < 5; q++ {
		question := model.Question{
			Text:     fmt.Sprintf("Question %d for Assessment %d", q+1, a),
			Type:     technicalTypes[q%len(technicalTypes)],
			Required: rng.Float64() > 0.3,
		}
		switch question.Type {
		case model.QuestionSingleChoice, model.QuestionMultiChoice:
			question.Options = []string{"A", "B", "C", "D"}
		case model.QuestionNumericRange:
			low, high := 0.0, 100.0
			question.Min, question.Max = &low, &high
		}
		technical.Questions = append(technical.Questions, question)
	}

	generalTypes := []string{model.QuestionShortText, model.QuestionLongText, model.QuestionSingleChoice}
	general := model.Section{Title: "General Questions"}
	for q := 0; q < 3; q++ {
		question := model.Question{
			Text:     fmt.Sprintf("General Question %d", q+1),
			Type:     generalTypes[q%len(generalTypes)],
			Required: true,
		}
		if question.Type == model.QuestionSingleChoice {
			question.Options = []string{"Yes", "No", "Maybe"}
		}
		general.Questions = append(general.Questions, question)
	}

	return []model.Section{technical, general}
}
