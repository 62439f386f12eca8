package model

import "time"

// Question types understood by the generic form renderer.
const (
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multi-choice"
	QuestionShortText    = "short-text"
	QuestionLongText     = "long-text"
	QuestionNumericRange = "numeric-range"
	QuestionFileUpload   = "file-upload"
)

// Assessment is the quiz attached to a job. At most one assessment exists per
// job; writes for a jobId that already has one must update it in place.
// TotalQuestions is derived from Sections on every save and never trusted
// from client input.
type Assessment struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Sections       []Section `json:"sections"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Section groups ordered questions under a heading.
type Section struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is a single form field. Options apply to choice types only,
// Min/Max to numeric-range only.
type Question struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// CountQuestions sums question counts across sections.
func (a Assessment) CountQuestions() int {
	total := 0
	for _, s := range a.Sections {
		total += len(s.Questions)
	}
	return total
}

// AssessmentID derives the deterministic id for a job's assessment.
func AssessmentID(jobID string) string {
	return "assessment-" + jobID
}
