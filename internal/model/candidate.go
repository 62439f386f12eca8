package model

import (
	"regexp"
	"time"
)

// Pipeline stages. Transitions are deliberately unconstrained: any stage can
// move to any other, this is not a guarded workflow.
const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

// Stages lists every pipeline stage in board order.
var Stages = []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// Candidate is an applicant in the pipeline. JobID may dangle: referential
// integrity against jobs is not enforced.
type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	JobID       string    `json:"jobId"`
	Stage       string    `json:"stage"`
	Notes       []Note    `json:"notes"`
	AppliedDate time.Time `json:"appliedDate"`
}

// Note is a recruiter note attached to a candidate card.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Mentions  []string  `json:"mentions"`
	Timestamp time.Time `json:"timestamp"`
}

var mentionPattern = regexp.MustCompile(`@(\w+\s\w+)`)

// ExtractMentions pulls "@First Last" mentions out of note text.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	mentions := []string{}
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
