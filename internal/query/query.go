// Package query interprets collection-read parameters into a deterministic
// slice of a table snapshot. Every function is pure: no store access, no
// clock, no randomness.
package query

import (
	"sort"
	"strings"

	"talentflow-backend/internal/model"
)

// JobParams are the query parameters understood by GET /jobs.
type JobParams struct {
	Search      string
	Status      string
	Experience  string
	JobPosition string
	// Skills is the raw comma-separated filter value.
	Skills   string
	Sort     string
	Page     int
	PageSize int
}

// CandidateParams are the query parameters understood by GET /candidates.
type CandidateParams struct {
	Search   string
	Stage    string
	Page     int
	PageSize int
}

// Jobs filters, sorts and paginates a job snapshot. The returned total is the
// size of the filtered set before pagination, so callers can derive the page
// count as ceil(total/pageSize).
func Jobs(snapshot []model.Job, p JobParams) ([]model.Job, int) {
	matched := make([]model.Job, 0, len(snapshot))
	search := strings.ToLower(p.Search)
	skills := skillTokens(p.Skills)

	for _, job := range snapshot {
		if search != "" && !strings.Contains(strings.ToLower(job.Title), search) {
			continue
		}
		if p.Status != "" && job.Status != p.Status {
			continue
		}
		if p.Experience != "" && job.ExperienceRequired != p.Experience {
			continue
		}
		if p.JobPosition != "" && job.JobPosition != p.JobPosition {
			continue
		}
		if len(skills) > 0 && !hasSkills(job.SkillsRequired, skills) {
			continue
		}
		matched = append(matched, job)
	}

	if p.Sort != "" {
		desc := strings.EqualFold(p.Sort, "desc")
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].Order > matched[j].Order
			}
			return matched[i].Order < matched[j].Order
		})
	}

	total := len(matched)
	start, end := pageBounds(total, p.Page, p.PageSize)
	return matched[start:end], total
}

// Candidates filters and paginates a candidate snapshot. Search matches name
// or email, case-insensitive.
func Candidates(snapshot []model.Candidate, p CandidateParams) ([]model.Candidate, int) {
	matched := make([]model.Candidate, 0, len(snapshot))
	search := strings.ToLower(p.Search)

	for _, cand := range snapshot {
		if search != "" &&
			!strings.Contains(strings.ToLower(cand.Name), search) &&
			!strings.Contains(strings.ToLower(cand.Email), search) {
			continue
		}
		if p.Stage != "" && cand.Stage != p.Stage {
			continue
		}
		matched = append(matched, cand)
	}

	total := len(matched)
	start, end := pageBounds(total, p.Page, p.PageSize)
	return matched[start:end], total
}

// skillTokens normalizes the comma-separated skills filter into lowercase
// tokens.
func skillTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(raw), ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// hasSkills reports whether every requested token appears somewhere in the
// job's joined skill string. This is substring containment per token, the
// same loose "contains" check the dashboard uses for free-text skills.
func hasSkills(skills model.SkillList, tokens []string) bool {
	joined := skills.Joined()
	for _, t := range tokens {
		if !strings.Contains(joined, t) {
			return false
		}
	}
	return true
}

// pageBounds slices [start,end) out of a filtered set. Pages are 1-indexed;
// an out-of-range page yields an empty slice, a short last page is returned
// as-is, and a non-positive page or page size falls back to everything.
func pageBounds(total, page, pageSize int) (int, int) {
	if page <= 0 || pageSize <= 0 {
		return 0, total
	}
	start := (page - 1) * pageSize
	if start >= total {
		return total, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
