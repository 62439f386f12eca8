package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Job statuses. Archived jobs stay in the table and keep their slug reserved.
const (
	JobStatusActive   = "active"
	JobStatusArchived = "archived"
)

// Experience levels accepted for ExperienceRequired.
const (
	ExpFresher      = "Fresher"
	ExpIntermediate = "Intermediate"
	ExpExperienced  = "Experienced"
)

// Job is a posted position on the board. Order defines the manual ranking on
// the recruiter dashboard; it is unique within the active ordering but not
// required to be contiguous.
type Job struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	CompanyName        string    `json:"companyName"`
	JobPosition        string    `json:"jobPosition"`
	Description        string    `json:"description"`
	SkillsRequired     SkillList `json:"skillsRequired"`
	ExperienceRequired string    `json:"experienceRequired"`
	Salary             string    `json:"salary"`
	Status             string    `json:"status"`
	Order              int       `json:"order"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SkillList normalizes the two shapes skills arrive in: a JSON array of
// strings or a single comma-delimited string.
type SkillList []string

// UnmarshalJSON accepts either form and stores the list with trimmed tokens.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return err
		}
		*s = SplitSkills(joined)
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	out := make(SkillList, 0, len(list))
	for _, sk := range list {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	*s = out
	return nil
}

// SplitSkills turns a comma-delimited skill string into a list.
func SplitSkills(joined string) SkillList {
	parts := strings.Split(joined, ",")
	out := make(SkillList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Joined returns the lowercase comma-joined form used by the skills filter.
func (s SkillList) Joined() string {
	return strings.ToLower(strings.Join(s, ","))
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a URL-safe slug: lowercase letters, digits
// and single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a slug from a free-form title.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
