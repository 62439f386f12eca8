// Package client implements the UI-facing side of the simulated service: a
// typed API client over the in-process router, and the optimistic-sync
// controller every mutating dashboard action goes through.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"

	"talentflow-backend/internal/model"
	"talentflow-backend/internal/query"
)

// APIError is a response-shaped failure: an HTTP-style status plus the
// server's message. Handler panics surface here too (the router's recovery
// layer turns them into a 500), so callers always resolve out of a loading
// state.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsValidation reports a malformed-request failure, surfaced inline on forms
// and never retried.
func (e *APIError) IsValidation() bool { return e.Status == http.StatusBadRequest }

// IsNotFound reports a stale-id failure, which triggers a refetch of the
// owning collection.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsAuth reports a credential failure.
func (e *APIError) IsAuth() bool { return e.Status == http.StatusUnauthorized }

// IsFault reports a server-side failure, including the injector's simulated
// transient faults.
func (e *APIError) IsFault() bool { return e.Status >= http.StatusInternalServerError }

// Client issues requests against the router in process. It is the only path
// the UI layer uses to reach the entity store.
type Client struct {
	handler http.Handler
}

// New wraps the registered routes.
func New(handler http.Handler) *Client {
	return &Client{handler: handler}
}

func (c *Client) do(method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	if rec.Code >= http.StatusBadRequest {
		apiErr := &APIError{Status: rec.Code, Message: rec.Body.String()}
		var shaped struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &shaped); err == nil && shaped.Error != "" {
			apiErr.Message = shaped.Error
		}
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(rec.Body.Bytes(), out)
	}
	return nil
}

// Login checks credentials and returns the matched user including its role.
func (c *Client) Login(email, password string) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/login",
		map[string]string{"email": email, "password": password}, &resp)
	return resp.User, err
}

// ListJobs runs a job collection query. Total counts the filtered set before
// pagination.
func (c *Client) ListJobs(p query.JobParams) ([]model.Job, int, error) {
	var resp struct {
		Jobs  []model.Job `json:"jobs"`
		Total int         `json:"total"`
	}
	err := c.do(http.MethodGet, "/api/jobs?"+jobValues(p).Encode(), nil, &resp)
	return resp.Jobs, resp.Total, err
}

// CreateJob posts a new job and returns the server-assigned record.
func (c *Client) CreateJob(j model.Job) (model.Job, error) {
	var created model.Job
	err := c.do(http.MethodPost, "/api/jobs", j, &created)
	return created, err
}

// PatchJob applies a partial update to one job.
func (c *Client) PatchJob(id string, patch map[string]any) (model.Job, error) {
	var updated model.Job
	err := c.do(http.MethodPatch, "/api/jobs/"+id, patch, &updated)
	return updated, err
}

// DeleteJob removes one job.
func (c *Client) DeleteJob(id string) error {
	return c.do(http.MethodDelete, "/api/jobs/"+id, nil, nil)
}

// ListCandidates runs a candidate collection query.
func (c *Client) ListCandidates(p query.CandidateParams) ([]model.Candidate, int, error) {
	var resp struct {
		Candidates []model.Candidate `json:"candidates"`
		Total      int               `json:"total"`
	}
	err := c.do(http.MethodGet, "/api/candidates?"+candidateValues(p).Encode(), nil, &resp)
	return resp.Candidates, resp.Total, err
}

// CreateCandidate registers an application.
func (c *Client) CreateCandidate(cand model.Candidate) (model.Candidate, error) {
	var created model.Candidate
	err := c.do(http.MethodPost, "/api/candidates", cand, &created)
	return created, err
}

// PatchCandidate applies a partial update to one candidate.
func (c *Client) PatchCandidate(id string, patch map[string]any) (model.Candidate, error) {
	var updated model.Candidate
	err := c.do(http.MethodPatch, "/api/candidates/"+id, patch, &updated)
	return updated, err
}

// TimelineEntry is one synthesized step of a candidate's stage history.
type TimelineEntry struct {
	Stage string `json:"stage"`
	Date  string `json:"date"`
}

// Timeline fetches the synthesized stage history for a candidate.
func (c *Client) Timeline(candidateID string) ([]TimelineEntry, error) {
	var resp struct {
		Timeline []TimelineEntry `json:"timeline"`
	}
	err := c.do(http.MethodGet, "/api/candidates/"+candidateID+"/timeline", nil, &resp)
	return resp.Timeline, err
}

// AssessmentByJob fetches the assessment for a job; nil means none exists,
// which is a normal outcome.
func (c *Client) AssessmentByJob(jobID string) (*model.Assessment, error) {
	var resp struct {
		Assessment *model.Assessment `json:"assessment"`
	}
	err := c.do(http.MethodGet, "/api/assessments/"+jobID, nil, &resp)
	return resp.Assessment, err
}

// SaveAssessment upserts the assessment for a job.
func (c *Client) SaveAssessment(jobID string, a model.Assessment) (model.Assessment, error) {
	var saved model.Assessment
	err := c.do(http.MethodPut, "/api/assessments/"+jobID, a, &saved)
	return saved, err
}

// SubmitAssessment sends a fire-and-forget response payload.
func (c *Client) SubmitAssessment(jobID string, responses map[string]any) error {
	return c.do(http.MethodPost, "/api/assessments/"+jobID+"/submit",
		map[string]any{"responses": responses}, nil)
}

func jobValues(p query.JobParams) url.Values {
	v := url.Values{}
	setIf(v, "search", p.Search)
	setIf(v, "status", p.Status)
	setIf(v, "experienceRequired", p.Experience)
	setIf(v, "jobPosition", p.JobPosition)
	setIf(v, "skills", p.Skills)
	setIf(v, "sort", p.Sort)
	setPage(v, p.Page, p.PageSize)
	return v
}

func candidateValues(p query.CandidateParams) url.Values {
	v := url.Values{}
	setIf(v, "search", p.Search)
	setIf(v, "stage", p.Stage)
	setPage(v, p.Page, p.PageSize)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// setPage encodes pagination only when requested; page=0 asks the query
// engine for the whole filtered set.
func setPage(v url.Values, page, pageSize int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	} else {
		v.Set("page", "0")
	}
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
}
