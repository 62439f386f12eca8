// Package candidate provides HTTP handlers for the hiring pipeline.
package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentflow-backend/internal/model"
	"talentflow-backend/internal/query"
	"talentflow-backend/internal/store"
	"talentflow-backend/internal/utilities"
)

// DefaultPageSize applies when GET /candidates carries no pageSize.
const DefaultPageSize = 20

// Controller handles candidate related endpoints.
type Controller struct {
	Store *store.Store
}

// NewController creates a new instance of Controller.
func NewController(st *store.Store) *Controller {
	return &Controller{Store: st}
}

// GetCandidates fetches the candidate page matching the query. Search
// matches name or email substring, case-insensitive; stage must exactly
// match.
func (cc *Controller) GetCandidates(c *gin.Context) {
	params := query.CandidateParams{
		Search:   c.Query("search"),
		Stage:    c.Query("stage"),
		Page:     utilities.IntQuery(c, "page", 1),
		PageSize: utilities.IntQuery(c, "pageSize", DefaultPageSize),
	}

	page, total := query.Candidates(cc.Store.Candidates(), params)
	c.JSON(http.StatusOK, gin.H{"candidates": page, "total": total})
}

// GetCandidateByID fetches a single candidate.
func (cc *Controller) GetCandidateByID(c *gin.Context) {
	cand, err := cc.Store.GetCandidate(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Candidate not found"})
		return
	}
	c.JSON(http.StatusOK, cand)
}

// CreateCandidate registers an application against a job. The jobId is taken
// as given; a dangling reference is tolerated.
func (cc *Controller) CreateCandidate(c *gin.Context) {
	newCand := model.Candidate{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&newCand); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if newCand.Name == "" || newCand.Email == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Candidate name and email must be provided"})
		return
	}

	c.JSON(http.StatusCreated, cc.Store.CreateCandidate(newCand))
}

// EditCandidate partially updates a candidate, primarily its stage. Any
// stage may move to any other stage.
func (cc *Controller) EditCandidate(c *gin.Context) {
	patch, err := utilities.DecodePatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	updated, err := cc.Store.PatchCandidate(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update candidate: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetTimeline returns a synthesized stage history ending in the candidate's
// current stage. This is a display convenience, not a recorded audit log.
func (cc *Controller) GetTimeline(c *gin.Context) {
	cand, err := cc.Store.GetCandidate(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Candidate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timeline": []gin.H{
			{"stage": model.StageApplied, "date": "2025-01-01"},
			{"stage": model.StageScreen, "date": "2025-01-05"},
			{"stage": cand.Stage, "date": "2025-01-10"},
		},
	})
}
