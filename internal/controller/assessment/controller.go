// Package assessment provides HTTP handlers for the assessment builder.
package assessment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentflow-backend/internal/model"
	"talentflow-backend/internal/store"
	"talentflow-backend/internal/utilities"
)

// Controller handles assessment related endpoints.
type Controller struct {
	Store *store.Store
}

// NewController creates a new instance of Controller.
func NewController(st *store.Store) *Controller {
	return &Controller{Store: st}
}

// GetByJob returns the assessment attached to a job, or null when none
// exists. Absence is a normal outcome, not an error.
func (ac *Controller) GetByJob(c *gin.Context) {
	rec, ok := ac.Store.AssessmentByJob(c.Param("jobId"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"assessment": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": rec})
}

// GetAll lists every assessment. Debug convenience for the builder.
func (ac *Controller) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assessments": ac.Store.Assessments()})
}

// Upsert creates or updates the assessment for a job, keyed by jobId. An
// existing record is updated in place preserving its id; totalQuestions is
// recomputed server-side from sections on every save.
func (ac *Controller) Upsert(c *gin.Context) {
	incoming := model.Assessment{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, ac.Store.UpsertAssessment(c.Param("jobId"), incoming))
}

type submission struct {
	Responses map[string]any `json:"responses" binding:"required"`
}

// Submit acknowledges a response payload keyed by section-question
// coordinates. Responses are fire-and-forget: they are not persisted as an
// entity.
func (ac *Controller) Submit(c *gin.Context) {
	var sub submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid submission body: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "responses": sub.Responses})
}
