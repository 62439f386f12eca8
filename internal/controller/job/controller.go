// Package job provides HTTP handlers for job board operations.
package job

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

// DefaultPageSize applies when GET /jobs carries no pageSize.
const DefaultPageSize = 10

// Controller handles job related endpoints.
type Controller struct {
	Store *store.Store
}

// NewController creates a new instance of Controller.
func NewController(st *store.Store) *Controller {
	return &Controller{Store: st}
}

// GetJobs fetches the job page matching the query.
// @Summary Get jobs based on query
// @Description Search matches title substring case-insensitive; status, experienceRequired and jobPosition are exact filters; skills is a comma-separated contains-all filter; sort orders by manual rank asc or desc; total counts the filtered set before pagination
// @Tags Jobs
// @Produce json
// @Param search query string false "Substring of job title, case insensitive"
// @Param status query string false "active or archived, must exactly match"
// @Param experienceRequired query string false "Fresher, Intermediate or Experienced, must exactly match"
// @Param jobPosition query string false "Employment type, must exactly match"
// @Param skills query string false "Comma separated skills, job must contain every one"
// @Param sort query string false "asc or desc by manual order"
// @Param page query integer false "1-indexed page"
// @Param pageSize query integer false "Page length, defaults to 10"
// @Success 200 {object} map[string]interface{} "jobs page plus total"
// @Router /jobs [get]
func (jc *Controller) GetJobs(c *gin.Context) {
	params := query.JobParams{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		Experience:  c.Query("experienceRequired"),
		JobPosition: c.Query("jobPosition"),
		Skills:      c.Query("skills"),
		Sort:        c.Query("sort"),
		Page:        utilities.IntQuery(c, "page", 1),
		PageSize:    utilities.IntQuery(c, "pageSize", DefaultPageSize),
	}

	page, total := query.Jobs(jc.Store.Jobs(), params)
	c.JSON(http.StatusOK, gin.H{"jobs": page, "total": total})
}

// CreateJob creates a job from the request body. The server assigns id,
// createdAt and a derived slug when absent.
// @Summary Create job based on given json structure
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Job body model.Job true "Input job information"
// @Success 201 {object} model.Job "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct or slug"
// @Router /jobs [post]
func (jc *Controller) CreateJob(c *gin.Context) {
	newJob := model.Job{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&newJob); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if newJob.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Job title must be provided"})
		return
	}
	if newJob.Slug == "" {
		newJob.Slug = model.Slugify(newJob.Title)
	}
	if !model.ValidSlug(newJob.Slug) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid slug %q: lowercase letters, digits and hyphens only", newJob.Slug),
		})
		return
	}

	c.JSON(http.StatusCreated, jc.Store.CreateJob(newJob))
}

// EditJob partially updates a job. Fields omitted from the body are left
// untouched; an empty body is a no-op returning the record unchanged.
// @Summary Patch job fields based on given json structure
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "ID of desired job"
// @Success 200 {object} model.Job "Successfully updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [patch]
func (jc *Controller) EditJob(c *gin.Context) {
	patch, err := utilities.DecodePatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	updated, err := jc.Store.PatchJob(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteJob removes the given job ID.
// @Summary Delete given job ID
// @Tags Jobs
// @Produce json
// @Param id path string true "ID of desired job"
// @Success 200 {object} utilities.MessageResponse "Successfully deleted job"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (jc *Controller) DeleteJob(c *gin.Context) {
	if err := jc.Store.DeleteJob(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}

