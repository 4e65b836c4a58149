package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/model"
)

func (api *API) jobsAvailable(c *gin.Context) bool {
	if api.jobs == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeFeatureNotAvailable, "Job management is not enabled")
		return false
	}
	return true
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	if !api.jobsAvailable(c) {
		return
	}
	jobID := c.Param("jobId")

	job, err := api.jobs.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally filtered by ?status=
func (api *API) ListJobsHandler(c *gin.Context) {
	if !api.jobsAvailable(c) {
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		if !status.Valid() {
			result := &ValidationResult{Valid: true}
			result.AddError("status", "Unknown job status '"+statusParam+"'")
			SendValidationError(c, result)
			return
		}
		statusFilter = &status
	}

	jobs := api.jobs.ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if !api.jobsAvailable(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":          api.jobs.GetMetrics(),
		"success_rate":     api.jobs.GetJobSuccessRate(),
		"current_workload": api.jobs.GetCurrentWorkload(),
	})
}
