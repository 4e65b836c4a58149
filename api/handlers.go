package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-emoji-video/internal/analytics"
	"github.com/gcbaptista/go-emoji-video/internal/engine"
	"github.com/gcbaptista/go-emoji-video/internal/jobs"
	"github.com/gcbaptista/go-emoji-video/services"
)

// API holds dependencies for API handlers, primarily the text to pictogram pipeline.
type API struct {
	pipeline  services.Pipeline
	jobs      *jobs.Manager      // nil disables the job routes
	analytics *analytics.Service // nil disables the analytics route
}

// NewAPI creates a new API handler structure.
func NewAPI(pipeline services.Pipeline, jobManager *jobs.Manager, analyticsService *analytics.Service) *API {
	return &API{
		pipeline:  pipeline,
		jobs:      jobManager,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes served by an engine.
func SetupRoutes(router *gin.Engine, eng *engine.Engine) {
	apiHandler := NewAPI(eng, eng.JobManager(), eng.Analytics())

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Text pipeline routes
	router.POST("/tokenize", apiHandler.TokenizeHandler)       // Split text into tokens
	router.GET("/search", apiHandler.SearchHandler)            // Rank pictograms for one keyword
	router.POST("/process", apiHandler.ProcessHandler)         // Tokenize and search every token, optionally as a job
	router.POST("/sequence", apiHandler.SequenceHandler)       // Lay chosen candidates out per character
	router.GET("/pictograms/:id", apiHandler.PictogramHandler) // Lexicon entry and asset location

	// Lexicon routes
	lexiconRoutes := router.Group("/lexicon")
	{
		lexiconRoutes.GET("/stats", apiHandler.LexiconStatsHandler)      // Sizes of the loaded lexicon
		lexiconRoutes.POST("/_reload", apiHandler.ReloadLexiconHandler) // Reload the lexicon in the background
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally by status
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}
}
