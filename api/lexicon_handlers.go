package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LexiconStatsHandler describes the loaded lexicon, loading it if needed.
func (api *API) LexiconStatsHandler(c *gin.Context) {
	stats, err := api.pipeline.Stats()
	if err != nil {
		SendPipelineError(c, "lexicon load", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReloadLexiconHandler starts a background reload of the lexicon. The
// current lexicon keeps serving until the new one is ready.
func (api *API) ReloadLexiconHandler(c *gin.Context) {
	jobID, err := api.pipeline.ReloadAsync()
	if err != nil {
		SendJobExecutionError(c, "lexicon reload", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "accepted",
		"message":    "Lexicon reload started",
		"job_id":     jobID,
		"status_url": "/jobs/" + jobID,
	})
}
