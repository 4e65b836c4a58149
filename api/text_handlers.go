package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TextRequest carries free text for /tokenize and /process.
type TextRequest struct {
	Text  string `json:"text"`
	Async bool   `json:"async,omitempty"` // /process only: run as a background job
}

// SequenceRequest carries the chosen candidates of every token.
type SequenceRequest struct {
	Tokens     []string   `json:"tokens"`
	Selections [][]string `json:"selections"`  // Candidate identifiers per token, possibly empty
	CharCounts []int      `json:"char_counts"` // Character slots per token
}

// bindText binds a TextRequest and checks it with validate, writing the
// error response itself.
func bindText(c *gin.Context, validate func(string) *ValidationResult) (TextRequest, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return req, false
	}
	if result := validate(req.Text); result.HasErrors() {
		SendValidationError(c, result)
		return req, false
	}
	return req, true
}

// TokenizeHandler splits text into tokens. Text without any indexable
// character gives an empty token list.
func (api *API) TokenizeHandler(c *gin.Context) {
	req, ok := bindText(c, ValidateText)
	if !ok {
		return
	}

	tokens, err := api.pipeline.Tokenize(req.Text)
	if err != nil {
		SendPipelineError(c, "tokenize", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":   req.Text,
		"tokens": tokens,
		"count":  len(tokens),
	})
}

// ProcessHandler tokenizes text and collects the candidates of every token.
// With async set it answers 202 with the ID of the processing job.
func (api *API) ProcessHandler(c *gin.Context) {
	req, ok := bindText(c, ValidateProcessText)
	if !ok {
		return
	}

	if req.Async {
		jobID, err := api.pipeline.ProcessAsync(req.Text)
		if err != nil {
			SendPipelineError(c, "text processing", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":     "accepted",
			"message":    "Text processing started",
			"job_id":     jobID,
			"status_url": "/jobs/" + jobID,
		})
		return
	}

	processed, err := api.pipeline.Process(req.Text)
	if err != nil {
		SendPipelineError(c, "text processing", err)
		return
	}
	c.JSON(http.StatusOK, processed)
}

// SequenceHandler builds the per-character pictogram sequence. A sequence
// without any matched slot is still a 200; its warning field says so.
func (api *API) SequenceHandler(c *gin.Context) {
	var req SequenceRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSequenceRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	seq, err := api.pipeline.BuildSequence(req.Tokens, req.Selections, req.CharCounts)
	if err != nil {
		SendPipelineError(c, "sequence building", err)
		return
	}
	c.JSON(http.StatusOK, seq)
}
