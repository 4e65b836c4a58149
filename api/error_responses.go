package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-emoji-video/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrorCodePictogramNotFound   ErrorCode = "PICTOGRAM_NOT_FOUND"
	ErrorCodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON         ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery        ErrorCode = "INVALID_QUERY"
	ErrorCodeLexiconUnavailable  ErrorCode = "LEXICON_UNAVAILABLE"
	ErrorCodeFeatureNotAvailable ErrorCode = "FEATURE_NOT_AVAILABLE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with one detail per invalid field
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendPictogramNotFoundError sends a standardized pictogram not found error
func SendPictogramNotFoundError(c *gin.Context, identifier string) {
	SendError(c, http.StatusNotFound, ErrorCodePictogramNotFound,
		"Pictogram '"+identifier+"' not found")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendLexiconUnavailableError reports a lexicon that could not be loaded.
// Clients cannot fix this by changing the request.
func SendLexiconUnavailableError(c *gin.Context, err error) {
	SendError(c, http.StatusServiceUnavailable, ErrorCodeLexiconUnavailable,
		"Lexicon unavailable: "+err.Error())
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendPipelineError maps an error returned by the pipeline onto a response.
// Anything it does not recognize is reported as an internal error of operation.
func SendPipelineError(c *gin.Context, operation string, err error) {
	var validationErr *internalErrors.ValidationError
	var pictogramErr *internalErrors.PictogramNotFoundError
	var jobErr *internalErrors.JobNotFoundError

	switch {
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", ErrorDetail{
			Field:   validationErr.Field,
			Message: validationErr.Message,
			Code:    "VALIDATION_ERROR",
		})
	case errors.Is(err, internalErrors.ErrConfig):
		SendLexiconUnavailableError(c, err)
	case errors.As(err, &pictogramErr):
		SendPictogramNotFoundError(c, pictogramErr.Identifier)
	case errors.As(err, &jobErr):
		SendJobNotFoundError(c, jobErr.JobID)
	default:
		SendInternalError(c, operation, err)
	}
}
