// Package api provides the HTTP surface of the emoji video core.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-emoji-video/internal/lexicon"
)

// MaxTextChars bounds the text accepted by /tokenize and /process.
const MaxTextChars = 5000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateText validates free text submitted for tokenization. Empty text
// is valid; it tokenizes to no tokens.
func ValidateText(text string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !utf8.ValidString(text) {
		result.AddError("text", "Text must be valid UTF-8")
		return result
	}

	if n := utf8.RuneCountInString(text); n > MaxTextChars {
		result.AddError("text", fmt.Sprintf("Text has %d characters, the maximum is %d", n, MaxTextChars))
	}

	return result
}

// ValidateProcessText validates text submitted for processing, which must
// not be blank.
func ValidateProcessText(text string) *ValidationResult {
	if strings.TrimSpace(text) == "" {
		result := &ValidationResult{Valid: true}
		result.AddError("text", "Text is required")
		return result
	}
	return ValidateText(text)
}

// ValidateLimit validates the optional result cap of a search
func ValidateLimit(limit int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if limit < 0 {
		result.AddError("limit", "Limit cannot be negative (use 0 for no limit)")
	}

	return result
}

// ValidateIdentifier validates a pictogram identifier path parameter
func ValidateIdentifier(identifier string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if identifier == "" {
		result.AddError("id", "Pictogram identifier is required")
		return result
	}

	if _, err := lexicon.GlyphFromIdentifier(identifier); err != nil {
		result.AddError("id", "Malformed pictogram identifier: "+err.Error())
	}

	return result
}

// ValidateSequenceRequest validates the shape of a sequence request. The
// builder checks the values themselves.
func ValidateSequenceRequest(req *SequenceRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Tokens) == 0 {
		result.AddError("tokens", "At least one token is required")
	}

	if len(req.Selections) != len(req.Tokens) {
		result.AddError("selections", fmt.Sprintf("Expected %d candidate lists (one per token), got %d", len(req.Tokens), len(req.Selections)))
	}

	if len(req.CharCounts) != len(req.Tokens) {
		result.AddError("char_counts", fmt.Sprintf("Expected %d character counts (one per token), got %d", len(req.Tokens), len(req.CharCounts)))
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
