package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrConfig is returned when the lexicon or a priority phrase file is structurally invalid.
	// It is a process-start failure, not a per-call error.
	ErrConfig = errors.New("invalid lexicon configuration")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrPictogramNotFound is returned when an identifier is not part of the lexicon
	ErrPictogramNotFound = errors.New("pictogram not found")
)

// ConfigError represents a fatal configuration error with context
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid lexicon configuration '%s': %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid lexicon configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// PictogramNotFoundError represents an unknown pictogram identifier
type PictogramNotFoundError struct {
	Identifier string
}

func (e *PictogramNotFoundError) Error() string {
	return fmt.Sprintf("pictogram '%s' not found in lexicon", e.Identifier)
}

func (e *PictogramNotFoundError) Is(target error) bool {
	return target == ErrPictogramNotFound
}

// NewPictogramNotFoundError creates a new PictogramNotFoundError
func NewPictogramNotFoundError(identifier string) *PictogramNotFoundError {
	return &PictogramNotFoundError{Identifier: identifier}
}

// ValidationError represents an input validation error with context.
// Callers are expected to correct the input and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
