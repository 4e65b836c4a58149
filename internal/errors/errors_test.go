package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("emojiNames.json", fmt.Errorf("unexpected token"))

	expectedMsg := "invalid lexicon configuration 'emojiNames.json': unexpected token"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrConfig) {
		t.Error("Expected error to match ErrConfig sentinel")
	}

	if errors.Is(err, ErrInvalidInput) {
		t.Error("Config error should not match ErrInvalidInput")
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	err := NewConfigError("", os.ErrNotExist)

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("Expected wrapped os.ErrNotExist to be reachable")
	}

	expectedMsg := "invalid lexicon configuration: " + os.ErrNotExist.Error()
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	wrapped := fmt.Errorf("load lexicon: %w", err)
	var cfgErr *ConfigError
	if !errors.As(wrapped, &cfgErr) {
		t.Fatal("Expected errors.As to find ConfigError")
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("job-123")

	expectedMsg := "job with ID 'job-123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestPictogramNotFoundError(t *testing.T) {
	err := NewPictogramNotFoundError("1F600")

	expectedMsg := "pictogram '1F600' not found in lexicon"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrPictogramNotFound) {
		t.Error("Expected error to match ErrPictogramNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("char_counts", "length must match tokens")

	expectedMsg := "validation error for field 'char_counts': length must match tokens"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "no valid characters")
	expectedMsg2 := "validation error: no valid characters"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("Validation error should not match ErrConfig")
	}
}
