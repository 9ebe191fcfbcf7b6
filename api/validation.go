// Package api provides the HTTP surface of the question-answering server.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/services"
)

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

// IsBlankQuery reports whether a query has no non-whitespace characters
func IsBlankQuery(query string) bool {
	return strings.TrimSpace(query) == ""
}

// ResolveMatches fills omitted match counts from defaults and validates them.
// Counts must be between 1 and config.MaxMatches.
func ResolveMatches(req *services.QueryRequest, defaults config.PipelineSettings) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	fileMatches := defaults.FileMatches
	if req.FileMatches != nil {
		fileMatches = *req.FileMatches
	}
	sentenceMatches := defaults.SentenceMatches
	if req.SentenceMatches != nil {
		sentenceMatches = *req.SentenceMatches
	}

	validateMatchCount(result, "file_matches", fileMatches)
	validateMatchCount(result, "sentence_matches", sentenceMatches)

	return fileMatches, sentenceMatches, result
}

// validateMatchCount checks one match count
func validateMatchCount(result *ValidationResult, field string, value int) {
	if value < 1 {
		result.AddError(field, fmt.Sprintf("%s must be greater than 0", field))
		return
	}
	if value > config.MaxMatches {
		result.AddError(field, fmt.Sprintf("%s cannot exceed %d", field, config.MaxMatches))
	}
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
