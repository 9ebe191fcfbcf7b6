package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrUsage is returned when the command line is invoked with the wrong arguments
	ErrUsage = errors.New("usage error")

	// ErrCorpusUnavailable is returned when the corpus directory or one of its files cannot be read
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrDocumentNotFound is returned when a document is not part of the loaded corpus
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage is returned when no stopword list exists for the configured language
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// UsageError represents a wrong invocation at the command-line boundary
type UsageError struct {
	Usage   string
	Message string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s\nUsage: %s", e.Message, e.Usage)
	}
	return e.Message
}

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// NewUsageError creates a new UsageError
func NewUsageError(usage, message string) *UsageError {
	return &UsageError{Usage: usage, Message: message}
}

// CorpusError represents a failure to load the corpus with the offending path
type CorpusError struct {
	Path string
	Err  error
}

func (e *CorpusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load corpus at '%s': %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to load corpus at '%s'", e.Path)
}

func (e *CorpusError) Is(target error) bool {
	return target == ErrCorpusUnavailable
}

func (e *CorpusError) Unwrap() error {
	return e.Err
}

// NewCorpusError creates a new CorpusError
func NewCorpusError(path string, err error) *CorpusError {
	return &CorpusError{Path: path, Err: err}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocumentID: documentID}
}

// ValidationError represents an input validation error with context
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

// UnsupportedLanguageError names the language that has no stopword list
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("no stopword list available for language '%s'", e.Language)
}

func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// NewUnsupportedLanguageError creates a new UnsupportedLanguageError
func NewUnsupportedLanguageError(language string) *UnsupportedLanguageError {
	return &UnsupportedLanguageError{Language: language}
}
