package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network failures, non-2xx responses and timeouts
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParse represents failures to locate expected page structure
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeCorruptCache represents unreadable cached artifacts
	ErrorTypeCorruptCache ErrorType = "corrupt_cache"
	// ErrorTypeInvalidContent represents placeholder or empty upstream content
	ErrorTypeInvalidContent ErrorType = "invalid_content"
	// ErrorTypeStore represents local filesystem failures
	ErrorTypeStore ErrorType = "store"
)

// HarvestError is the error carried across one source's harvesting run
type HarvestError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *HarvestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *HarvestError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth retrying
func (e *HarvestError) IsRetryable() bool {
	return e.Type == ErrorTypeFetch
}

// New creates a new HarvestError
func New(errType ErrorType, source, message string, err error) *HarvestError {
	return &HarvestError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *HarvestError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewParse creates a new parse error
func NewParse(source, message string, err error) *HarvestError {
	return New(ErrorTypeParse, source, message, err)
}

// NewCorruptCache creates a new corrupt cache error
func NewCorruptCache(source, message string, err error) *HarvestError {
	return New(ErrorTypeCorruptCache, source, message, err)
}

// NewInvalidContent creates a new invalid content error
func NewInvalidContent(source, message string) *HarvestError {
	return New(ErrorTypeInvalidContent, source, message, nil)
}

// NewStore creates a new store error
func NewStore(source, message string, err error) *HarvestError {
	return New(ErrorTypeStore, source, message, err)
}

// TypeOf returns the harvest error type of err, or "" if err is not a HarvestError
func TypeOf(err error) ErrorType {
	var he *HarvestError
	if errors.As(err, &he) {
		return he.Type
	}
	return ""
}
