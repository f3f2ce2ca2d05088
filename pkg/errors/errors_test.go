package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarvestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetch("qa_shu", "question list", cause)

	assert.Equal(t, "[fetch] qa_shu: question list - connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := NewInvalidContent("qa_san", "body page")
	assert.Equal(t, "[invalid_content] qa_san: body page", bare.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewFetch("s", "m", nil).IsRetryable())
	assert.False(t, NewParse("s", "m", nil).IsRetryable())
	assert.False(t, NewCorruptCache("s", "m", nil).IsRetryable())
	assert.False(t, NewStore("s", "m", nil).IsRetryable())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeParse, TypeOf(NewParse("s", "m", nil)))
	assert.Equal(t, ErrorTypeStore, TypeOf(NewStore("s", "m", nil)))

	// Wrapped harvest errors keep their type
	wrapped := fmt.Errorf("run failed: %w", NewCorruptCache("s", "m", nil))
	assert.Equal(t, ErrorTypeCorruptCache, TypeOf(wrapped))

	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}
