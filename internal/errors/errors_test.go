package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesExistingAppError(t *testing.T) {
	original := New(CodeResourceInUse, "still attached")
	wrapped := Wrap(fmt.Errorf("outer: %w", original), CodePlatformAPIError, "api call failed")

	assert.Equal(t, CodeResourceInUse, wrapped.Code)
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternal, "never happened"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeResourceNotFound, GetCode(New(CodeResourceNotFound, "gone")))
	assert.Equal(t, CodeUnknown, GetCode(stderrs.New("plain")))
	assert.True(t, Is(New(CodeTimeout, "slow"), CodeTimeout))
	assert.False(t, Is(stderrs.New("plain"), CodeTimeout))
}

func TestUserFacingMessageWalksChain(t *testing.T) {
	inner := NewUserFacing(CodeConfigValidation, "Region missing.", "Set AWS_REGION.")
	outer := Wrap(fmt.Errorf("bootstrap: %w", inner), CodeInternal, "startup failed")

	msg, suggestion, ok := GetUserFacingMessage(outer)
	assert.True(t, ok)
	assert.Equal(t, "Region missing.", msg)
	assert.Equal(t, "Set AWS_REGION.", suggestion)
}

func TestUserFacingMessageDefault(t *testing.T) {
	msg, suggestion, ok := GetUserFacingMessage(stderrs.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, "An unexpected error occurred.", msg)
	assert.Equal(t, "Check logs for more details.", suggestion)
}
