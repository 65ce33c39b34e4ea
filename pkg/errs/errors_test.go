package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("failed to save profile: %w", RemoteWrite("saveProfile", errors.New("connection reset")))

	assert.Equal(t, KindRemoteWrite, KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("signUp", "phone number must be 8 digits")))
	assert.True(t, IsNotFound(NotFound("getMember", "no member")))
	assert.True(t, IsForbidden(Forbidden("publish", "admin only")))
	assert.True(t, IsConflict(Conflict("signUp", "already registered")))
	assert.False(t, IsNotFound(Validation("signUp", "bad")))
}

func TestRemoteRead_Timeout(t *testing.T) {
	err := RemoteRead("getSkills", context.DeadlineExceeded)

	assert.Contains(t, err.Error(), "timed out")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"validation", Validation("login", "wrong PIN"), "Wrong PIN."},
		{"conflict", fmt.Errorf("wrapped: %w", Conflict("signUp", "phone number already registered")), "Phone number already registered."},
		{"forbidden", Forbidden("publish", "only admins can publish a roster"), "Only admins can publish a roster."},
		{"not found", NotFound("getProfile", "no profile"), "Nothing found."},
		{"read", RemoteRead("getRoster", errors.New("boom")), "Data unavailable, please try again."},
		{"write", RemoteWrite("saveRoster", errors.New("boom")), "Failed to save, please try again."},
		{"unclassified", errors.New("boom"), "Unexpected error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}
