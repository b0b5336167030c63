package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmission_IsPending(t *testing.T) {
	sub := &Submission{Status: SubmissionStatusPending}
	assert.True(t, sub.IsPending())

	sub.Status = SubmissionStatusApproved
	assert.False(t, sub.IsPending())
}

func TestSubmission_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		terminal bool
	}{
		{"pending не терминален", SubmissionStatusPending, false},
		{"approved терминален", SubmissionStatusApproved, true},
		{"rejected терминален", SubmissionStatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Submission{Status: tt.status}
			assert.Equal(t, tt.terminal, sub.IsTerminal())
		})
	}
}

func TestIsValidTargetStatus(t *testing.T) {
	assert.True(t, IsValidTargetStatus(SubmissionStatusApproved))
	assert.True(t, IsValidTargetStatus(SubmissionStatusRejected))

	// pending не является целью перехода: это только начальное состояние
	assert.False(t, IsValidTargetStatus(SubmissionStatusPending))
	assert.False(t, IsValidTargetStatus(""))
	assert.False(t, IsValidTargetStatus("cancelled"))
}
