package state

import (
	"testing"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Score Bands
// ==========================

func TestBandFor(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected ScoreBand
	}{
		{"zero", 0, BandBelow},
		{"just below waitlist", 39, BandBelow},
		{"waitlist floor", 40, BandWaitlist},
		{"waitlist ceiling", 59, BandWaitlist},
		{"admit floor", 60, BandAdmit},
		{"top", 100, BandAdmit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandFor(tt.score, 0, 0))
		})
	}
}

func TestBandFor_CustomThresholds(t *testing.T) {
	assert.Equal(t, BandAdmit, BandFor(70, 70, 50))
	assert.Equal(t, BandWaitlist, BandFor(69, 70, 50))
	assert.Equal(t, BandBelow, BandFor(49, 70, 50))
}

// ==========================
// Transitions
// ==========================

func TestNext_LegalTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     models.ApplicationStatus
		action   Action
		band     ScoreBand
		expected models.ApplicationStatus
	}{
		{"accept in admit band", models.StatusPending, ActionAccept, BandAdmit, models.StatusAccepted},
		{"waitlist in waitlist band", models.StatusPending, ActionWaitlist, BandWaitlist, models.StatusWaiting},
		{"reject needs no band", models.StatusPending, ActionReject, BandBelow, models.StatusRejected},
		{"candidate decline", models.StatusAccepted, ActionDecline, BandBelow, models.StatusRejected},
		{"cascade decline", models.StatusAccepted, ActionCascadeDecline, BandBelow, models.StatusDeclinedByStudent},
		{"waitlist promotion", models.StatusWaiting, ActionPromote, BandBelow, models.StatusAccepted},
		{"reject from waitlist", models.StatusWaiting, ActionReject, BandBelow, models.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Next(tt.from, tt.action, tt.band)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, next)
		})
	}
}

func TestNext_AcceptBelowThresholdIsPolicyViolation(t *testing.T) {
	// Accepting with an institution-review score of 55 puts the
	// application in the waitlist band; the accept must fail but the
	// waitlist move must succeed.
	band := BandFor(55, 0, 0)

	_, err := Next(models.StatusPending, ActionAccept, band)
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePolicyViolation, stdErr.Code)

	next, err := Next(models.StatusPending, ActionWaitlist, band)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, next)
}

func TestNext_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   models.ApplicationStatus
		action Action
		band   ScoreBand
	}{
		{"terminal rejected cannot be accepted", models.StatusRejected, ActionAccept, BandAdmit},
		{"terminal declined cannot be promoted", models.StatusDeclinedByStudent, ActionPromote, BandAdmit},
		{"pending cannot be promoted", models.StatusPending, ActionPromote, BandAdmit},
		{"accepted cannot be re-accepted", models.StatusAccepted, ActionAccept, BandAdmit},
		{"waiting cannot be waitlisted again", models.StatusWaiting, ActionWaitlist, BandWaitlist},
		{"waitlist in admit band only", models.StatusPending, ActionWaitlist, BandAdmit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Next(tt.from, tt.action, tt.band)
			require.Error(t, err)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodePolicyViolation, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

// ==========================
// Reviewer Decisions
// ==========================

func TestActionForStatus(t *testing.T) {
	tests := []struct {
		target   models.ApplicationStatus
		expected Action
		wantErr  bool
	}{
		{models.StatusAccepted, ActionAccept, false},
		{models.StatusWaiting, ActionWaitlist, false},
		{models.StatusRejected, ActionReject, false},
		{models.StatusPending, "", true},
		{models.StatusDeclinedByStudent, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			action, err := ActionForStatus(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, action)
		})
	}
}
