// internal/workers/matching/calculate-job-match/handler_test.go
package calculatejobmatch

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) (*Handler, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	config := LoadConfig()
	config.CacheTTL = time.Minute
	return NewHandler(config, client, logger.NewTestLogger(t)), mr
}

func createTestInput() *Input {
	return &Input{
		StudentID:   "student-001",
		JobID:       "job-001",
		FieldOfWork: "engineering",
		Profile: &models.CandidateProfile{
			StudentID:  "student-001",
			CurrentGPA: 3.2,
			WorkExperience: []models.WorkExperience{
				{Company: "Acme", Role: "Intern"},
			},
			Certificates: []models.Certificate{{Name: "cert"}},
		},
		Job: &models.Job{
			ID:           "job-001",
			Title:        "Junior Software Engineer",
			Requirements: "Engineering degree preferred.",
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ComputesAndCaches(t *testing.T) {
	handler, mr := newTestHandler(t)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	// 35 field + 24 academic + 8 experience + 5 certificates
	assert.Equal(t, 72, output.MatchScore)
	assert.True(t, mr.Exists("match:student-001:job-001"))

	ttl := mr.TTL("match:student-001:job-001")
	assert.Equal(t, time.Minute, ttl)
}

func TestHandler_Execute_ServesFromCache(t *testing.T) {
	handler, _ := newTestHandler(t)
	input := createTestInput()

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	// A changed profile must not affect the cached result within the TTL.
	input.Profile.Certificates = nil
	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.MatchScore, second.MatchScore)
	assert.Equal(t, first.ScoreBreakdown, second.ScoreBreakdown)
}

func TestHandler_Execute_RecomputesAfterExpiry(t *testing.T) {
	handler, mr := newTestHandler(t)
	input := createTestInput()

	_, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, output.FromCache)
}

func TestHandler_Execute_WithoutCache(t *testing.T) {
	handler := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, 72, output.MatchScore)
}

func TestHandler_Execute_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing studentId", func(in *Input) { in.StudentID = "" }},
		{"missing jobId", func(in *Input) { in.JobID = "" }},
		{"missing profile", func(in *Input) { in.Profile = nil }},
		{"missing job", func(in *Input) { in.Job = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)
			input := createTestInput()
			tt.mutate(input)

			output, err := handler.Execute(context.Background(), input)

			require.Error(t, err)
			assert.Nil(t, output)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeSubmissionValidationFailed, stdErr.Code)
		})
	}
}
