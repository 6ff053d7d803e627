// internal/workers/application/validate-submission/handler_test.go
package validatesubmission

import (
	"context"
	"strings"
	"testing"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	handler, err := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return handler
}

func validCourseSubmission() map[string]interface{} {
	return map[string]interface{}{
		"studentId":     "student-001",
		"institutionId": "inst-001",
		"courseId":      "course-001",
		"motivation":    "A short motivation.",
	}
}

func validJobSubmission() map[string]interface{} {
	return map[string]interface{}{
		"studentId":   "student-001",
		"jobId":       "job-001",
		"fieldOfWork": "engineering",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ValidSubmissions(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name       string
		kind       string
		submission map[string]interface{}
	}{
		{"course submission", "course", validCourseSubmission()},
		{"job submission", "job", validJobSubmission()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{
				SubmissionKind: tt.kind,
				Submission:     tt.submission,
			})
			require.NoError(t, err)
			assert.True(t, output.Valid)
			assert.Empty(t, output.ValidationErrors)
		})
	}
}

func TestHandler_Execute_SchemaViolations(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name       string
		kind       string
		submission map[string]interface{}
	}{
		{
			name: "missing required course fields",
			kind: "course",
			submission: map[string]interface{}{
				"studentId": "student-001",
			},
		},
		{
			name: "empty studentId",
			kind: "course",
			submission: map[string]interface{}{
				"studentId":     "",
				"institutionId": "inst-001",
				"courseId":      "course-001",
			},
		},
		{
			name: "wrong type",
			kind: "job",
			submission: map[string]interface{}{
				"studentId":   "student-001",
				"jobId":       42,
				"fieldOfWork": "engineering",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{
				SubmissionKind: tt.kind,
				Submission:     tt.submission,
			})
			require.NoError(t, err)
			assert.False(t, output.Valid)
			assert.NotEmpty(t, output.ValidationErrors)
		})
	}
}

func TestHandler_Execute_MotivationLength(t *testing.T) {
	handler := newTestHandler(t)

	submission := validCourseSubmission()
	submission["motivation"] = strings.Repeat("x", handler.config.MaxMotivationLength+1)

	output, err := handler.Execute(context.Background(), &Input{
		SubmissionKind: "course",
		Submission:     submission,
	})

	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.ValidationErrors, 1)
	assert.Contains(t, output.ValidationErrors[0], "motivation exceeds")
}

func TestHandler_Execute_UnknownWorkField(t *testing.T) {
	handler := newTestHandler(t)

	submission := validJobSubmission()
	submission["fieldOfWork"] = "astrology"

	output, err := handler.Execute(context.Background(), &Input{
		SubmissionKind: "job",
		Submission:     submission,
	})

	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.ValidationErrors, 1)
	assert.Contains(t, output.ValidationErrors[0], "not a recognized work field")
}

func TestHandler_Execute_UnknownKind(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		SubmissionKind: "internship",
		Submission:     validJobSubmission(),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSubmissionValidationFailed, stdErr.Code)
}
