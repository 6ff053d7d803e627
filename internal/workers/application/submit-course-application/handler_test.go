// internal/workers/application/submit-course-application/handler_test.go
package submitcourseapplication

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
	"admissions-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := store.New(db, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), st, logger.NewTestLogger(t)), mock
}

func createTestInput() *Input {
	return &Input{
		StudentID:     "student-001",
		InstitutionID: "inst-001",
		CourseID:      "course-001",
		Motivation:    "I have wanted to study this since secondary school.",
		Profile: &models.CandidateProfile{
			StudentID:  "student-001",
			CurrentGPA: 3.4,
			Subjects: []models.SubjectGrade{
				{Subject: "English Language", Grade: "B"},
				{Subject: "History", Grade: "C"},
			},
		},
		Course: &models.Course{
			ID:            "course-001",
			InstitutionID: "inst-001",
			Name:          "Business Administration",
			Level:         "undergraduate",
		},
	}
}

func expectSuccessfulSubmission(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count FROM application_quotas`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO course_applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO application_quotas`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler, mock := newTestHandler(t)
	expectSuccessfulSubmission(mock)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, models.CourseApplicationID("student-001", "inst-001", "course-001"), output.ApplicationID)
	assert.Equal(t, string(models.StatusPending), output.ApplicationStatus)
	assert.GreaterOrEqual(t, output.QualificationScore, 0)
	assert.LessOrEqual(t, output.QualificationScore, 100)

	_, err = time.Parse(time.RFC3339, output.CreatedAt)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DeterministicApplicationID(t *testing.T) {
	handler, mock := newTestHandler(t)
	expectSuccessfulSubmission(mock)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	// Retrying the same submission derives the same ID.
	assert.Equal(t, models.CourseApplicationID("student-001", "inst-001", "course-001"),
		output.ApplicationID)
}

// expectGuardChecksOnly covers submissions that pass the storage guards and
// are then rejected before the insert.
func expectGuardChecksOnly(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count FROM application_quotas`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()
}

func TestHandler_Execute_UnderQualified(t *testing.T) {
	handler, mock := newTestHandler(t)
	expectGuardChecksOnly(mock)

	input := createTestInput()
	input.Profile.CurrentGPA = 2.0
	input.Course.Requirements = "Minimum GPA of 3.0"

	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnderQualified, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_OverQualified(t *testing.T) {
	handler, mock := newTestHandler(t)
	expectGuardChecksOnly(mock)

	input := createTestInput()
	input.Profile.AcademicLevel = "masters"
	input.Course.Level = "undergraduate"

	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnderQualified, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateWinsOverEligibility(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count FROM application_quotas`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	// A resubmission by an under-qualified candidate is still a duplicate.
	input := createTestInput()
	input.Profile.CurrentGPA = 2.0
	input.Course.Requirements = "Minimum GPA of 3.0"

	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing studentId", func(in *Input) { in.StudentID = "" }},
		{"missing institutionId", func(in *Input) { in.InstitutionID = "" }},
		{"missing courseId", func(in *Input) { in.CourseID = "" }},
		{"missing profile", func(in *Input) { in.Profile = nil }},
		{"missing course", func(in *Input) { in.Course = nil }},
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

func TestHandler_Execute_QuotaExceeded(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count FROM application_quotas`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	output, err := handler.Execute(context.Background(), createTestInput())

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeQuotaExceeded, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
