// internal/workers/admission/promote-from-waitlist/handler_test.go
package promotefromwaitlist

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

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := store.New(db, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), st, logger.NewTestLogger(t)), mock
}

var courseAppColumns = []string{
	"id", "student_id", "institution_id", "course_id", "status",
	"qualification_score", "motivation", "final_admission_confirmed",
	"promoted_from_waiting", "decline_reason", "created_at", "updated_at",
}

func TestHandler_Execute_Promotes(t *testing.T) {
	handler, mock := newTestHandler(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WithArgs("inst-001", "course-001", models.StatusWaiting).
		WillReturnRows(sqlmock.NewRows(courseAppColumns).AddRow(
			"app-001", "student-001", "inst-001", "course-001", models.StatusWaiting,
			50, "", false, false, "", now, now,
		))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`UPDATE course_applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), &Input{
		InstitutionID: "inst-001",
		CourseID:      "course-001",
	})

	require.NoError(t, err)
	assert.True(t, output.Promoted)
	assert.Equal(t, "app-001", output.PromotedApplicationID)
	assert.Equal(t, "student-001", output.PromotedStudentID)
	require.NotNil(t, output.Notification)
	assert.Equal(t, models.NotificationAdmissionPromoted, output.Notification.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmptyWaitlistCompletesWithoutPromotion(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WillReturnRows(sqlmock.NewRows(courseAppColumns))
	mock.ExpectCommit()

	output, err := handler.Execute(context.Background(), &Input{
		InstitutionID: "inst-001",
		CourseID:      "course-001",
	})

	require.NoError(t, err)
	assert.False(t, output.Promoted)
	assert.Empty(t, output.PromotedApplicationID)
	assert.Nil(t, output.Notification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{InstitutionID: "inst-001"})

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSubmissionValidationFailed, stdErr.Code)
}
