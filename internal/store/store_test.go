package store

import (
	"testing"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, logger.NewTestLogger(t)), mock
}

var courseAppColumns = []string{
	"id", "student_id", "institution_id", "course_id", "status",
	"qualification_score", "motivation", "final_admission_confirmed",
	"promoted_from_waiting", "decline_reason", "created_at", "updated_at",
}

func courseAppRow(rows *sqlmock.Rows, app *models.CourseApplication) *sqlmock.Rows {
	return rows.AddRow(
		app.ID, app.StudentID, app.InstitutionID, app.CourseID, app.Status,
		app.QualificationScore, app.Motivation, app.FinalAdmissionConfirmed,
		app.PromotedFromWaiting, app.DeclineReason, app.CreatedAt, app.UpdatedAt,
	)
}

func testCourseApp(id string, status models.ApplicationStatus) *models.CourseApplication {
	now := time.Now().UTC()
	return &models.CourseApplication{
		ID:                 id,
		StudentID:          "student-001",
		InstitutionID:      "inst-001",
		CourseID:           "course-001",
		Status:             status,
		QualificationScore: 65,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// expectAudit matches the best-effort audit insert that follows a committed
// operation.
func expectAudit(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
}
