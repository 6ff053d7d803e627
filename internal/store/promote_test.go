package store

import (
	"context"
	"testing"

	"admissions-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Waitlist Promotion
// ==========================

func TestPromoteFromWaitlist_OldestEligibleWins(t *testing.T) {
	store, mock := newTestStore(t)
	older := testCourseApp("app-101", models.StatusWaiting)
	older.StudentID = "student-101"
	newer := testCourseApp("app-102", models.StatusWaiting)
	newer.StudentID = "student-102"

	mock.ExpectBegin()
	rows := sqlmock.NewRows(courseAppColumns)
	courseAppRow(rows, older)
	courseAppRow(rows, newer)
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WithArgs("inst-001", "course-001", models.StatusWaiting).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`UPDATE course_applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAudit(mock)

	promoted, notification, err := store.PromoteFromWaitlist(context.Background(), "inst-001", "course-001")

	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "app-101", promoted.ID)
	assert.Equal(t, models.StatusAccepted, promoted.Status)
	assert.True(t, promoted.PromotedFromWaiting)
	require.NotNil(t, notification)
	assert.Equal(t, "student-101", notification.UserID)
	assert.Equal(t, models.NotificationAdmissionPromoted, notification.Type)
	assert.False(t, notification.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteFromWaitlist_SkipsStudentAlreadyAdmitted(t *testing.T) {
	store, mock := newTestStore(t)
	admittedElsewhere := testCourseApp("app-101", models.StatusWaiting)
	admittedElsewhere.StudentID = "student-101"
	eligible := testCourseApp("app-102", models.StatusWaiting)
	eligible.StudentID = "student-102"

	mock.ExpectBegin()
	rows := sqlmock.NewRows(courseAppColumns)
	courseAppRow(rows, admittedElsewhere)
	courseAppRow(rows, eligible)
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WillReturnRows(rows)
	// The oldest candidate already holds an acceptance at the institution.
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`UPDATE course_applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectAudit(mock)

	promoted, _, err := store.PromoteFromWaitlist(context.Background(), "inst-001", "course-001")

	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "app-102", promoted.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteFromWaitlist_EmptyWaitlistIsNoOp(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WillReturnRows(sqlmock.NewRows(courseAppColumns))
	mock.ExpectCommit()

	promoted, notification, err := store.PromoteFromWaitlist(context.Background(), "inst-001", "course-001")

	require.NoError(t, err)
	assert.Nil(t, promoted)
	assert.Nil(t, notification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteFromWaitlist_NoEligibleCandidates(t *testing.T) {
	store, mock := newTestStore(t)
	waiting := testCourseApp("app-101", models.StatusWaiting)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM course_applications`).
		WillReturnRows(courseAppRow(sqlmock.NewRows(courseAppColumns), waiting))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	promoted, notification, err := store.PromoteFromWaitlist(context.Background(), "inst-001", "course-001")

	require.NoError(t, err)
	assert.Nil(t, promoted)
	assert.Nil(t, notification)
	assert.NoError(t, mock.ExpectationsWereMet())
}
