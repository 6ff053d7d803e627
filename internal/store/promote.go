package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/google/uuid"
)

// PromoteFromWaitlist fills a vacated (institution, course) slot with the
// oldest eligible waiting application. Finding no candidate is a no-op, not
// an error. The returned notification must be emitted only after commit.
func (s *Store) PromoteFromWaitlist(ctx context.Context, institutionID, courseID string) (*models.CourseApplication, *models.Notification, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	var app *models.CourseApplication
	var notification *models.Notification

	err = func() error {
		var err error
		app, notification, err = s.promoteLocked(ctx, tx, institutionID, courseID)
		return err
	}()

	if err := s.finish(tx, err); err != nil {
		return nil, nil, err
	}

	if app != nil {
		s.audit(ctx, "course_application", app.ID, "promoted",
			fmt.Sprintf("institution=%s course=%s", institutionID, courseID))
	}
	return app, notification, nil
}

// promoteLocked runs the promotion inside the caller's transaction. Waiting
// entries are walked oldest first; an entry whose student already holds an
// accepted application at the institution is skipped, not failed, and the
// next oldest takes the slot.
func (s *Store) promoteLocked(ctx context.Context, tx *sql.Tx, institutionID, courseID string) (*models.CourseApplication, *models.Notification, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+courseApplicationColumns+` FROM course_applications
		 WHERE institution_id = $1 AND course_id = $2 AND status = $3
		 ORDER BY created_at ASC FOR UPDATE`,
		institutionID, courseID, models.StatusWaiting,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var waiting []*models.CourseApplication
	for rows.Next() {
		app, err := scanCourseApplication(rows)
		if err != nil {
			return nil, nil, err
		}
		waiting = append(waiting, app)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	for _, candidate := range waiting {
		if err := s.ensureNotAdmittedElsewhere(ctx, tx, candidate); err != nil {
			if stdErr, ok := errors.AsStandardError(err); ok && stdErr.Code == errors.ErrCodeAlreadyAdmittedAtInstitution {
				continue
			}
			return nil, nil, err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE course_applications
			 SET status = $1, promoted_from_waiting = true, updated_at = $2
			 WHERE id = $3`,
			models.StatusAccepted, time.Now().UTC(), candidate.ID,
		); err != nil {
			return nil, nil, err
		}
		candidate.Status = models.StatusAccepted
		candidate.PromotedFromWaiting = true

		metrics.WaitlistPromotions.Inc()
		metrics.StatusTransitions.WithLabelValues(
			string(models.StatusWaiting), string(models.StatusAccepted)).Inc()

		return candidate, promotionNotification(candidate), nil
	}

	return nil, nil, nil
}

func promotionNotification(app *models.CourseApplication) *models.Notification {
	return &models.Notification{
		ID:      uuid.NewString(),
		UserID:  app.StudentID,
		Type:    models.NotificationAdmissionPromoted,
		Title:   "Admission offer",
		Message: "A place opened up and your waiting application has been accepted.",
		Link:    "/applications/" + app.ID,
		Read:    false,
	}
}
