package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/google/uuid"
)

// Resolution is the outcome of selecting a final admission: the confirmed
// application, every acceptance that was cascaded away, and the
// notifications to emit after commit.
type Resolution struct {
	Chosen        *models.CourseApplication
	Declined      []*models.CourseApplication
	Promoted      []*models.CourseApplication
	Notifications []models.Notification
}

// SelectFinalAdmission confirms one accepted application as the student's
// definitive enrollment. Every other acceptance is declined with a recorded
// reason and its slot refilled from the waitlist. The whole cascade commits
// atomically: on any failure no status changes and no notification leaks.
func (s *Store) SelectFinalAdmission(ctx context.Context, studentID, chosenApplicationID string) (*Resolution, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	res := &Resolution{}

	err = func() error {
		chosen, err := scanCourseApplication(tx.QueryRowContext(ctx,
			`SELECT `+courseApplicationColumns+` FROM course_applications
			 WHERE id = $1 FOR UPDATE`, chosenApplicationID))
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("application", chosenApplicationID)
		}
		if err != nil {
			return err
		}
		if chosen.StudentID != studentID {
			return errors.NewUnauthorizedError(fmt.Sprintf(
				"application %s does not belong to student %s", chosenApplicationID, studentID))
		}
		if chosen.Status != models.StatusAccepted {
			return errors.NewPolicyViolationError(fmt.Sprintf(
				"final admission requires status %q, application is %q",
				models.StatusAccepted, chosen.Status))
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT `+courseApplicationColumns+` FROM course_applications
			 WHERE student_id = $1 AND status = $2 AND id <> $3
			 ORDER BY created_at ASC FOR UPDATE`,
			studentID, models.StatusAccepted, chosen.ID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		var others []*models.CourseApplication
		for rows.Next() {
			app, err := scanCourseApplication(rows)
			if err != nil {
				return err
			}
			others = append(others, app)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx,
			`UPDATE course_applications
			 SET final_admission_confirmed = true, updated_at = $1
			 WHERE id = $2`, now, chosen.ID,
		); err != nil {
			return err
		}
		chosen.FinalAdmissionConfirmed = true
		res.Chosen = chosen

		reason := fmt.Sprintf("student confirmed final admission at institution %s", chosen.InstitutionID)
		for _, other := range others {
			if _, err := tx.ExecContext(ctx,
				`UPDATE course_applications
				 SET status = $1, decline_reason = $2, updated_at = $3
				 WHERE id = $4`,
				models.StatusDeclinedByStudent, reason, now, other.ID,
			); err != nil {
				return err
			}
			other.Status = models.StatusDeclinedByStudent
			other.DeclineReason = reason
			res.Declined = append(res.Declined, other)

			res.Notifications = append(res.Notifications, models.Notification{
				ID:      uuid.NewString(),
				UserID:  other.InstitutionID,
				Type:    models.NotificationStudentDeclined,
				Title:   "Offer declined",
				Message: "A student has declined their admission offer; the slot has been released.",
				Link:    "/applications/" + other.ID,
				Read:    false,
			})

			promoted, notification, err := s.promoteLocked(ctx, tx, other.InstitutionID, other.CourseID)
			if err != nil {
				return err
			}
			if promoted != nil {
				res.Promoted = append(res.Promoted, promoted)
				res.Notifications = append(res.Notifications, *notification)
			}
		}
		return nil
	}()

	if err := s.finish(tx, err); err != nil {
		return nil, err
	}

	for range res.Declined {
		metrics.StatusTransitions.WithLabelValues(
			string(models.StatusAccepted), string(models.StatusDeclinedByStudent)).Inc()
	}
	s.audit(ctx, "course_application", res.Chosen.ID, "final_admission",
		fmt.Sprintf("declined=%d promoted=%d", len(res.Declined), len(res.Promoted)))
	return res, nil
}
