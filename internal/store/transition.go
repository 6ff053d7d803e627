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
	"admissions-workers/internal/state"
)

const courseApplicationColumns = `id, student_id, institution_id, course_id, status,
	qualification_score, COALESCE(motivation, ''), final_admission_confirmed,
	promoted_from_waiting, COALESCE(decline_reason, ''), created_at, updated_at`

func scanCourseApplication(row interface {
	Scan(dest ...interface{}) error
}) (*models.CourseApplication, error) {
	var app models.CourseApplication
	err := row.Scan(
		&app.ID, &app.StudentID, &app.InstitutionID, &app.CourseID, &app.Status,
		&app.QualificationScore, &app.Motivation, &app.FinalAdmissionConfirmed,
		&app.PromotedFromWaiting, &app.DeclineReason, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// TransitionCourseApplication applies a reviewer or candidate action to one
// application. reviewScore is consulted only for the score-gated reviewer
// decisions. A candidate decline additionally promotes the oldest eligible
// waiting application for the vacated slot inside the same transaction; the
// returned notifications must be emitted only after this call succeeds.
func (s *Store) TransitionCourseApplication(
	ctx context.Context,
	applicationID string,
	action state.Action,
	reviewScore int,
) (*models.CourseApplication, []models.Notification, error) {
	return s.transition(ctx, applicationID, "", action, reviewScore)
}

// DeclineOffer is the candidate-facing decline of an accepted offer. It is
// the same transition with an ownership check on top.
func (s *Store) DeclineOffer(ctx context.Context, studentID, applicationID string) (*models.CourseApplication, []models.Notification, error) {
	return s.transition(ctx, applicationID, studentID, state.ActionDecline, 0)
}

func (s *Store) transition(
	ctx context.Context,
	applicationID string,
	ownerID string,
	action state.Action,
	reviewScore int,
) (*models.CourseApplication, []models.Notification, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	var app *models.CourseApplication
	var notifications []models.Notification
	var fromStatus models.ApplicationStatus

	err = func() error {
		var err error
		app, err = scanCourseApplication(tx.QueryRowContext(ctx,
			`SELECT `+courseApplicationColumns+` FROM course_applications
			 WHERE id = $1 FOR UPDATE`, applicationID))
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("application", applicationID)
		}
		if err != nil {
			return err
		}
		if ownerID != "" && app.StudentID != ownerID {
			return errors.NewUnauthorizedError(fmt.Sprintf(
				"application %s does not belong to student %s", applicationID, ownerID))
		}
		fromStatus = app.Status

		band := state.BandFor(reviewScore, s.AdmitThreshold, s.WaitlistThreshold)
		next, err := state.Next(app.Status, action, band)
		if err != nil {
			return err
		}

		if next == models.StatusAccepted {
			if err := s.ensureNotAdmittedElsewhere(ctx, tx, app); err != nil {
				return err
			}
		}

		promoted := app.PromotedFromWaiting || action == state.ActionPromote
		if _, err := tx.ExecContext(ctx,
			`UPDATE course_applications
			 SET status = $1, promoted_from_waiting = $2, updated_at = $3
			 WHERE id = $4`,
			next, promoted, time.Now().UTC(), app.ID,
		); err != nil {
			return err
		}
		app.Status = next
		app.PromotedFromWaiting = promoted

		// A declined offer frees a slot; fill it from the waitlist before
		// anything else can claim it.
		if action == state.ActionDecline {
			promotedApp, notification, err := s.promoteLocked(ctx, tx, app.InstitutionID, app.CourseID)
			if err != nil {
				return err
			}
			if promotedApp != nil {
				notifications = append(notifications, *notification)
			}
		}
		return nil
	}()

	if err := s.finish(tx, err); err != nil {
		return nil, nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(fromStatus), string(app.Status)).Inc()
	s.audit(ctx, "course_application", app.ID, "transition",
		fmt.Sprintf("%s -> %s (action=%s score=%d)", fromStatus, app.Status, action, reviewScore))
	return app, notifications, nil
}

// GetCourseApplication loads one application outside any transaction.
func (s *Store) GetCourseApplication(ctx context.Context, applicationID string) (*models.CourseApplication, error) {
	app, err := scanCourseApplication(s.db.QueryRowContext(ctx,
		`SELECT `+courseApplicationColumns+` FROM course_applications WHERE id = $1`,
		applicationID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("application", applicationID)
	}
	if err != nil {
		return nil, s.mapError(err)
	}
	return app, nil
}

// ensureNotAdmittedElsewhere guards the one-acceptance-per-institution
// invariant on every transition into accepted.
func (s *Store) ensureNotAdmittedElsewhere(ctx context.Context, tx *sql.Tx, app *models.CourseApplication) error {
	var accepted bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_applications
		 WHERE student_id = $1 AND institution_id = $2 AND status = $3 AND id <> $4)`,
		app.StudentID, app.InstitutionID, models.StatusAccepted, app.ID,
	).Scan(&accepted)
	if err != nil {
		return err
	}
	if accepted {
		return errors.NewAlreadyAdmittedAtInstitutionError(app.StudentID, app.InstitutionID)
	}
	return nil
}
