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
)

// SubmitCourseApplication persists a new course application in pending
// state. The guard checks (duplicate, accepted-at-institution, quota) and
// the insert run in one serializable transaction; the quota row is locked
// first so two concurrent submissions for the same (student, institution)
// serialize on it. The eligibility hook runs after the storage guards, so a
// duplicate or exhausted quota is reported ahead of an eligibility failure.
func (s *Store) SubmitCourseApplication(ctx context.Context, app *models.CourseApplication, eligibility func() error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	err = func() error {
		var quota int
		err := tx.QueryRowContext(ctx,
			`SELECT count FROM application_quotas
			 WHERE student_id = $1 AND institution_id = $2 FOR UPDATE`,
			app.StudentID, app.InstitutionID,
		).Scan(&quota)
		if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
			return err
		}

		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM course_applications
			 WHERE student_id = $1 AND institution_id = $2 AND course_id = $3)`,
			app.StudentID, app.InstitutionID, app.CourseID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return errors.NewDuplicateApplicationError(fmt.Sprintf(
				"studentId: %s, institutionId: %s, courseId: %s",
				app.StudentID, app.InstitutionID, app.CourseID))
		}

		var accepted bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM course_applications
			 WHERE student_id = $1 AND institution_id = $2 AND status = $3)`,
			app.StudentID, app.InstitutionID, models.StatusAccepted,
		).Scan(&accepted); err != nil {
			return err
		}
		if accepted {
			return errors.NewAlreadyAdmittedAtInstitutionError(app.StudentID, app.InstitutionID)
		}

		if quota >= s.MaxPerInstitution {
			return errors.NewQuotaExceededError(app.StudentID, app.InstitutionID)
		}

		if eligibility != nil {
			if err := eligibility(); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		app.Status = models.StatusPending
		app.CreatedAt = now
		app.UpdatedAt = now

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO course_applications
			 (id, student_id, institution_id, course_id, status, qualification_score,
			  motivation, final_admission_confirmed, promoted_from_waiting, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, $8, $8)`,
			app.ID, app.StudentID, app.InstitutionID, app.CourseID,
			app.Status, app.QualificationScore, app.Motivation, now,
		); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO application_quotas (student_id, institution_id, count)
			 VALUES ($1, $2, 1)
			 ON CONFLICT (student_id, institution_id)
			 DO UPDATE SET count = application_quotas.count + 1`,
			app.StudentID, app.InstitutionID,
		)
		return err
	}()

	if err := s.finish(tx, err); err != nil {
		return err
	}

	metrics.ApplicationsSubmitted.WithLabelValues("course").Inc()
	s.audit(ctx, "course_application", app.ID, "submitted",
		fmt.Sprintf("score=%d institution=%s course=%s",
			app.QualificationScore, app.InstitutionID, app.CourseID))
	return nil
}

// SubmitJobApplication persists a new job application. Jobs carry no quota
// or eligibility gate, only the duplicate guard.
func (s *Store) SubmitJobApplication(ctx context.Context, app *models.JobApplication) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	err = func() error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM job_applications
			 WHERE student_id = $1 AND job_id = $2)`,
			app.StudentID, app.JobID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return errors.NewDuplicateApplicationError(fmt.Sprintf(
				"studentId: %s, jobId: %s", app.StudentID, app.JobID))
		}

		now := time.Now().UTC()
		app.Status = models.StatusPending
		app.CreatedAt = now
		app.UpdatedAt = now

		_, err := tx.ExecContext(ctx,
			`INSERT INTO job_applications
			 (id, student_id, job_id, status, qualification_score, field_of_work, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			app.ID, app.StudentID, app.JobID, app.Status,
			app.QualificationScore, app.FieldOfWork, now,
		)
		return err
	}()

	if err := s.finish(tx, err); err != nil {
		return err
	}

	metrics.ApplicationsSubmitted.WithLabelValues("job").Inc()
	s.audit(ctx, "job_application", app.ID, "submitted",
		fmt.Sprintf("score=%d job=%s field=%s", app.QualificationScore, app.JobID, app.FieldOfWork))
	return nil
}
