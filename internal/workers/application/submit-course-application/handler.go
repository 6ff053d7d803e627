// internal/workers/application/submit-course-application/handler.go
package submitcourseapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"
	"admissions-workers/internal/scoring"
	"admissions-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-course-application"
)

type Handler struct {
	store   *store.Store
	logger  logger.Logger
	errors  *errors.ErrorHandler
	timeout time.Duration
}

func NewHandler(config *Config, st *store.Store, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		store:   st,
		logger:  scoped,
		errors:  errors.NewErrorHandler(scoped),
		timeout: config.Timeout,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(ctx, client, job,
			errors.NewSubmissionValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StudentID == "" || input.InstitutionID == "" || input.CourseID == "" {
		return nil, errors.NewSubmissionValidationFailedError(
			"studentId, institutionId and courseId are required")
	}
	if input.Profile == nil || input.Course == nil {
		return nil, errors.NewSubmissionValidationFailedError(
			"candidateProfile and course are required")
	}

	score, breakdown := scoring.CourseApplicationScore(input.Profile, input.Course)

	app := &models.CourseApplication{
		ID:                 models.CourseApplicationID(input.StudentID, input.InstitutionID, input.CourseID),
		StudentID:          input.StudentID,
		InstitutionID:      input.InstitutionID,
		CourseID:           input.CourseID,
		QualificationScore: score,
		Motivation:         input.Motivation,
	}

	// Eligibility runs inside the store call, behind the duplicate and
	// quota guards, so a duplicate submission is reported as such even when
	// the candidate is also under-qualified.
	if err := h.store.SubmitCourseApplication(ctx, app, func() error {
		return scoring.CheckEligibility(input.Profile, input.Course)
	}); err != nil {
		if stdErr, ok := errors.AsStandardError(err); ok && !stdErr.Retryable {
			metrics.SubmissionsRejected.WithLabelValues("course", string(stdErr.Code)).Inc()
		}
		return nil, err
	}

	h.logger.Info("course application submitted", map[string]interface{}{
		"applicationId": app.ID,
		"studentId":     app.StudentID,
		"institutionId": app.InstitutionID,
		"courseId":      app.CourseID,
		"score":         score,
	})

	return &Output{
		ApplicationID:      app.ID,
		ApplicationStatus:  string(app.Status),
		QualificationScore: score,
		ScoreBreakdown:     breakdown,
		CreatedAt:          app.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
