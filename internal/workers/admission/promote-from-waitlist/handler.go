// internal/workers/admission/promote-from-waitlist/handler.go
package promotefromwaitlist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "promote-from-waitlist"
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
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.InstitutionID == "" || input.CourseID == "" {
		return nil, errors.NewSubmissionValidationFailedError("institutionId and courseId are required")
	}

	app, notification, err := h.store.PromoteFromWaitlist(ctx, input.InstitutionID, input.CourseID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		h.logger.Info("no eligible waiting application", map[string]interface{}{
			"institutionId": input.InstitutionID,
			"courseId":      input.CourseID,
		})
		return &Output{Promoted: false}, nil
	}

	h.logger.Info("promoted from waitlist", map[string]interface{}{
		"applicationId": app.ID,
		"studentId":     app.StudentID,
		"institutionId": input.InstitutionID,
		"courseId":      input.CourseID,
	})

	return &Output{
		Promoted:              true,
		PromotedApplicationID: app.ID,
		PromotedStudentID:     app.StudentID,
		Notification:          notification,
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
