// internal/workers/admission/review-application/handler.go
package reviewapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"
	"admissions-workers/internal/state"
	"admissions-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "review-application"
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
	if input.ApplicationID == "" {
		return nil, errors.NewSubmissionValidationFailedError("applicationId is required")
	}

	action, err := state.ActionForStatus(models.ApplicationStatus(input.Decision))
	if err != nil {
		return nil, err
	}

	app, _, err := h.store.TransitionCourseApplication(ctx, input.ApplicationID, action, input.ReviewScore)
	if err != nil {
		return nil, err
	}

	h.logger.Info("reviewer decision applied", map[string]interface{}{
		"applicationId": app.ID,
		"decision":      input.Decision,
		"status":        app.Status,
		"reviewScore":   input.ReviewScore,
	})

	return &Output{
		ApplicationID:     app.ID,
		ApplicationStatus: string(app.Status),
		ReviewScore:       input.ReviewScore,
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
