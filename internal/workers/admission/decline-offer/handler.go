// internal/workers/admission/decline-offer/handler.go
package declineoffer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "decline-offer"
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
	if input.StudentID == "" || input.ApplicationID == "" {
		return nil, errors.NewSubmissionValidationFailedError("studentId and applicationId are required")
	}

	app, notifications, err := h.store.DeclineOffer(ctx, input.StudentID, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	output := &Output{
		ApplicationID:     app.ID,
		ApplicationStatus: string(app.Status),
		Notifications:     notifications,
	}
	// The promotion notification links to the promoted application.
	for _, n := range notifications {
		output.PromotedApplicationID = strings.TrimPrefix(n.Link, "/applications/")
	}

	h.logger.Info("offer declined", map[string]interface{}{
		"applicationId":         app.ID,
		"studentId":             input.StudentID,
		"promotedApplicationId": output.PromotedApplicationID,
	})
	return output, nil
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
