// internal/workers/admission/compute-review-score/handler.go
package computereviewscore

import (
	"context"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/scoring"
	"admissions-workers/internal/state"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-review-score"
)

type Handler struct {
	config *Config
	logger logger.Logger
	errors *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		logger: scoped,
		errors: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Profile == nil {
		return nil, errors.NewSubmissionValidationFailedError("candidateProfile is required")
	}

	score, breakdown := scoring.InstitutionReviewScore(input.Profile)

	var bandName string
	switch state.BandFor(score, h.config.AdmitThreshold, h.config.WaitlistThreshold) {
	case state.BandAdmit:
		bandName = "admit"
	case state.BandWaitlist:
		bandName = "waitlist"
	default:
		bandName = "below"
	}

	h.logger.Info("review score calculated", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"score":         score,
		"band":          bandName,
		"breakdown":     breakdown,
	})

	return &Output{
		ReviewScore:    score,
		ScoreBand:      bandName,
		ScoreBreakdown: breakdown,
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
