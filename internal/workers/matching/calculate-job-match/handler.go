// internal/workers/matching/calculate-job-match/handler.go
package calculatejobmatch

import (
	"context"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-job-match"
)

type Handler struct {
	config *Config
	cache  redis.Cmdable
	logger logger.Logger
	errors *errors.ErrorHandler
}

// NewHandler accepts any redis.Cmdable so tests can pass a mock client.
func NewHandler(config *Config, cache redis.Cmdable, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		cache:  cache,
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

func cacheKey(studentID, jobID string) string {
	return fmt.Sprintf("match:%s:%s", studentID, jobID)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StudentID == "" || input.JobID == "" {
		return nil, errors.NewSubmissionValidationFailedError("studentId and jobId are required")
	}
	if input.Profile == nil || input.Job == nil {
		return nil, errors.NewSubmissionValidationFailedError("candidateProfile and job are required")
	}

	key := cacheKey(input.StudentID, input.JobID)
	if h.cache != nil {
		cached, err := h.cache.Get(ctx, key).Result()
		if err == nil {
			var entry cacheEntry
			if err := json.Unmarshal([]byte(cached), &entry); err == nil {
				metrics.MatchCacheHits.WithLabelValues("hit").Inc()
				return &Output{
					MatchScore:     entry.MatchScore,
					ScoreBreakdown: entry.ScoreBreakdown,
					FromCache:      true,
				}, nil
			}
		}
		// A cache failure only costs a recomputation.
		metrics.MatchCacheHits.WithLabelValues("miss").Inc()
	}

	score, breakdown := scoring.JobMatchScore(input.FieldOfWork, input.Profile, input.Job)

	if h.cache != nil {
		payload, err := json.Marshal(cacheEntry{MatchScore: score, ScoreBreakdown: breakdown})
		if err == nil {
			if err := h.cache.Set(ctx, key, payload, h.config.CacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache match score", map[string]interface{}{
					"key":   key,
					"error": err,
				})
			}
		}
	}

	h.logger.Info("job match calculated", map[string]interface{}{
		"studentId": input.StudentID,
		"jobId":     input.JobID,
		"score":     score,
	})

	return &Output{
		MatchScore:     score,
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
