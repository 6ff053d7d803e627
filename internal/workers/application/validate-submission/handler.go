// internal/workers/application/validate-submission/handler.go
package validatesubmission

import (
	"context"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-submission"
)

const courseSubmissionSchema = `{
	"type": "object",
	"required": ["studentId", "institutionId", "courseId"],
	"properties": {
		"studentId": {"type": "string", "minLength": 1},
		"institutionId": {"type": "string", "minLength": 1},
		"courseId": {"type": "string", "minLength": 1},
		"motivation": {"type": "string"}
	}
}`

const jobSubmissionSchema = `{
	"type": "object",
	"required": ["studentId", "jobId", "fieldOfWork"],
	"properties": {
		"studentId": {"type": "string", "minLength": 1},
		"jobId": {"type": "string", "minLength": 1},
		"fieldOfWork": {"type": "string", "minLength": 1}
	}
}`

type Handler struct {
	config  *Config
	logger  logger.Logger
	errors  *errors.ErrorHandler
	schemas map[string]*gojsonschema.Schema
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schemas := make(map[string]*gojsonschema.Schema, 2)
	for kind, raw := range map[string]string{
		"course": courseSubmissionSchema,
		"job":    jobSubmissionSchema,
	} {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s submission schema: %w", kind, err)
		}
		schemas[kind] = schema
	}

	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		logger:  scoped,
		errors:  errors.NewErrorHandler(scoped),
		schemas: schemas,
	}, nil
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
	schema, ok := h.schemas[input.SubmissionKind]
	if !ok {
		return nil, errors.NewSubmissionValidationFailedError(
			fmt.Sprintf("unknown submission kind %q", input.SubmissionKind))
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(input.Submission))
	if err != nil {
		return nil, errors.NewSubmissionValidationFailedError(fmt.Sprintf("validate: %v", err))
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	// Checks the schema language does not express cleanly.
	if motivation, ok := input.Submission["motivation"].(string); ok {
		if len(motivation) > h.config.MaxMotivationLength {
			problems = append(problems, fmt.Sprintf(
				"motivation exceeds %d characters", h.config.MaxMotivationLength))
		}
	}
	if input.SubmissionKind == "job" {
		if field, ok := input.Submission["fieldOfWork"].(string); ok && field != "" {
			if !models.IsValidWorkField(field) {
				problems = append(problems, fmt.Sprintf(
					"fieldOfWork %q is not a recognized work field", field))
			}
		}
	}

	if len(problems) > 0 {
		h.logger.Info("submission rejected by validation", map[string]interface{}{
			"kind":     input.SubmissionKind,
			"problems": problems,
		})
		return &Output{Valid: false, ValidationErrors: problems}, nil
	}

	return &Output{Valid: true}, nil
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
