// internal/workers/search/index-application/handler.go
package indexapplication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "index-application"
)

type Handler struct {
	config    *Config
	transport esapi.Transport
	logger    logger.Logger
	errors    *errors.ErrorHandler
}

// NewHandler accepts any esapi.Transport; production passes the
// *elasticsearch.Client, tests a fake round-tripper.
func NewHandler(config *Config, transport esapi.Transport, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		transport: transport,
		logger:    scoped,
		errors:    errors.NewErrorHandler(scoped),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicationID == "" {
		return nil, errors.NewSubmissionValidationFailedError("applicationId is required")
	}
	if len(input.Document) == 0 {
		return nil, errors.NewSubmissionValidationFailedError("document is required")
	}

	doc := make(map[string]interface{}, len(input.Document)+2)
	for k, v := range input.Document {
		doc[k] = v
	}
	doc["kind"] = input.Kind
	doc["indexedAt"] = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewSubmissionValidationFailedError(fmt.Sprintf("encode document: %v", err))
	}

	req := esapi.IndexRequest{
		Index:      h.config.Index,
		DocumentID: input.ApplicationID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, h.transport)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(h.config.Index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchIndexFailedError(h.config.Index,
			fmt.Errorf("index %s: %s", input.ApplicationID, res.Status()))
	}

	h.logger.Info("application indexed", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"index":         h.config.Index,
		"kind":          input.Kind,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		Index:         h.config.Index,
		Indexed:       true,
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
