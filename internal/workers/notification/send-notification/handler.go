// internal/workers/notification/send-notification/handler.go
package sendnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	commonaws "admissions-workers/internal/common/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

// Interfaces over the AWS clients so tests can substitute mocks.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	logger    logger.Logger
	errors    *errors.ErrorHandler
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) (*Handler, error) {
	ctx := context.Background()
	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}
	return NewHandlerWithClients(config, db, log, sesClient, snsClient), nil
}

// NewHandlerWithClients wires explicit SES/SNS implementations; used by tests.
func NewHandlerWithClients(config *Config, db *sql.DB, log logger.Logger, sesClient SESService, snsClient SNSService) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		db:        db,
		logger:    scoped,
		errors:    errors.NewErrorHandler(scoped),
		sesClient: sesClient,
		snsClient: snsClient,
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
	if input.Notification == nil {
		return nil, errors.NewSubmissionValidationFailedError("notification is required")
	}

	notification := *input.Notification
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.UserID == "" {
		notification.UserID = input.RecipientID
	}
	if notification.UserID == "" {
		return nil, errors.NewSubmissionValidationFailedError("notification recipient is required")
	}

	sentAt := time.Now().UTC()

	// The in-app notification row is the system of record; email and SMS
	// are best-effort delivery on top of it.
	if err := h.persist(ctx, &notification, sentAt); err != nil {
		return nil, err
	}

	email, phone, err := h.recipientContact(ctx, notification.UserID)
	if err != nil {
		h.logger.Warn("recipient contact not found", map[string]interface{}{
			"recipientId": notification.UserID,
			"error":       err,
		})
		metrics.NotificationsSent.WithLabelValues("in_app", StatusSent).Inc()
		return &Output{
			NotificationID: notification.ID,
			Status:         StatusDisabled,
			SentAt:         sentAt.Format(time.RFC3339),
		}, nil
	}

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && email != "" {
		if err := h.sendEmail(ctx, email, notification.Title, notification.Message); err != nil {
			metrics.NotificationsSent.WithLabelValues("email", StatusFailed).Inc()
			return nil, errors.NewNotificationSendFailedError("email", err)
		}
		metrics.NotificationsSent.WithLabelValues("email", StatusSent).Inc()
		emailSent = true
	}

	if h.config.SMSEnabled && phone != "" && input.Priority == "high" {
		if err := h.sendSMS(ctx, phone, notification.Message); err != nil {
			metrics.NotificationsSent.WithLabelValues("sms", StatusFailed).Inc()
			return nil, errors.NewNotificationSendFailedError("sms", err)
		}
		metrics.NotificationsSent.WithLabelValues("sms", StatusSent).Inc()
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("notification delivered", map[string]interface{}{
		"notificationId": notification.ID,
		"recipientId":    notification.UserID,
		"type":           notification.Type,
		"status":         status,
	})

	return &Output{
		NotificationID: notification.ID,
		Status:         status,
		SentAt:         sentAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) persist(ctx context.Context, n *models.Notification, sentAt time.Time) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, link, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, false, $7)
		 ON CONFLICT (id) DO NOTHING`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, sentAt,
	)
	if err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

func (h *Handler) recipientContact(ctx context.Context, recipientID string) (string, string, error) {
	var email, phone string
	err := h.db.QueryRowContext(ctx,
		`SELECT email, COALESCE(phone, '') FROM users WHERE id = $1`, recipientID,
	).Scan(&email, &phone)
	return email, phone, err
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
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
