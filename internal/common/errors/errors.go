// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Allocation engine business errors plus infrastructure errors.
const (
	ErrCodeDuplicateApplication          ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeQuotaExceeded                 ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeUnderQualified                ErrorCode = "UNDER_QUALIFIED"
	ErrCodeAlreadyAdmittedAtInstitution  ErrorCode = "ALREADY_ADMITTED_AT_INSTITUTION"
	ErrCodePolicyViolation               ErrorCode = "POLICY_VIOLATION"
	ErrCodeNotFound                      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized                  ErrorCode = "UNAUTHORIZED"
	ErrCodeStoreUnavailable              ErrorCode = "STORE_UNAVAILABLE"

	ErrCodeSubmissionValidationFailed ErrorCode = "SUBMISSION_VALIDATION_FAILED"
	ErrCodeNotificationSendFailed     ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeSearchIndexFailed          ErrorCode = "SEARCH_INDEX_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// AsStandardError unwraps err into a *StandardError if it carries one.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewDuplicateApplicationError creates a non-retryable duplicate application error.
func NewDuplicateApplicationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "An identical application already exists",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError creates a non-retryable per-institution quota error.
func NewQuotaExceededError(studentID, institutionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuotaExceeded,
		Message:   "Course application limit reached for this institution",
		Details:   fmt.Sprintf("studentId: %s, institutionId: %s", studentID, institutionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnderQualifiedError creates a non-retryable eligibility error.
func NewUnderQualifiedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnderQualified,
		Message:   "Candidate profile does not meet course requirements",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadyAdmittedAtInstitutionError creates a non-retryable admission uniqueness error.
func NewAlreadyAdmittedAtInstitutionError(studentID, institutionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadyAdmittedAtInstitution,
		Message:   "Student already holds an accepted application at this institution",
		Details:   fmt.Sprintf("studentId: %s, institutionId: %s", studentID, institutionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPolicyViolationError creates a non-retryable state transition error.
func NewPolicyViolationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePolicyViolation,
		Message:   "Requested status change violates transition policy",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable missing record error.
func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable ownership error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Actor is not permitted to perform this operation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable storage error. This is the only
// engine error a caller may retry without changing the request.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Application store temporarily unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionValidationFailedError creates a non-retryable payload validation error.
func NewSubmissionValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionValidationFailed,
		Message:   "Submission payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification delivery error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchIndexFailedError creates a retryable search indexing error.
func NewSearchIndexFailedError(indexName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchIndexFailed,
		Message:   "Search index operation failed",
		Details:   fmt.Sprintf("index: %s, error: %s", indexName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeDuplicateApplication:         "DUPLICATE_APPLICATION",
	ErrCodeQuotaExceeded:                "QUOTA_EXCEEDED",
	ErrCodeUnderQualified:               "UNDER_QUALIFIED",
	ErrCodeAlreadyAdmittedAtInstitution: "ALREADY_ADMITTED_AT_INSTITUTION",
	ErrCodePolicyViolation:              "POLICY_VIOLATION",
	ErrCodeNotFound:                     "NOT_FOUND",
	ErrCodeUnauthorized:                 "UNAUTHORIZED",
	ErrCodeStoreUnavailable:             "STORE_UNAVAILABLE",
	ErrCodeSubmissionValidationFailed:   "SUBMISSION_VALIDATION_FAILED",
	ErrCodeNotificationSendFailed:       "NOTIFICATION_SEND_FAILED",
	ErrCodeSearchIndexFailed:            "SEARCH_INDEX_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable,
		ErrCodeNotificationSendFailed,
		ErrCodeSearchIndexFailed:
		return 3 // Retryable technical errors

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "QUOTA") || strings.Contains(codeStr, "DUPLICATE") ||
		strings.Contains(codeStr, "QUALIFIED") || strings.Contains(codeStr, "ADMITTED") ||
		strings.Contains(codeStr, "POLICY"):
		return "BUSINESS_RULE"
	case strings.Contains(codeStr, "STORE"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "UNAUTHORIZED") || strings.Contains(codeStr, "NOT_FOUND"):
		return "REQUEST"
	default:
		return "OTHER"
	}
}
