// internal/models/application.go
package models

import "time"

// CourseApplication identity is (studentId, institutionId, courseId).
// The record ID is derived deterministically from that tuple so a retried
// submission maps onto the same row.
type CourseApplication struct {
	ID                      string            `json:"id"`
	StudentID               string            `json:"studentId"`
	InstitutionID           string            `json:"institutionId"`
	CourseID                string            `json:"courseId"`
	Status                  ApplicationStatus `json:"status"`
	QualificationScore      int               `json:"qualificationScore"`
	Motivation              string            `json:"motivation,omitempty"`
	FinalAdmissionConfirmed bool              `json:"finalAdmissionConfirmed"`
	PromotedFromWaiting     bool              `json:"promotedFromWaiting"`
	DeclineReason           string            `json:"declineReason,omitempty"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
}

// JobApplication identity is (studentId, jobId).
type JobApplication struct {
	ID                 string            `json:"id"`
	StudentID          string            `json:"studentId"`
	JobID              string            `json:"jobId"`
	Status             ApplicationStatus `json:"status"`
	QualificationScore int               `json:"qualificationScore"`
	FieldOfWork        string            `json:"fieldOfWork"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}
