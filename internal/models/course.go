// internal/models/course.go
package models

// Course is owned by an institution and consumed read-only by the guard
// and scoring engine.
type Course struct {
	ID            string   `json:"id"`
	InstitutionID string   `json:"institutionId"`
	Name          string   `json:"name"`
	Level         string   `json:"level"`
	Requirements  string   `json:"requirements"`
	FieldTags     []string `json:"fieldTags,omitempty"`
}

// Job is owned by a company and consumed read-only by the scoring engine.
type Job struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"companyId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	FieldTags    []string `json:"fieldTags,omitempty"`
}
