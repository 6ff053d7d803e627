// internal/workers/application/validate-submission/models.go
package validatesubmission

type Input struct {
	// SubmissionKind selects the schema: "course" or "job".
	SubmissionKind string                 `json:"submissionKind"`
	Submission     map[string]interface{} `json:"submission"`
}

type Output struct {
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}
