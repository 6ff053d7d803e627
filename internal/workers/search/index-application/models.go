// internal/workers/search/index-application/models.go
package indexapplication

type Input struct {
	ApplicationID string `json:"applicationId"`
	// Kind distinguishes course and job applications in the shared index.
	Kind     string                 `json:"kind"` // "course" or "job"
	Document map[string]interface{} `json:"document"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	Index         string `json:"index"`
	Indexed       bool   `json:"indexed"`
}
