// internal/workers/admission/review-application/models.go
package reviewapplication

type Input struct {
	ApplicationID string `json:"applicationId"`
	// Decision is the reviewer's target status: "accepted", "waiting" or
	// "rejected".
	Decision    string `json:"decision"`
	ReviewScore int    `json:"reviewScore"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	ReviewScore       int    `json:"reviewScore"`
}
