// internal/workers/admission/compute-review-score/models.go
package computereviewscore

import (
	"admissions-workers/internal/models"
	"admissions-workers/internal/scoring"
)

type Input struct {
	ApplicationID string                   `json:"applicationId"`
	Profile       *models.CandidateProfile `json:"candidateProfile"`
}

type Output struct {
	ReviewScore    int                     `json:"reviewScore"`
	ScoreBand      string                  `json:"scoreBand"` // "admit", "waitlist", "below"
	ScoreBreakdown scoring.ReviewBreakdown `json:"scoreBreakdown"`
}
