// internal/workers/admission/compute-review-score/handler_test.go
package computereviewscore

import (
	"context"
	"testing"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func TestHandler_Execute_Bands(t *testing.T) {
	tests := []struct {
		name         string
		profile      *models.CandidateProfile
		expectedBand string
	}{
		{
			name: "strong profile lands in admit band",
			profile: &models.CandidateProfile{
				HighSchoolGPA: 3.8,
				CurrentGPA:    3.5,
				Certificates:  []models.Certificate{{Name: "a"}, {Name: "b"}},
				WorkExperience: []models.WorkExperience{
					{Company: "Acme", Role: "Intern"},
				},
			},
			expectedBand: "admit",
		},
		{
			name: "middling profile lands in waitlist band",
			profile: &models.CandidateProfile{
				HighSchoolGPA: 3.0,
				CurrentGPA:    2.6,
			},
			expectedBand: "waitlist",
		},
		{
			name:         "empty profile lands below",
			profile:      &models.CandidateProfile{},
			expectedBand: "below",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)
			output, err := handler.Execute(context.Background(), &Input{
				ApplicationID: "app-001",
				Profile:       tt.profile,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBand, output.ScoreBand)
			assert.GreaterOrEqual(t, output.ReviewScore, 0)
			assert.LessOrEqual(t, output.ReviewScore, 100)
		})
	}
}

func TestHandler_Execute_ConfiguredThresholds(t *testing.T) {
	profile := &models.CandidateProfile{
		HighSchoolGPA: 3.0,
		CurrentGPA:    2.6,
	}
	input := &Input{ApplicationID: "app-001", Profile: profile}

	baseline, err := newTestHandler(t).Execute(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "waitlist", baseline.ScoreBand)

	// Lowering the admit threshold to the achieved score moves the same
	// profile into the admit band.
	config := LoadConfig()
	config.AdmitThreshold = baseline.ReviewScore
	config.WaitlistThreshold = 10
	output, err := NewHandler(config, logger.NewTestLogger(t)).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, baseline.ReviewScore, output.ReviewScore)
	assert.Equal(t, "admit", output.ScoreBand)

	// Raising both thresholds above the score drops it below the bands.
	config = LoadConfig()
	config.AdmitThreshold = baseline.ReviewScore + 2
	config.WaitlistThreshold = baseline.ReviewScore + 1
	output, err = NewHandler(config, logger.NewTestLogger(t)).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "below", output.ScoreBand)
}

func TestHandler_Execute_MissingProfile(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001"})

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSubmissionValidationFailed, stdErr.Code)
}
