package scoring

import (
	"strings"

	"admissions-workers/internal/models"
)

// MatchBreakdown carries the per-component points of a job-match score.
type MatchBreakdown struct {
	FieldMatch     int `json:"fieldMatch"`
	Academic       int `json:"academic"`
	WorkExperience int `json:"workExperience"`
	Certificates   int `json:"certificates"`
}

// JobMatchScore computes the 0-100 match between a candidate and a job.
// fieldOfWork is the field the student declared for this specific
// application; the profile's general fields-of-interest serve as fallback.
func JobMatchScore(fieldOfWork string, profile *models.CandidateProfile, job *models.Job) (int, MatchBreakdown) {
	var b MatchBreakdown

	b.FieldMatch = fieldMatchComponent(fieldOfWork, profile.FieldsOfInterest, job)
	b.Academic = jobAcademicTable.score(profile.CurrentGPA)
	b.WorkExperience = experienceComponent(len(profile.WorkExperience))
	b.Certificates = certificateComponent(len(profile.Certificates))

	total := b.FieldMatch + b.Academic + b.WorkExperience + b.Certificates
	return capAt100(total), b
}

// fieldMatchComponent scores 0-35. A declared field matching the job text
// beats an interest-based match, which beats a declared-but-unmatched field.
func fieldMatchComponent(fieldOfWork string, interests []string, job *models.Job) int {
	jobText := strings.ToLower(job.Title + " " + job.Requirements + " " + job.Description)
	declared := strings.ToLower(strings.TrimSpace(fieldOfWork))

	if declared != "" && strings.Contains(jobText, declared) {
		return 35
	}

	interestMatches := false
	for _, interest := range interests {
		trimmed := strings.ToLower(strings.TrimSpace(interest))
		if trimmed != "" && strings.Contains(jobText, trimmed) {
			interestMatches = true
			break
		}
	}

	switch {
	case interestMatches:
		return 25
	case declared != "":
		return 10
	default:
		return 5
	}
}

func experienceComponent(count int) int {
	switch {
	case count >= 3:
		return 20
	case count == 2:
		return 14
	case count == 1:
		return 8
	default:
		return 0
	}
}

func certificateComponent(count int) int {
	switch {
	case count >= 3:
		return 15
	case count == 2:
		return 10
	case count == 1:
		return 5
	default:
		return 0
	}
}
