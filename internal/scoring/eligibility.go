package scoring

import (
	"fmt"
	"regexp"
	"strconv"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/models"
)

var minimumGPAPattern = regexp.MustCompile(`(?i)(?:minimum\s+)?gpa\s*(?:of|:|>=|at least)?\s*([0-9]+(?:\.[0-9]+)?)`)

// MinimumGPA extracts a numeric minimum-GPA requirement from free-text
// course requirements. The second return is false when the text encodes no
// such requirement.
func MinimumGPA(requirementText string) (float64, bool) {
	m := minimumGPAPattern.FindStringSubmatch(requirementText)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CheckEligibility gates a course submission. It fails when the candidate's
// GPA is below the course's encoded minimum, and also when the candidate's
// academic level sits above the course's level in the fixed hierarchy:
// over-qualification is rejected the same way as under-qualification.
func CheckEligibility(profile *models.CandidateProfile, course *models.Course) error {
	if minGPA, ok := MinimumGPA(course.Requirements); ok && profile.CurrentGPA < minGPA {
		return errors.NewUnderQualifiedError(
			fmt.Sprintf("gpa %.2f below course minimum %.2f", profile.CurrentGPA, minGPA))
	}

	courseLevel := models.ParseAcademicLevel(course.Level)
	if profile.Level().Exceeds(courseLevel) {
		return errors.NewUnderQualifiedError(
			fmt.Sprintf("academic level %q exceeds course level %q", profile.Level(), courseLevel))
	}

	return nil
}
