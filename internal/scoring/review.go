package scoring

import "admissions-workers/internal/models"

// ReviewBreakdown carries the per-component points of an institution-review
// score.
type ReviewBreakdown struct {
	HighSchoolGPA  int `json:"highSchoolGpa"`
	Subjects       int `json:"subjects"`
	CurrentGPA     int `json:"currentGpa"`
	Certificates   int `json:"certificates"`
	WorkExperience int `json:"workExperience"`
}

// InstitutionReviewScore computes the 0-100 score reviewers use to decide
// acceptance. It is independent of the submission-time course score.
//
// The subjects component reads grades through a numeric parser, so letter
// grades contribute 0 to the subject average. That reproduces the upstream
// behavior verbatim; see the subjects note in DESIGN.md before changing it.
func InstitutionReviewScore(profile *models.CandidateProfile) (int, ReviewBreakdown) {
	var b ReviewBreakdown

	b.HighSchoolGPA = highSchoolGPATable.score(profile.HighSchoolGPA)
	b.Subjects = subjectsComponent(profile.Subjects)
	b.CurrentGPA = currentGPATable.score(profile.CurrentGPA)
	b.Certificates = clamp(len(profile.Certificates)*3, 0, 10)
	b.WorkExperience = clamp(len(profile.WorkExperience)*3, 0, 10)

	total := b.HighSchoolGPA + b.Subjects + b.CurrentGPA + b.Certificates + b.WorkExperience
	return capAt100(total), b
}

// subjectsComponent scores subject quality on 0-15. A full transcript of
// five or more subjects is scored from the average numeric grade; thinner
// transcripts earn a flat allowance.
func subjectsComponent(subjects []models.SubjectGrade) int {
	switch {
	case len(subjects) >= 5:
		var sum float64
		for _, s := range subjects {
			sum += numericGrade(s.Grade)
		}
		return subjectsAverageTable.score(sum / float64(len(subjects)))
	case len(subjects) >= 3:
		return 8
	default:
		return 5
	}
}
