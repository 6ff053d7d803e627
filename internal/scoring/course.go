package scoring

import (
	"regexp"
	"strings"

	"admissions-workers/internal/models"
)

var (
	technicalCoursePattern = regexp.MustCompile(`(?i)engineering|science|math|computer|tech|accounting`)
	scienceCoursePattern   = regexp.MustCompile(`(?i)science|biology|chemistry|physics|health|nursing|medicine`)
	scienceSubjectPattern  = regexp.MustCompile(`(?i)science|biology|chemistry|physics`)
)

// CourseBreakdown carries the per-component points of a course-application
// score, returned so the submission UI can explain the number.
type CourseBreakdown struct {
	English      int `json:"english"`
	Mathematics  int `json:"mathematics"`
	Science      int `json:"science"`
	AverageGrade int `json:"averageGrade"`
	Certificates int `json:"certificates"`
}

// CourseApplicationScore computes the 0-100 qualification score stored on a
// course application at submission. Secondary-school performance carries
// roughly 90% of the weight, certificates the remaining 10%.
func CourseApplicationScore(profile *models.CandidateProfile, course *models.Course) (int, CourseBreakdown) {
	var b CourseBreakdown

	b.English = gradeComponent(findSubjectGrade(profile.Subjects, "english"))

	if technicalCoursePattern.MatchString(course.Name) {
		b.Mathematics = gradeComponent(findSubjectGrade(profile.Subjects, "math"))
	}

	if scienceCoursePattern.MatchString(course.Name) {
		b.Science = gradeComponent(findScienceGrade(profile.Subjects))
	}

	b.AverageGrade = int(averageGradePoint(profile.Subjects) / 5.0 * 40.0)

	b.Certificates = clamp(len(profile.Certificates)*2, 0, 10)

	total := b.English + b.Mathematics + b.Science + b.AverageGrade + b.Certificates
	return capAt100(total), b
}

// gradeComponent maps a letter grade to the 20/10/0 tier used by the
// subject-specific components.
func gradeComponent(grade string) int {
	switch {
	case grade == "":
		return 0
	case isStrongGrade(grade):
		return 20
	case isWeakGrade(grade):
		return 10
	default:
		return 0
	}
}

// findSubjectGrade returns the grade of the first subject whose name
// contains the given keyword, or "" when absent.
func findSubjectGrade(subjects []models.SubjectGrade, keyword string) string {
	for _, s := range subjects {
		if strings.Contains(strings.ToLower(s.Subject), keyword) {
			return s.Grade
		}
	}
	return ""
}

func findScienceGrade(subjects []models.SubjectGrade) string {
	for _, s := range subjects {
		if scienceSubjectPattern.MatchString(s.Subject) {
			return s.Grade
		}
	}
	return ""
}

// averageGradePoint averages the letter-grade points over all listed
// subjects. Unrecognized grades count as 0, matching F.
func averageGradePoint(subjects []models.SubjectGrade) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subjects {
		if p := letterGradePoint(s.Grade); p > 0 {
			sum += p
		}
	}
	return sum / float64(len(subjects))
}
